// Package sentence implements the Sentence repository and the sentence_words
// link table using PostgreSQL.
package sentence

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kashi-backend/internal/domain"
)

const (
	table     = "sentences"
	linkTable = "sentence_words"
)

var columns = []string{"id", "song_id", "original", "pronunciation", "meaning", `"order"`}

// Repo provides sentence persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new sentence repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Sentences
// ---------------------------------------------------------------------------

// GetByID returns a sentence by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sentence, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get sentence: %w", err)
	}

	s, err := scanSentence(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "sentence", id)
	}
	return &s, nil
}

// ListBySong returns the sentences of a song in order.
// Returns an empty slice (not nil) when the song has none.
func (r *Repo) ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"song_id": songID}).
		OrderBy(`"order" ASC`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sentences: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "song", songID)
	}
	defer rows.Close()

	result := []domain.Sentence{}
	for rows.Next() {
		s, err := scanSentence(rows)
		if err != nil {
			return nil, postgres.MapError(err, "song", songID)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "song", songID)
	}
	return result, nil
}

// NextOrder returns the order the next appended sentence of the song gets:
// one past the current maximum, or 0 for a song without sentences.
func (r *Repo) NextOrder(ctx context.Context, songID uuid.UUID) (int, error) {
	return r.nextOrder(ctx, table, "song_id", songID)
}

// Create inserts a sentence at s.Order.
// Returns domain.ErrAlreadyExists if the song already has a sentence at that order.
func (r *Repo) Create(ctx context.Context, s domain.Sentence) (*domain.Sentence, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("song_id", "original", "pronunciation", "meaning", `"order"`).
		Values(s.SongID, s.Original, s.Pronunciation, s.Meaning, s.Order).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create sentence: %w", err)
	}

	created, err := scanSentence(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "sentence", fmt.Sprintf("%s#%d", s.SongID, s.Order))
	}
	return &created, nil
}

// Delete removes a sentence and, by cascade, its word links.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete sentence: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "sentence", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sentence %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Links (sentence_words)
// ---------------------------------------------------------------------------

// WordIDs returns the distinct ids of the words linked to a sentence.
func (r *Repo) WordIDs(ctx context.Context, sentenceID uuid.UUID) ([]uuid.UUID, error) {
	query := postgres.Builder().
		Select("DISTINCT word_id").
		From(linkTable).
		Where(squirrel.Eq{"sentence_id": sentenceID})

	return r.queryIDs(ctx, query, "sentence", sentenceID)
}

// WordIDsBySong returns the distinct ids of the words linked to any sentence of a song.
func (r *Repo) WordIDsBySong(ctx context.Context, songID uuid.UUID) ([]uuid.UUID, error) {
	query := postgres.Builder().
		Select("DISTINCT sw.word_id").
		From(linkTable + " sw").
		Join(table + " s ON s.id = sw.sentence_id").
		Where(squirrel.Eq{"s.song_id": songID})

	return r.queryIDs(ctx, query, "song", songID)
}

// NextLinkOrder returns the next free word position of a sentence (0 when empty).
func (r *Repo) NextLinkOrder(ctx context.Context, sentenceID uuid.UUID) (int, error) {
	return r.nextOrder(ctx, linkTable, "sentence_id", sentenceID)
}

// Link places a word in a sentence at the given position.
// Returns domain.ErrAlreadyExists if the position is taken and domain.ErrNotFound
// if the sentence or word does not exist.
func (r *Repo) Link(ctx context.Context, sentenceID, wordID uuid.UUID, order int) (*domain.SentenceWord, error) {
	sql, args, err := postgres.Builder().
		Insert(linkTable).
		Columns("sentence_id", "word_id", `"order"`).
		Values(sentenceID, wordID, order).
		Suffix(`RETURNING id, sentence_id, word_id, "order"`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build link word: %w", err)
	}

	var sw domain.SentenceWord
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).
		Scan(&sw.ID, &sw.SentenceID, &sw.WordID, &sw.Order)
	if err != nil {
		return nil, postgres.MapError(err, "sentence_word", fmt.Sprintf("%s#%d", sentenceID, order))
	}
	return &sw, nil
}

// DeleteLinks removes every word link of a sentence and returns how many were removed.
func (r *Repo) DeleteLinks(ctx context.Context, sentenceID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder().
		Delete(linkTable).
		Where(squirrel.Eq{"sentence_id": sentenceID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete links: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "sentence", sentenceID)
	}
	return int(tag.RowsAffected()), nil
}

// LinksBySentenceIDs returns the links of several sentences (batch for the dataloader),
// ordered by sentence then position.
func (r *Repo) LinksBySentenceIDs(ctx context.Context, sentenceIDs []uuid.UUID) ([]domain.SentenceWord, error) {
	if len(sentenceIDs) == 0 {
		return []domain.SentenceWord{}, nil
	}

	sql, args, err := postgres.Builder().
		Select("id", "sentence_id", "word_id", `"order"`).
		From(linkTable).
		Where("sentence_id = ANY(?::uuid[])", sentenceIDs).
		OrderBy("sentence_id", `"order"`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build links by sentences: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "sentence_word", "batch")
	}
	defer rows.Close()

	result := []domain.SentenceWord{}
	for rows.Next() {
		var sw domain.SentenceWord
		if err := rows.Scan(&sw.ID, &sw.SentenceID, &sw.WordID, &sw.Order); err != nil {
			return nil, postgres.MapError(err, "sentence_word", "batch")
		}
		result = append(result, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "sentence_word", "batch")
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) nextOrder(ctx context.Context, from, ownerColumn string, ownerID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder().
		Select(`COALESCE(MAX("order") + 1, 0)`).
		From(from).
		Where(squirrel.Eq{ownerColumn: ownerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build next order: %w", err)
	}

	var next int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&next); err != nil {
		return 0, postgres.MapError(err, from, ownerID)
	}
	return next, nil
}

func (r *Repo) queryIDs(ctx context.Context, query squirrel.SelectBuilder, entity string, id uuid.UUID) ([]uuid.UUID, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build word ids: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

func scanSentence(row pgx.Row) (domain.Sentence, error) {
	var s domain.Sentence
	err := row.Scan(&s.ID, &s.SongID, &s.Original, &s.Pronunciation, &s.Meaning, &s.Order)
	return s, err
}
