// Package word implements the Word repository using PostgreSQL.
// Words are shared across songs and deduplicated by (original, hiragana);
// a NULL hiragana matches a NULL hiragana.
package word

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	postgres "github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kashi-backend/internal/domain"
)

const table = "words"

var columns = []string{
	"id", "original", "hiragana", "pronunciation", "meaning", "word_type", `"order"`, "created_at", "updated_at",
}

// WordWithSentenceID is a word occurrence of a sentence, for batch loading.
type WordWithSentenceID struct {
	SentenceID uuid.UUID
	Position   int
	domain.Word
}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Raw SQL for join and anti-join queries
// ---------------------------------------------------------------------------

// First occurrence of every word of a song, ordered by sentence then position.
const listBySongSQL = `
SELECT w.id, w.original, w.hiragana, w.pronunciation, w.meaning, w.word_type, w."order", w.created_at, w.updated_at
FROM (
    SELECT DISTINCT ON (sw.word_id) sw.word_id, s."order" AS sentence_order, sw."order" AS word_order
    FROM sentence_words sw
    JOIN sentences s ON s.id = sw.sentence_id
    WHERE s.song_id = $1
    ORDER BY sw.word_id, s."order", sw."order"
) first
JOIN words w ON w.id = first.word_id
ORDER BY first.sentence_order, first.word_order`

const listBySentenceIDsSQL = `
SELECT sw.sentence_id, sw."order",
       w.id, w.original, w.hiragana, w.pronunciation, w.meaning, w.word_type, w."order", w.created_at, w.updated_at
FROM sentence_words sw
JOIN words w ON w.id = sw.word_id
WHERE sw.sentence_id = ANY($1::uuid[])
ORDER BY sw.sentence_id, sw."order"`

const deleteUnreferencedSQL = `
DELETE FROM words w
WHERE w.id = ANY($1::uuid[])
  AND NOT EXISTS (SELECT 1 FROM sentence_words sw WHERE sw.word_id = w.id)
RETURNING w.id`

const deleteOrphansSQL = `
DELETE FROM words w
WHERE w.created_at < $1
  AND NOT EXISTS (SELECT 1 FROM sentence_words sw WHERE sw.word_id = w.id)
RETURNING w.id`

const countReferencesSQL = `SELECT count(DISTINCT sentence_id) FROM sentence_words WHERE word_id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a word by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	return r.getOne(ctx, query, id)
}

// FindByKey returns the word with exactly this original and reading.
// A nil reading only matches words stored without one.
// Returns domain.ErrNotFound if there is no such word.
func (r *Repo) FindByKey(ctx context.Context, original string, reading *string) (*domain.Word, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"original": original}).
		Where("hiragana IS NOT DISTINCT FROM ?::text", reading)

	return r.getOne(ctx, query, domain.NewWordKey(original, reading))
}

// List returns words matching the filter ordered by original.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, f domain.WordFilter) ([]domain.Word, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = domain.DefaultWordLimit
	}

	query := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("original ASC", "hiragana ASC NULLS FIRST").
		Limit(uint64(limit)).
		Offset(uint64(max(f.Offset, 0)))

	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + s + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"original": pattern},
			squirrel.ILike{"hiragana": pattern},
			squirrel.ILike{"meaning": pattern},
		})
	}
	if f.PartOfSpeech != nil {
		query = query.Where(squirrel.Eq{"word_type": string(*f.PartOfSpeech)})
	}

	return r.query(ctx, query, "list")
}

// ListBySong returns the distinct words of a song in the order they first appear.
func (r *Repo) ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Word, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listBySongSQL, songID)
	if err != nil {
		return nil, postgres.MapError(err, "song", songID)
	}
	return collectWords(rows, "song", songID)
}

// GetByIDs returns the words with the given ids in no particular order (batch for the dataloader).
// Missing ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Word, error) {
	if len(ids) == 0 {
		return []domain.Word{}, nil
	}

	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where("id = ANY(?::uuid[])", ids)

	return r.query(ctx, query, "batch")
}

// ListBySentenceIDs returns the word occurrences of several sentences in one
// query (batch for the dataloader), ordered by sentence then position.
func (r *Repo) ListBySentenceIDs(ctx context.Context, sentenceIDs []uuid.UUID) ([]WordWithSentenceID, error) {
	if len(sentenceIDs) == 0 {
		return []WordWithSentenceID{}, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listBySentenceIDsSQL, sentenceIDs)
	if err != nil {
		return nil, postgres.MapError(err, "sentence_word", "batch")
	}
	defer rows.Close()

	result := []WordWithSentenceID{}
	for rows.Next() {
		var (
			ws  WordWithSentenceID
			pos string
		)
		if err := rows.Scan(&ws.SentenceID, &ws.Position,
			&ws.ID, &ws.Original, &ws.Reading, &ws.Pronunciation, &ws.Meaning, &pos, &ws.Order, &ws.CreatedAt, &ws.UpdatedAt,
		); err != nil {
			return nil, postgres.MapError(err, "sentence_word", "batch")
		}
		ws.PartOfSpeech = domain.PartOfSpeech(pos)
		result = append(result, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "sentence_word", "batch")
	}
	return result, nil
}

// CountReferences returns the number of sentences that use the word.
func (r *Repo) CountReferences(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countReferencesSQL, id).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "word", id)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a word. The reading is normalised (blank or equal to the original → NULL).
// Returns domain.ErrAlreadyExists if (original, reading) is taken.
func (r *Repo) Create(ctx context.Context, w domain.Word) (*domain.Word, error) {
	reading := domain.NormalizeReading(w.Original, w.Reading)
	query := postgres.Builder().
		Insert(table).
		Columns("original", "hiragana", "pronunciation", "meaning", "word_type", `"order"`).
		Values(w.Original, reading, w.Pronunciation, w.Meaning, string(w.PartOfSpeech), w.Order).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.getOne(ctx, query, domain.NewWordKey(w.Original, reading))
}

// Update overwrites every editable field of a word.
func (r *Repo) Update(ctx context.Context, w domain.Word) (*domain.Word, error) {
	query := postgres.Builder().
		Update(table).
		Set("original", w.Original).
		Set("hiragana", domain.NormalizeReading(w.Original, w.Reading)).
		Set("pronunciation", w.Pronunciation).
		Set("meaning", w.Meaning).
		Set("word_type", string(w.PartOfSpeech)).
		Set(`"order"`, w.Order).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": w.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.getOne(ctx, query, w.ID)
}

// Delete removes a word. A word still linked by a sentence (foreign key RESTRICT)
// yields a *domain.ConflictError; a missing word yields domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete word: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.NewConflictError("word", "still used by a sentence")
		}
		return postgres.MapError(err, "word", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteUnreferenced deletes, in one statement, the words among ids that no
// sentence links any more, and returns the ids it deleted.
func (r *Repo) DeleteUnreferenced(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, deleteUnreferencedSQL, ids)
	if err != nil {
		return nil, postgres.MapError(err, "word", "gc")
	}

	deleted, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, postgres.MapError(err, "word", "gc")
	}
	if deleted == nil {
		deleted = []uuid.UUID{}
	}
	return deleted, nil
}

// DeleteOrphansBefore deletes every word created before threshold that no
// sentence references and returns their ids.
func (r *Repo) DeleteOrphansBefore(ctx context.Context, threshold time.Time) ([]uuid.UUID, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, deleteOrphansSQL, threshold)
	if err != nil {
		return nil, postgres.MapError(err, "word", "sweep")
	}

	deleted, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, postgres.MapError(err, "word", "sweep")
	}
	if deleted == nil {
		deleted = []uuid.UUID{}
	}
	return deleted, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, query postgres.Sqlizer, key any) (*domain.Word, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build word query: %w", err)
	}

	w, err := scanWord(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "word", key)
	}
	return &w, nil
}

func (r *Repo) query(ctx context.Context, query postgres.Sqlizer, key any) ([]domain.Word, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build word query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "word", key)
	}
	return collectWords(rows, "word", key)
}

func collectWords(rows pgx.Rows, entity string, key any) ([]domain.Word, error) {
	defer rows.Close()

	result := []domain.Word{}
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, postgres.MapError(err, entity, key)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, key)
	}
	return result, nil
}

func scanWord(row pgx.Row) (domain.Word, error) {
	var (
		w   domain.Word
		pos string
	)
	err := row.Scan(&w.ID, &w.Original, &w.Reading, &w.Pronunciation, &w.Meaning, &pos, &w.Order, &w.CreatedAt, &w.UpdatedAt)
	w.PartOfSpeech = domain.PartOfSpeech(pos)
	return w, err
}
