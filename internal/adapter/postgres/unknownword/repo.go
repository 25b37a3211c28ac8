// Package unknownword implements the signed-in Unknown-Word Ledger using PostgreSQL.
// A row (user_id, word_id) means the user marked the word as not yet known.
package unknownword

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kashi-backend/internal/domain"
)

const table = "unknown_words"

const listWordsSQL = `
SELECT w.id, w.original, w.hiragana, w.pronunciation, w.meaning, w.word_type, w."order", w.created_at, w.updated_at
FROM unknown_words uw
JOIN words w ON w.id = uw.word_id
WHERE uw.user_id = $1
ORDER BY uw.created_at DESC, w.original`

// Repo provides unknown-word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new unknown-word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Add marks a word as unknown for a user. Marking twice is not an error.
// Returns domain.ErrNotFound if the user or word does not exist.
func (r *Repo) Add(ctx context.Context, userID, wordID uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("user_id", "word_id").
		Values(userID, wordID).
		Suffix("ON CONFLICT (user_id, word_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add unknown word: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "unknown_word", wordID)
	}
	return nil
}

// Remove clears the mark. Removing an absent mark is not an error.
func (r *Repo) Remove(ctx context.Context, userID, wordID uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"user_id": userID, "word_id": wordID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove unknown word: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "unknown_word", wordID)
	}
	return nil
}

// Exists reports whether the user marked the word as unknown.
func (r *Repo) Exists(ctx context.Context, userID, wordID uuid.UUID) (bool, error) {
	sql, args, err := postgres.Builder().
		Select("1").
		From(table).
		Where(squirrel.Eq{"user_id": userID, "word_id": wordID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build unknown word exists: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "unknown_word", wordID)
	}
	return exists, nil
}

// ListWordIDs returns the ids of every word the user marked.
func (r *Repo) ListWordIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	sql, args, err := postgres.Builder().
		Select("word_id").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list unknown words: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// ListWords returns the marked words themselves, most recently marked first.
func (r *Repo) ListWords(ctx context.Context, userID uuid.UUID) ([]domain.Word, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listWordsSQL, userID)
	if err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}
	defer rows.Close()

	result := []domain.Word{}
	for rows.Next() {
		var (
			w   domain.Word
			pos string
		)
		if err := rows.Scan(&w.ID, &w.Original, &w.Reading, &w.Pronunciation, &w.Meaning, &pos, &w.Order, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, postgres.MapError(err, "user", userID)
		}
		w.PartOfSpeech = domain.PartOfSpeech(pos)
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}
	return result, nil
}
