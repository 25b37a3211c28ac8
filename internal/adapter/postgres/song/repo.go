// Package song implements the Song repository using PostgreSQL.
package song

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

const table = "songs"

var columns = []string{"id", "title", "title_korean", "created_at", "updated_at"}

// Repo provides song persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new song repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a song by primary key.
// Returns domain.ErrNotFound if the song does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	return r.getOne(ctx, query, id)
}

// GetByTitle returns the song whose stored title equals the trimmed title.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) GetByTitle(ctx context.Context, title string) (*domain.Song, error) {
	title = strings.TrimSpace(title)
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"title": title})

	return r.getOne(ctx, query, title)
}

// List returns all songs ordered by title.
// Returns an empty slice (not nil) when there are no songs.
func (r *Repo) List(ctx context.Context) ([]domain.Song, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list songs: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "song", "list")
	}
	defer rows.Close()

	songs := []domain.Song{}
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, postgres.MapError(err, "song", "list")
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "song", "list")
	}

	return songs, nil
}

// ExistsByTitleExcept reports whether a song other than exceptID already uses title.
// Pass uuid.Nil to check against every song.
func (r *Repo) ExistsByTitleExcept(ctx context.Context, title string, exceptID uuid.UUID) (bool, error) {
	sub := postgres.Builder().
		Select("1").
		From(table).
		Where(squirrel.Eq{"title": strings.TrimSpace(title)}).
		Where(squirrel.NotEq{"id": exceptID})

	sql, args, err := sub.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build song exists: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "song", title)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new song with a trimmed title.
// Returns domain.ErrAlreadyExists if the title is taken.
func (r *Repo) Create(ctx context.Context, title string, titleKorean *string) (*domain.Song, error) {
	title = strings.TrimSpace(title)
	query := postgres.Builder().
		Insert(table).
		Columns("title", "title_korean").
		Values(title, domain.TrimOrNil(titleKorean)).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.getOne(ctx, query, title)
}

// Update sets title and korean title of a song.
// Returns domain.ErrNotFound if the song does not exist and domain.ErrAlreadyExists
// if the new title belongs to another song.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, title string, titleKorean *string) (*domain.Song, error) {
	query := postgres.Builder().
		Update(table).
		Set("title", strings.TrimSpace(title)).
		Set("title_korean", domain.TrimOrNil(titleKorean)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.getOne(ctx, query, id)
}

// Delete removes a song. CASCADE deletes its sentences and their word links;
// the words themselves stay and are left for the caller to collect.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete song: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "song", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("song %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, query postgres.Sqlizer, key any) (*domain.Song, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build song query: %w", err)
	}

	s, err := scanSong(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "song", key)
	}
	return &s, nil
}

func scanSong(row pgx.Row) (domain.Song, error) {
	var s domain.Song
	err := row.Scan(&s.ID, &s.Title, &s.TitleKorean, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
