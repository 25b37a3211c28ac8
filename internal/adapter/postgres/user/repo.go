// Package user implements the User repository using PostgreSQL.
// Users mirror identities issued by the external auth provider.
package user

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

const table = "users"

var columns = []string{"id", "email", "is_admin", "created_at", "updated_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	return r.getOne(ctx, query, id)
}

// Upsert records a signed-in identity. A known id keeps its admin flag and gets
// its email refreshed; a new id is inserted as a regular user.
func (r *Repo) Upsert(ctx context.Context, id uuid.UUID, email string) (*domain.User, error) {
	query := postgres.Builder().
		Insert(table).
		Columns("id", "email").
		Values(id, strings.TrimSpace(email)).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET email = EXCLUDED.email,
			    updated_at = CASE WHEN users.email = EXCLUDED.email THEN users.updated_at ELSE now() END
			RETURNING ` + strings.Join(columns, ", "))

	return r.getOne(ctx, query, id)
}

// SetAdminByEmail sets the admin flag of the user with this email.
// Returns domain.ErrNotFound if no user has that email.
func (r *Repo) SetAdminByEmail(ctx context.Context, email string, isAdmin bool) (*domain.User, error) {
	query := postgres.Builder().
		Update(table).
		Set("is_admin", isAdmin).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"email": strings.TrimSpace(email)}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.getOne(ctx, query, email)
}

func (r *Repo) getOne(ctx context.Context, query postgres.Sqlizer, key any) (*domain.User, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	u, err := scanUser(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	return &u, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
