package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/auth"
	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Upsert(ctx context.Context, id uuid.UUID, email string) (*domain.User, error)
	SetAdminByEmail(ctx context.Context, email string, isAdmin bool) (*domain.User, error)
}

// tokenVerifier checks an access token of the external auth provider.
type tokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Service implements authentication and user administration.
type Service struct {
	log      *slog.Logger
	users    userRepo
	verifier tokenVerifier
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo, verifier tokenVerifier) *Service {
	return &Service{
		log:      logger.With("service", "user"),
		users:    users,
		verifier: verifier,
	}
}
