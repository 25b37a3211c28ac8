package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/pkg/ctxutil"
)

// Authenticate verifies an access token and mirrors its identity into the
// users table. The returned user carries the admin flag.
// Every token failure is domain.ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.verifier.Verify(token)
	if err != nil {
		s.log.DebugContext(ctx, "token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	if strings.TrimSpace(id.Email) == "" {
		// Without an email the identity cannot be inserted; it must already be known.
		u, err := s.users.GetByID(ctx, id.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: token carries no email", domain.ErrUnauthorized)
		}
		if err != nil {
			return nil, fmt.Errorf("user.Authenticate: %w", err)
		}
		return u, nil
	}

	u, err := s.users.Upsert(ctx, id.UserID, id.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Another id already owns this email.
			return nil, fmt.Errorf("%w: email belongs to another user", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("user.Authenticate: %w", err)
	}
	return u, nil
}

// GetProfile returns the authenticated user.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) GetProfile(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.GetProfile: %w", err)
	}
	return u, nil
}
