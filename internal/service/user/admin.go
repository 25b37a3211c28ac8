package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// SetAdminInput holds parameters for changing a user's admin flag.
type SetAdminInput struct {
	Email   string
	IsAdmin bool
}

// Validate validates the input.
func (i SetAdminInput) Validate() error {
	email := strings.TrimSpace(i.Email)
	switch {
	case email == "":
		return domain.NewValidationError("email", "required")
	case !strings.Contains(email, "@"):
		return domain.NewValidationError("email", "invalid email")
	}
	return nil
}

// SetAdmin flips the admin flag of the user with the given email. It is an
// operator action (cmd/promote) and does not check the caller.
func (s *Service) SetAdmin(ctx context.Context, input SetAdminInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.SetAdminByEmail(ctx, strings.TrimSpace(input.Email), input.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("user.SetAdmin: %w", err)
	}

	s.log.InfoContext(ctx, "admin flag updated",
		slog.String("user_id", u.ID.String()),
		slog.Bool("is_admin", u.IsAdmin),
	)
	return u, nil
}
