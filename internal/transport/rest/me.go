package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

type profileService interface {
	GetProfile(ctx context.Context) (*domain.User, error)
}

// ProfileHandler serves the signed-in user.
type ProfileHandler struct {
	users profileService
	log   *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(users profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		users: users,
		log:   logger.With("handler", "profile"),
	}
}

// Me returns the caller's profile.
// GET /me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetProfile(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, userResponse{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin})
}
