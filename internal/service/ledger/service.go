// Package ledger tracks which words a user has marked as not yet known.
//
// A signed-in user's marks live in the lexicon store. An anonymous user's
// marks live on the device, when the process has a device ledger.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/pkg/ctxutil"
)

type unknownWordRepo interface {
	Add(ctx context.Context, userID, wordID uuid.UUID) error
	Remove(ctx context.Context, userID, wordID uuid.UUID) error
	Exists(ctx context.Context, userID, wordID uuid.UUID) (bool, error)
	ListWordIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListWords(ctx context.Context, userID uuid.UUID) ([]domain.Word, error)
}

type wordRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Word, error)
}

// deviceLedger is the anonymous, device-local ledger.
type deviceLedger interface {
	IsUnknown(ctx context.Context, wordID uuid.UUID) (bool, error)
	SetUnknown(ctx context.Context, wordID uuid.UUID, flag bool) error
	List(ctx context.Context) ([]uuid.UUID, error)
}

// Service implements the unknown-word ledger.
type Service struct {
	log    *slog.Logger
	store  unknownWordRepo
	words  wordRepo
	device deviceLedger
}

// NewService creates a ledger backed by the store only. Anonymous callers get
// domain.ErrUnauthorized until SetDevice is called.
func NewService(logger *slog.Logger, store unknownWordRepo, words wordRepo) *Service {
	return &Service{
		log:   logger.With("service", "ledger"),
		store: store,
		words: words,
	}
}

// SetDevice enables the anonymous ledger.
func (s *Service) SetDevice(device deviceLedger) {
	s.device = device
}

// IsUnknown reports whether the caller marked the word.
func (s *Service) IsUnknown(ctx context.Context, wordID uuid.UUID) (bool, error) {
	if wordID == uuid.Nil {
		return false, domain.NewValidationError("word_id", "required")
	}
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return s.store.Exists(ctx, userID, wordID)
	}
	if s.device == nil {
		return false, domain.ErrUnauthorized
	}
	return s.device.IsUnknown(ctx, wordID)
}

// SetUnknown marks (flag true) or unmarks the word. Both directions are idempotent.
func (s *Service) SetUnknown(ctx context.Context, wordID uuid.UUID, flag bool) error {
	if wordID == uuid.Nil {
		return domain.NewValidationError("word_id", "required")
	}

	userID, signedIn := ctxutil.UserIDFromCtx(ctx)
	var err error
	switch {
	case signedIn && flag:
		err = s.store.Add(ctx, userID, wordID)
	case signedIn:
		err = s.store.Remove(ctx, userID, wordID)
	case s.device != nil:
		err = s.device.SetUnknown(ctx, wordID, flag)
	default:
		return domain.ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("set unknown: %w", err)
	}

	s.log.DebugContext(ctx, "unknown word set",
		slog.String("word_id", wordID.String()),
		slog.Bool("unknown", flag),
		slog.Bool("device", !signedIn),
	)
	return nil
}

// List returns the ids of every word the caller marked.
func (s *Service) List(ctx context.Context) ([]uuid.UUID, error) {
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return s.store.ListWordIDs(ctx, userID)
	}
	if s.device == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.device.List(ctx)
}

// ListWords returns the marked words themselves. Device entries whose word
// no longer exists are skipped.
func (s *Service) ListWords(ctx context.Context) ([]domain.Word, error) {
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return s.store.ListWords(ctx, userID)
	}
	if s.device == nil {
		return nil, domain.ErrUnauthorized
	}

	ids, err := s.device.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("device ledger: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Word{}, nil
	}

	found, err := s.words.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get words: %w", err)
	}
	byID := make(map[uuid.UUID]domain.Word, len(found))
	for _, w := range found {
		byID[w.ID] = w
	}

	result := make([]domain.Word, 0, len(found))
	for _, id := range ids {
		if w, ok := byID[id]; ok {
			result = append(result, w)
		}
	}
	return result, nil
}
