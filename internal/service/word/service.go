package word

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

type wordRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	List(ctx context.Context, f domain.WordFilter) ([]domain.Word, error)
	ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Word, error)
	CountReferences(ctx context.Context, id uuid.UUID) (int, error)
	Create(ctx context.Context, w domain.Word) (*domain.Word, error)
	Update(ctx context.Context, w domain.Word) (*domain.Word, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteOrphansBefore(ctx context.Context, threshold time.Time) ([]uuid.UUID, error)
}

type songRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements administrative word operations.
type Service struct {
	log   *slog.Logger
	words wordRepo
	songs songRepo
	tx    txManager
}

// NewService creates a new word service.
func NewService(logger *slog.Logger, words wordRepo, songs songRepo, tx txManager) *Service {
	return &Service{
		log:   logger.With("service", "word"),
		words: words,
		songs: songs,
		tx:    tx,
	}
}
