// Package song implements administrative song and sentence management,
// including deletion with garbage collection of orphaned words.
package song

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

type songRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error)
	List(ctx context.Context) ([]domain.Song, error)
	ExistsByTitleExcept(ctx context.Context, title string, exceptID uuid.UUID) (bool, error)
	Create(ctx context.Context, title string, titleKorean *string) (*domain.Song, error)
	Update(ctx context.Context, id uuid.UUID, title string, titleKorean *string) (*domain.Song, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sentenceRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sentence, error)
	ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error)
	NextOrder(ctx context.Context, songID uuid.UUID) (int, error)
	Create(ctx context.Context, s domain.Sentence) (*domain.Sentence, error)
	Delete(ctx context.Context, id uuid.UUID) error
	WordIDs(ctx context.Context, sentenceID uuid.UUID) ([]uuid.UUID, error)
	WordIDsBySong(ctx context.Context, songID uuid.UUID) ([]uuid.UUID, error)
	NextLinkOrder(ctx context.Context, sentenceID uuid.UUID) (int, error)
	Link(ctx context.Context, sentenceID, wordID uuid.UUID, order int) (*domain.SentenceWord, error)
	DeleteLinks(ctx context.Context, sentenceID uuid.UUID) (int, error)
}

type wordRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	DeleteUnreferenced(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type metrics interface {
	RecordCollected(ctx context.Context, trigger string, n int)
}

// Service provides song and sentence administration.
type Service struct {
	songs     songRepo
	sentences sentenceRepo
	words     wordRepo
	tx        txManager
	metrics   metrics
	log       *slog.Logger
}

// NewService creates a new song service.
func NewService(
	log *slog.Logger,
	songs songRepo,
	sentences sentenceRepo,
	words wordRepo,
	tx txManager,
	metrics metrics,
) *Service {
	return &Service{
		songs:     songs,
		sentences: sentences,
		words:     words,
		tx:        tx,
		metrics:   metrics,
		log:       log.With("service", "song"),
	}
}

// DeleteResult reports what a deletion removed besides the target itself.
type DeleteResult struct {
	CollectedWordIDs []uuid.UUID
}
