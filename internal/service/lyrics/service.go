// Package lyrics imports structured lyrics into the lexicon, runs the
// ingestion pipeline that produces them, and serves the reading view of a song.
package lyrics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/dataloader"
	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/ingestion"
)

type songRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error)
	GetByTitle(ctx context.Context, title string) (*domain.Song, error)
	Create(ctx context.Context, title string, titleKorean *string) (*domain.Song, error)
}

type sentenceRepo interface {
	ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error)
	NextOrder(ctx context.Context, songID uuid.UUID) (int, error)
	Create(ctx context.Context, s domain.Sentence) (*domain.Sentence, error)
	Link(ctx context.Context, sentenceID, wordID uuid.UUID, order int) (*domain.SentenceWord, error)
}

type wordRepo interface {
	FindByKey(ctx context.Context, original string, reading *string) (*domain.Word, error)
	Create(ctx context.Context, w domain.Word) (*domain.Word, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type annotator interface {
	Annotate(doc *domain.LyricsDocument) ingestion.AnnotationStats
}

type pageFetcher interface {
	Fetch(ctx context.Context, url string) (*ingestion.Page, error)
}

type metrics interface {
	RecordImport(ctx context.Context, r domain.ImportResult)
	RecordIngestion(ctx context.Context, usage ingestion.Usage, elapsed time.Duration, err error)
}

// ErrIngestionDisabled is returned by Ingest when no ingestion source is configured.
var ErrIngestionDisabled = errors.New("ingestion source not configured")

// Service provides lyrics import, ingestion and the lyrics view.
type Service struct {
	songs     songRepo
	sentences sentenceRepo
	words     wordRepo
	tx        txManager
	loaders   *dataloader.Repos
	metrics   metrics
	log       *slog.Logger

	source    ingestion.Source
	annotator annotator
	fetcher   pageFetcher
}

// NewService creates a new lyrics service. Ingestion stays disabled until
// SetIngestion is called.
func NewService(
	log *slog.Logger,
	songs songRepo,
	sentences sentenceRepo,
	words wordRepo,
	tx txManager,
	loaders *dataloader.Repos,
	metrics metrics,
) *Service {
	return &Service{
		songs:     songs,
		sentences: sentences,
		words:     words,
		tx:        tx,
		loaders:   loaders,
		metrics:   metrics,
		log:       log.With("service", "lyrics"),
	}
}

// SetIngestion enables Ingest and IngestURL. The annotator and the fetcher may be nil.
func (s *Service) SetIngestion(source ingestion.Source, a annotator, f pageFetcher) {
	s.source = source
	s.annotator = a
	s.fetcher = f
}

// IngestionEnabled reports whether an ingestion source is configured.
func (s *Service) IngestionEnabled() bool {
	return s.source != nil
}
