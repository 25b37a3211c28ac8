package flashcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

type songRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error)
}

type wordRepo interface {
	ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Word, error)
}

type ledger interface {
	List(ctx context.Context) ([]uuid.UUID, error)
}

// Service builds flashcard decks.
type Service struct {
	log    *slog.Logger
	songs  songRepo
	words  wordRepo
	ledger ledger
}

// NewService creates a new flashcard service.
func NewService(logger *slog.Logger, songs songRepo, words wordRepo, ledger ledger) *Service {
	return &Service{
		log:    logger.With("service", "flashcard"),
		songs:  songs,
		words:  words,
		ledger: ledger,
	}
}

// NewDeck builds the deck of a song: its distinct words in sentence and link
// order, filtered by the settings' word types, and by the caller's ledger when
// ShowOnlyUnknown is set. The cursor starts at the first card.
//
// The ledger is also read without ShowOnlyUnknown to mark cards; a caller
// without a ledger (anonymous, no device) then simply gets no marks.
func (s *Service) NewDeck(ctx context.Context, songID uuid.UUID, settings domain.DisplaySettings) (*Deck, error) {
	if songID == uuid.Nil {
		return nil, domain.NewValidationError("song_id", "required")
	}
	if _, err := s.songs.GetByID(ctx, songID); err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}

	words, err := s.words.ListBySong(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	unknown, err := s.unknownSet(ctx, settings.ShowOnlyUnknown)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Word, 0, len(words))
	for _, w := range words {
		if !settings.Allows(w.PartOfSpeech) {
			continue
		}
		if settings.ShowOnlyUnknown && !unknown[w.ID] {
			continue
		}
		filtered = append(filtered, w)
	}

	s.log.DebugContext(ctx, "deck built",
		slog.String("song_id", songID.String()),
		slog.Int("words", len(words)),
		slog.Int("cards", len(filtered)),
	)
	return newDeck(songID, filtered, settings, unknown), nil
}

func (s *Service) unknownSet(ctx context.Context, required bool) (map[uuid.UUID]bool, error) {
	ids, err := s.ledger.List(ctx)
	if err != nil {
		if !required && errors.Is(err, domain.ErrUnauthorized) {
			return map[uuid.UUID]bool{}, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
