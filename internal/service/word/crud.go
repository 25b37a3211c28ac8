package word

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// CreateWord inserts a new word. A word with the same (original, reading)
// already in the lexicon is a conflict.
func (s *Service) CreateWord(ctx context.Context, input CreateWordInput) (*domain.Word, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.words.Create(ctx, input.word())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.NewConflictError("word", "a word with this original and reading already exists")
		}
		return nil, fmt.Errorf("create word: %w", err)
	}

	s.log.InfoContext(ctx, "word created",
		slog.String("word_id", w.ID.String()),
		slog.String("original", w.Original),
	)
	return w, nil
}

// GetWord returns a word by id.
func (s *Service) GetWord(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.words.GetByID(ctx, id)
}

// ListWords returns a page of words matching the filter.
func (s *Service) ListWords(ctx context.Context, f domain.WordFilter) ([]domain.Word, error) {
	if f.PartOfSpeech != nil && !f.PartOfSpeech.IsValid() {
		return nil, domain.NewValidationError("word_type", fmt.Sprintf("unknown word type %q", *f.PartOfSpeech))
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, domain.NewValidationError("limit", "must not be negative")
	}
	return s.words.List(ctx, f)
}

// ListSongWords returns the distinct words of a song in the order they first appear.
func (s *Service) ListSongWords(ctx context.Context, songID uuid.UUID) ([]domain.Word, error) {
	if songID == uuid.Nil {
		return nil, domain.NewValidationError("song_id", "required")
	}
	if _, err := s.songs.GetByID(ctx, songID); err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}
	return s.words.ListBySong(ctx, songID)
}

// UpdateWord overwrites a word. Moving it onto the key of another word is a conflict.
func (s *Service) UpdateWord(ctx context.Context, input UpdateWordInput) (*domain.Word, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.words.Update(ctx, input.word())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.NewConflictError("word", "a word with this original and reading already exists")
		}
		return nil, fmt.Errorf("update word: %w", err)
	}

	s.log.InfoContext(ctx, "word updated", slog.String("word_id", w.ID.String()))
	return w, nil
}

// DeleteWord removes a word that no sentence uses. A referenced word is
// refused with a ConflictError naming the number of sentences.
func (s *Service) DeleteWord(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.words.CountReferences(txCtx, id)
		if err != nil {
			return fmt.Errorf("count references: %w", err)
		}
		if n > 0 {
			return domain.NewConflictError("word", fmt.Sprintf("used in %d sentences", n))
		}
		return s.words.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "word deleted", slog.String("word_id", id.String()))
	return nil
}
