package song

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// ListSentences returns the sentences of a song in order.
func (s *Service) ListSentences(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error) {
	if songID == uuid.Nil {
		return nil, domain.NewValidationError("song_id", "required")
	}
	if _, err := s.songs.GetByID(ctx, songID); err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}
	return s.sentences.ListBySong(ctx, songID)
}

// AddSentence appends a sentence after the song's last one.
func (s *Service) AddSentence(ctx context.Context, input AddSentenceInput) (*domain.Sentence, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var sentence *domain.Sentence
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.songs.GetByID(txCtx, input.SongID); err != nil {
			return fmt.Errorf("get song: %w", err)
		}

		next, err := s.sentences.NextOrder(txCtx, input.SongID)
		if err != nil {
			return fmt.Errorf("next sentence order: %w", err)
		}

		sentence, err = s.sentences.Create(txCtx, domain.Sentence{
			SongID:        input.SongID,
			Original:      strings.TrimSpace(input.Original),
			Pronunciation: strings.TrimSpace(input.Pronunciation),
			Meaning:       strings.TrimSpace(input.Meaning),
			Order:         next,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return domain.NewConflictError("sentence", fmt.Sprintf("order %d already used in song", next))
			}
			return fmt.Errorf("create sentence: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "sentence added",
		slog.String("song_id", input.SongID.String()),
		slog.String("sentence_id", sentence.ID.String()),
		slog.Int("order", sentence.Order),
	)
	return sentence, nil
}

// LinkWord appends an existing word to a sentence.
func (s *Service) LinkWord(ctx context.Context, input LinkWordInput) (*domain.SentenceWord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var link *domain.SentenceWord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.sentences.GetByID(txCtx, input.SentenceID); err != nil {
			return fmt.Errorf("get sentence: %w", err)
		}
		if _, err := s.words.GetByID(txCtx, input.WordID); err != nil {
			return fmt.Errorf("get word: %w", err)
		}

		next, err := s.sentences.NextLinkOrder(txCtx, input.SentenceID)
		if err != nil {
			return fmt.Errorf("next link order: %w", err)
		}

		link, err = s.sentences.Link(txCtx, input.SentenceID, input.WordID, next)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return domain.NewConflictError("sentence_word", fmt.Sprintf("position %d already used in sentence", next))
			}
			return fmt.Errorf("link word: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "word linked",
		slog.String("sentence_id", input.SentenceID.String()),
		slog.String("word_id", input.WordID.String()),
		slog.Int("order", link.Order),
	)
	return link, nil
}
