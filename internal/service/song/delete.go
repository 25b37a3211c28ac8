package song

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// DeleteSentence removes a sentence and its links, then deletes the words it
// used that no other sentence references. Everything runs in one transaction.
func (s *Service) DeleteSentence(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	var collected []uuid.UUID
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		wordIDs, err := s.sentences.WordIDs(txCtx, id)
		if err != nil {
			return fmt.Errorf("collect word ids: %w", err)
		}

		if _, err := s.sentences.DeleteLinks(txCtx, id); err != nil {
			return fmt.Errorf("delete links: %w", err)
		}
		if err := s.sentences.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete sentence: %w", err)
		}

		collected, err = s.words.DeleteUnreferenced(txCtx, wordIDs)
		if err != nil {
			return fmt.Errorf("collect words: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCollected(ctx, "sentence", len(collected))
	s.log.InfoContext(ctx, "sentence deleted",
		slog.String("sentence_id", id.String()),
		slog.Int("words_collected", len(collected)),
	)
	return &DeleteResult{CollectedWordIDs: collected}, nil
}

// DeleteSong removes a song (its sentences and links cascade), then deletes
// the words that no remaining sentence references. Everything runs in one
// transaction.
func (s *Service) DeleteSong(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	var collected []uuid.UUID
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		wordIDs, err := s.sentences.WordIDsBySong(txCtx, id)
		if err != nil {
			return fmt.Errorf("collect word ids: %w", err)
		}

		if err := s.songs.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete song: %w", err)
		}

		collected, err = s.words.DeleteUnreferenced(txCtx, wordIDs)
		if err != nil {
			return fmt.Errorf("collect words: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCollected(ctx, "song", len(collected))
	s.log.InfoContext(ctx, "song deleted",
		slog.String("song_id", id.String()),
		slog.Int("words_collected", len(collected)),
	)
	return &DeleteResult{CollectedWordIDs: collected}, nil
}
