package lyrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// ImportLyrics stores a lyrics document in one transaction. The song is
// matched by trimmed title and created if missing; sentences are appended
// after the song's existing ones; every word is resolved through a fresh
// Resolver and linked at its position. Any failure rolls back the whole import.
func (s *Service) ImportLyrics(ctx context.Context, doc domain.LyricsDocument) (*domain.ImportResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Title)

	var result domain.ImportResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		result = domain.ImportResult{}

		song, created, err := s.findOrCreateSong(txCtx, title, domain.TrimOrNil(doc.TitleKorean))
		if err != nil {
			return err
		}
		result.SongID = song.ID
		result.SongCreated = created

		next, err := s.sentences.NextOrder(txCtx, song.ID)
		if err != nil {
			return fmt.Errorf("next sentence order: %w", err)
		}

		resolver := NewResolver(s.words)
		for i, entry := range doc.Sentences {
			order := next + i
			sentence, err := s.sentences.Create(txCtx, domain.Sentence{
				SongID:        song.ID,
				Original:      strings.TrimSpace(entry.Original),
				Pronunciation: strings.TrimSpace(entry.Pronunciation),
				Meaning:       strings.TrimSpace(entry.Meaning),
				Order:         order,
			})
			if err != nil {
				return orderConflict(err, "sentence", fmt.Sprintf("order %d already used in song", order))
			}
			result.SentencesAdded++

			for j, w := range entry.Words {
				id, err := resolver.Resolve(txCtx, w)
				if err != nil {
					return fmt.Errorf("lyrics[%d].words[%d]: %w", i, j, err)
				}
				if id.Created {
					result.WordsCreated++
				} else {
					result.WordsReused++
				}

				if _, err := s.sentences.Link(txCtx, sentence.ID, id.ID, j); err != nil {
					return orderConflict(err, "sentence_word", fmt.Sprintf("position %d already used in sentence", j))
				}
				result.Links++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordImport(ctx, result)
	s.log.InfoContext(ctx, "lyrics imported",
		slog.String("song_id", result.SongID.String()),
		slog.Bool("song_created", result.SongCreated),
		slog.Int("sentences", result.SentencesAdded),
		slog.Int("words_created", result.WordsCreated),
		slog.Int("words_reused", result.WordsReused),
	)

	return &result, nil
}

func (s *Service) findOrCreateSong(ctx context.Context, title string, titleKorean *string) (*domain.Song, bool, error) {
	song, err := s.songs.GetByTitle(ctx, title)
	if err == nil {
		return song, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get song by title: %w", err)
	}

	song, err = s.songs.Create(ctx, title, titleKorean)
	if err != nil {
		return nil, false, fmt.Errorf("create song: %w", err)
	}
	return song, true, nil
}

// orderConflict turns a unique violation on an order column into a ConflictError.
func orderConflict(err error, entity, reason string) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return domain.NewConflictError(entity, reason)
	}
	return fmt.Errorf("%s: %w", entity, err)
}
