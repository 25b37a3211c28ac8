package lyrics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/dataloader"
	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// GetSongLyrics returns a song with its sentences in order and, for each
// sentence, its words in link order. Words are loaded in batches.
func (s *Service) GetSongLyrics(ctx context.Context, songID uuid.UUID) (*domain.SongLyrics, error) {
	if songID == uuid.Nil {
		return nil, domain.NewValidationError("song_id", "required")
	}

	song, err := s.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}

	sentences, err := s.sentences.ListBySong(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}

	ids := make([]uuid.UUID, len(sentences))
	for i, st := range sentences {
		ids[i] = st.ID
	}

	words := [][]domain.Word{}
	if len(ids) > 0 {
		loaders := dataloader.FromContextOrNew(ctx, s.loaders)
		var errs []error
		words, errs = loaders.WordsBySentenceID.LoadMany(ctx, ids)()
		for _, e := range errs {
			if e != nil {
				return nil, fmt.Errorf("load words: %w", e)
			}
		}
	}

	view := &domain.SongLyrics{
		Song:      *song,
		Sentences: make([]domain.SentenceWithWords, len(sentences)),
	}
	for i, st := range sentences {
		view.Sentences[i] = domain.SentenceWithWords{Sentence: st, Words: words[i]}
	}
	return view, nil
}
