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

// CreateSong creates a song. A title that is already taken is a conflict;
// unlike a lyrics import, this never appends to an existing song.
func (s *Service) CreateSong(ctx context.Context, input CreateSongInput) (*domain.Song, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)

	taken, err := s.songs.ExistsByTitleExcept(ctx, title, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if taken {
		return nil, domain.NewConflictError("song", "title already exists")
	}

	song, err := s.songs.Create(ctx, title, domain.TrimOrNil(input.TitleKorean))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.NewConflictError("song", "title already exists")
		}
		return nil, fmt.Errorf("create song: %w", err)
	}

	s.log.InfoContext(ctx, "song created",
		slog.String("song_id", song.ID.String()),
		slog.String("title", song.Title),
	)
	return song, nil
}

// GetSong returns a song by id.
func (s *Service) GetSong(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.songs.GetByID(ctx, id)
}

// ListSongs returns every song.
func (s *Service) ListSongs(ctx context.Context) ([]domain.Song, error) {
	return s.songs.List(ctx)
}

// UpdateSong replaces the titles of a song.
func (s *Service) UpdateSong(ctx context.Context, input UpdateSongInput) (*domain.Song, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)

	taken, err := s.songs.ExistsByTitleExcept(ctx, title, input.ID)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if taken {
		return nil, domain.NewConflictError("song", "title already exists")
	}

	song, err := s.songs.Update(ctx, input.ID, title, domain.TrimOrNil(input.TitleKorean))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.NewConflictError("song", "title already exists")
		}
		return nil, fmt.Errorf("update song: %w", err)
	}

	s.log.InfoContext(ctx, "song updated",
		slog.String("song_id", song.ID.String()),
		slog.String("title", song.Title),
	)
	return song, nil
}
