package word

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newTestService(words *wordRepoMock, songs *songRepoMock) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	tx := &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) },
	}
	return NewService(logger, words, songs, tx)
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// CreateWord
// ---------------------------------------------------------------------------

func TestService_CreateWord_DefaultsToNoun(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		CreateFunc: func(_ context.Context, w domain.Word) (*domain.Word, error) {
			w.ID = uuid.New()
			return &w, nil
		},
	}
	svc := newTestService(words, nil)

	got, err := svc.CreateWord(context.Background(), CreateWordInput{
		Original: "夜 ", Reading: ptr("よる"), Pronunciation: " 요루 ", Meaning: "밤",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PartOfSpeechNoun, got.PartOfSpeech)
	assert.Equal(t, "夜 ", got.Original, "original is part of the key and stays verbatim")
	assert.Equal(t, "요루", got.Pronunciation)
	require.Len(t, words.CreateCalls(), 1)
}

func TestService_CreateWord_DuplicateKeyIsConflict(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		CreateFunc: func(context.Context, domain.Word) (*domain.Word, error) {
			return nil, fmt.Errorf("word: %w", domain.ErrAlreadyExists)
		},
	}
	svc := newTestService(words, nil)

	_, err := svc.CreateWord(context.Background(), CreateWordInput{
		Original: "夜", Pronunciation: "요루", Meaning: "밤",
	})

	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "word", ce.Entity)
}

func TestService_CreateWord_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  CreateWordInput
		fields []string
	}{
		{
			name:   "all required missing",
			input:  CreateWordInput{},
			fields: []string{"original", "pronunciation", "meaning"},
		},
		{
			name:   "unknown word type",
			input:  CreateWordInput{Original: "夜", Pronunciation: "요루", Meaning: "밤", PartOfSpeech: "pronoun"},
			fields: []string{"word_type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(&wordRepoMock{}, nil)
			_, err := svc.CreateWord(context.Background(), tt.input)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			var got []string
			for _, fe := range ve.Errors {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

// ---------------------------------------------------------------------------
// UpdateWord / ListWords / ListSongWords
// ---------------------------------------------------------------------------

func TestService_UpdateWord_ConflictOnTakenKey(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		UpdateFunc: func(context.Context, domain.Word) (*domain.Word, error) { return nil, domain.ErrAlreadyExists },
	}
	svc := newTestService(words, nil)

	_, err := svc.UpdateWord(context.Background(), UpdateWordInput{
		ID: uuid.New(), Original: "夜", Pronunciation: "요루", Meaning: "밤",
	})

	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_UpdateWord_NotFound(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		UpdateFunc: func(context.Context, domain.Word) (*domain.Word, error) { return nil, domain.ErrNotFound },
	}
	svc := newTestService(words, nil)

	_, err := svc.UpdateWord(context.Background(), UpdateWordInput{
		ID: uuid.New(), Original: "夜", Pronunciation: "요루", Meaning: "밤", PartOfSpeech: domain.PartOfSpeechAdverb,
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListWords_RejectsUnknownType(t *testing.T) {
	t.Parallel()

	svc := newTestService(&wordRepoMock{}, nil)
	_, err := svc.ListWords(context.Background(), domain.WordFilter{PartOfSpeech: ptr(domain.PartOfSpeech("pronoun"))})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_ListSongWords_UnknownSong(t *testing.T) {
	t.Parallel()

	songs := &songRepoMock{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.Song, error) { return nil, domain.ErrNotFound },
	}
	svc := newTestService(&wordRepoMock{}, songs)

	_, err := svc.ListSongWords(context.Background(), uuid.New())

	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// DeleteWord
// ---------------------------------------------------------------------------

func TestService_DeleteWord_RefusedWhileReferenced(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		CountReferencesFunc: func(context.Context, uuid.UUID) (int, error) { return 3, nil },
	}
	svc := newTestService(words, nil)

	err := svc.DeleteWord(context.Background(), uuid.New())

	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "used in 3 sentences", ce.Reason)
	assert.Empty(t, words.DeleteCalls())
}

func TestService_DeleteWord_Unreferenced(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	words := &wordRepoMock{
		CountReferencesFunc: func(context.Context, uuid.UUID) (int, error) { return 0, nil },
		DeleteFunc:          func(context.Context, uuid.UUID) error { return nil },
	}
	svc := newTestService(words, nil)

	require.NoError(t, svc.DeleteWord(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, words.DeleteCalls())
}

// ---------------------------------------------------------------------------
// ExportWords
// ---------------------------------------------------------------------------

func TestService_ExportWords_GroupsByType(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		ListFunc: func(context.Context, domain.WordFilter) ([]domain.Word, error) {
			return []domain.Word{
				{Original: "猫", PartOfSpeech: domain.PartOfSpeechNoun},
				{Original: "が", PartOfSpeech: domain.PartOfSpeechParticle},
				{Original: "走る", PartOfSpeech: domain.PartOfSpeechVerb},
				{Original: "美しい", PartOfSpeech: domain.PartOfSpeechAdjective},
				{Original: "ゆっくり", PartOfSpeech: domain.PartOfSpeechAdverb},
				{Original: "夜", PartOfSpeech: domain.PartOfSpeechNoun},
			}, nil
		},
	}
	svc := newTestService(words, nil)

	e, err := svc.ExportWords(context.Background())

	require.NoError(t, err)
	assert.Len(t, e.Nouns, 2)
	assert.Len(t, e.Particles, 1)
	assert.Len(t, e.Verbs, 1)
	assert.Len(t, e.Adjectives, 1)
	assert.Len(t, e.Adverbs, 1)
	assert.Equal(t, 6, e.Len())
}

func TestService_ExportWords_PagesThroughLexicon(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		ListFunc: func(_ context.Context, f domain.WordFilter) ([]domain.Word, error) {
			n := exportPageSize
			if f.Offset > 0 {
				n = 1
			}
			page := make([]domain.Word, n)
			for i := range page {
				page[i] = domain.Word{ID: uuid.New(), PartOfSpeech: domain.PartOfSpeechVerb}
			}
			return page, nil
		},
	}
	svc := newTestService(words, nil)

	e, err := svc.ExportWords(context.Background())

	require.NoError(t, err)
	assert.Len(t, e.Verbs, exportPageSize+1)
	calls := words.ListCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, exportPageSize, calls[1].Offset)
}

func TestService_ExportWords_EmptyLexiconHasEmptyGroups(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		ListFunc: func(context.Context, domain.WordFilter) ([]domain.Word, error) { return []domain.Word{}, nil },
	}
	svc := newTestService(words, nil)

	e, err := svc.ExportWords(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, e.Nouns)
	assert.NotNil(t, e.Adverbs)
	assert.Zero(t, e.Len())
}

func TestService_PurgeOrphans(t *testing.T) {
	t.Parallel()

	var gotThreshold time.Time
	words := &wordRepoMock{
		DeleteOrphansFunc: func(_ context.Context, threshold time.Time) ([]uuid.UUID, error) {
			gotThreshold = threshold
			return []uuid.UUID{uuid.New(), uuid.New()}, nil
		},
	}
	svc := newTestService(words, &songRepoMock{})

	n, err := svc.PurgeOrphans(context.Background(), 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.WithinDuration(t, time.Now().Add(-48*time.Hour), gotThreshold, time.Minute)
}
