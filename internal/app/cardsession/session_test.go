package cardsession

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kashi-backend/internal/adapter/localstore"
	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/service/flashcard"
)

type catalogFake struct {
	songs []domain.Song
	words map[uuid.UUID][]domain.Word
}

func (c *catalogFake) ListSongs(context.Context) ([]domain.Song, error) { return c.songs, nil }

func (c *catalogFake) GetByID(_ context.Context, id uuid.UUID) (*domain.Song, error) {
	for _, s := range c.songs {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (c *catalogFake) ListBySong(_ context.Context, songID uuid.UUID) ([]domain.Word, error) {
	return c.words[songID], nil
}

type fixture struct {
	session *Session
	out     *bytes.Buffer
	ledger  *localstore.DeviceLedger
	words   []domain.Word
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := localstore.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	reading := "ねこ"
	songID := uuid.New()
	words := []domain.Word{
		{ID: uuid.New(), Original: "猫", Reading: &reading, Pronunciation: "neko", Meaning: "cat", PartOfSpeech: domain.PartOfSpeechNoun},
		{ID: uuid.New(), Original: "が", Pronunciation: "ga", Meaning: "subject", PartOfSpeech: domain.PartOfSpeechParticle},
		{ID: uuid.New(), Original: "走る", Pronunciation: "hashiru", Meaning: "run", PartOfSpeech: domain.PartOfSpeechVerb},
	}
	catalog := &catalogFake{
		songs: []domain.Song{{ID: songID, Title: "Neko"}},
		words: map[uuid.UUID][]domain.Word{songID: words},
	}

	ledger := localstore.NewDeviceLedger(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	decks := flashcard.NewService(logger, catalog, catalog, ledger)

	out := &bytes.Buffer{}
	s := New(out, catalog, decks, ledger, localstore.NewSettingsStore(store))
	require.NoError(t, s.Start(ctx))

	return &fixture{session: s, out: out, ledger: ledger, words: words}
}

func TestSession_StartListsSongs(t *testing.T) {
	f := newFixture(t)
	assert.Contains(t, f.out.String(), "1. Neko")
}

func TestSession_NavigationIsClamped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.session.Exec(ctx, "open 1"))
	assert.Contains(t, f.out.String(), "[1/3] 猫 (ねこ)")

	require.NoError(t, f.session.Exec(ctx, "p"))
	assert.Equal(t, 0, f.session.Deck().Position())

	for range 5 {
		require.NoError(t, f.session.Exec(ctx, "n"))
	}
	assert.Equal(t, 2, f.session.Deck().Position())

	require.NoError(t, f.session.Exec(ctx, "go 2"))
	assert.Equal(t, 1, f.session.Deck().Position())
}

func TestSession_ToggleUnknownPersistsOnDevice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.session.Exec(ctx, "open 1"))
	require.NoError(t, f.session.Exec(ctx, "u"))

	unknown, err := f.ledger.IsUnknown(ctx, f.words[0].ID)
	require.NoError(t, err)
	assert.True(t, unknown)
	assert.Contains(t, f.out.String(), "*unknown*")

	require.NoError(t, f.session.Exec(ctx, "u"))
	unknown, err = f.ledger.IsUnknown(ctx, f.words[0].ID)
	require.NoError(t, err)
	assert.False(t, unknown)
}

func TestSession_SettingsRebuildDeck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.session.Exec(ctx, "open 1"))
	require.NoError(t, f.session.Exec(ctx, "n"))

	require.NoError(t, f.session.Exec(ctx, "types verb"))
	assert.Equal(t, 1, f.session.Deck().Len())
	assert.Equal(t, 0, f.session.Deck().Position())

	require.NoError(t, f.session.Exec(ctx, "types noun,verb"))
	require.NoError(t, f.session.Exec(ctx, "show meaning off"))
	card, ok := f.session.Deck().Current()
	require.True(t, ok)
	assert.Empty(t, card.Meaning)
	assert.Equal(t, "neko", card.Pronunciation)
}

func TestSession_OnlyUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ledger.SetUnknown(ctx, f.words[2].ID, true))
	require.NoError(t, f.session.Exec(ctx, "open 1"))
	require.NoError(t, f.session.Exec(ctx, "only on"))

	assert.Equal(t, 1, f.session.Deck().Len())
	card, _ := f.session.Deck().Current()
	assert.Equal(t, "走る", card.Original)
}

func TestSession_UsageErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, line := range []string{"n", "open 9", "open x", "dance"} {
		err := f.session.Exec(ctx, line)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve, line)
	}

	require.NoError(t, f.session.Exec(ctx, "open 1"))
	for _, line := range []string{"types pronoun", "show colour on", "only maybe"} {
		err := f.session.Exec(ctx, line)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve, line)
	}
}

func TestSession_RunStopsOnQuit(t *testing.T) {
	f := newFixture(t)

	err := f.session.Run(context.Background(), strings.NewReader("open 1\nbogus\nq\nn\n"))
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "error: ")
	assert.Equal(t, 0, f.session.Deck().Position(), "commands after quit are not executed")
}
