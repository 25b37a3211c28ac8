package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/service/flashcard"
	"github.com/heartmarshall/kashi-backend/internal/service/lyrics"
	"github.com/heartmarshall/kashi-backend/internal/service/song"
)

// songServiceMock implements songService. Unset funcs panic.
type songServiceMock struct {
	CreateSongFunc     func(ctx context.Context, input song.CreateSongInput) (*domain.Song, error)
	GetSongFunc        func(ctx context.Context, id uuid.UUID) (*domain.Song, error)
	ListSongsFunc      func(ctx context.Context) ([]domain.Song, error)
	UpdateSongFunc     func(ctx context.Context, input song.UpdateSongInput) (*domain.Song, error)
	DeleteSongFunc     func(ctx context.Context, id uuid.UUID) (*song.DeleteResult, error)
	ListSentencesFunc  func(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error)
	AddSentenceFunc    func(ctx context.Context, input song.AddSentenceInput) (*domain.Sentence, error)
	LinkWordFunc       func(ctx context.Context, input song.LinkWordInput) (*domain.SentenceWord, error)
	DeleteSentenceFunc func(ctx context.Context, id uuid.UUID) (*song.DeleteResult, error)

	mu          sync.Mutex
	createCalls []song.CreateSongInput
}

func (m *songServiceMock) CreateSong(ctx context.Context, input song.CreateSongInput) (*domain.Song, error) {
	if m.CreateSongFunc == nil {
		panic("songServiceMock.CreateSongFunc: method is nil but songService.CreateSong was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, input)
	m.mu.Unlock()
	return m.CreateSongFunc(ctx, input)
}

// CreateSongCalls returns the inputs CreateSong was called with.
func (m *songServiceMock) CreateSongCalls() []song.CreateSongInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *songServiceMock) GetSong(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	if m.GetSongFunc == nil {
		panic("songServiceMock.GetSongFunc: method is nil but songService.GetSong was just called")
	}
	return m.GetSongFunc(ctx, id)
}

func (m *songServiceMock) ListSongs(ctx context.Context) ([]domain.Song, error) {
	if m.ListSongsFunc == nil {
		panic("songServiceMock.ListSongsFunc: method is nil but songService.ListSongs was just called")
	}
	return m.ListSongsFunc(ctx)
}

func (m *songServiceMock) UpdateSong(ctx context.Context, input song.UpdateSongInput) (*domain.Song, error) {
	if m.UpdateSongFunc == nil {
		panic("songServiceMock.UpdateSongFunc: method is nil but songService.UpdateSong was just called")
	}
	return m.UpdateSongFunc(ctx, input)
}

func (m *songServiceMock) DeleteSong(ctx context.Context, id uuid.UUID) (*song.DeleteResult, error) {
	if m.DeleteSongFunc == nil {
		panic("songServiceMock.DeleteSongFunc: method is nil but songService.DeleteSong was just called")
	}
	return m.DeleteSongFunc(ctx, id)
}

func (m *songServiceMock) ListSentences(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error) {
	if m.ListSentencesFunc == nil {
		panic("songServiceMock.ListSentencesFunc: method is nil but songService.ListSentences was just called")
	}
	return m.ListSentencesFunc(ctx, songID)
}

func (m *songServiceMock) AddSentence(ctx context.Context, input song.AddSentenceInput) (*domain.Sentence, error) {
	if m.AddSentenceFunc == nil {
		panic("songServiceMock.AddSentenceFunc: method is nil but songService.AddSentence was just called")
	}
	return m.AddSentenceFunc(ctx, input)
}

func (m *songServiceMock) LinkWord(ctx context.Context, input song.LinkWordInput) (*domain.SentenceWord, error) {
	if m.LinkWordFunc == nil {
		panic("songServiceMock.LinkWordFunc: method is nil but songService.LinkWord was just called")
	}
	return m.LinkWordFunc(ctx, input)
}

func (m *songServiceMock) DeleteSentence(ctx context.Context, id uuid.UUID) (*song.DeleteResult, error) {
	if m.DeleteSentenceFunc == nil {
		panic("songServiceMock.DeleteSentenceFunc: method is nil but songService.DeleteSentence was just called")
	}
	return m.DeleteSentenceFunc(ctx, id)
}

// lyricsViewerMock implements lyricsViewer.
type lyricsViewerMock struct {
	GetSongLyricsFunc func(ctx context.Context, songID uuid.UUID) (*domain.SongLyrics, error)
}

func (m *lyricsViewerMock) GetSongLyrics(ctx context.Context, songID uuid.UUID) (*domain.SongLyrics, error) {
	if m.GetSongLyricsFunc == nil {
		panic("lyricsViewerMock.GetSongLyricsFunc: method is nil but lyricsViewer.GetSongLyrics was just called")
	}
	return m.GetSongLyricsFunc(ctx, songID)
}

// lyricsImporterMock implements lyricsImporter.
type lyricsImporterMock struct {
	ImportLyricsFunc func(ctx context.Context, doc domain.LyricsDocument) (*domain.ImportResult, error)
	IngestFunc       func(ctx context.Context, input lyrics.IngestInput) (*lyrics.IngestResult, error)
	IngestURLFunc    func(ctx context.Context, input lyrics.IngestURLInput) (*lyrics.IngestResult, error)

	mu          sync.Mutex
	importCalls []domain.LyricsDocument
}

func (m *lyricsImporterMock) ImportLyrics(ctx context.Context, doc domain.LyricsDocument) (*domain.ImportResult, error) {
	if m.ImportLyricsFunc == nil {
		panic("lyricsImporterMock.ImportLyricsFunc: method is nil but lyricsImporter.ImportLyrics was just called")
	}
	m.mu.Lock()
	m.importCalls = append(m.importCalls, doc)
	m.mu.Unlock()
	return m.ImportLyricsFunc(ctx, doc)
}

// ImportLyricsCalls returns the documents ImportLyrics was called with.
func (m *lyricsImporterMock) ImportLyricsCalls() []domain.LyricsDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importCalls
}

func (m *lyricsImporterMock) Ingest(ctx context.Context, input lyrics.IngestInput) (*lyrics.IngestResult, error) {
	if m.IngestFunc == nil {
		panic("lyricsImporterMock.IngestFunc: method is nil but lyricsImporter.Ingest was just called")
	}
	return m.IngestFunc(ctx, input)
}

func (m *lyricsImporterMock) IngestURL(ctx context.Context, input lyrics.IngestURLInput) (*lyrics.IngestResult, error) {
	if m.IngestURLFunc == nil {
		panic("lyricsImporterMock.IngestURLFunc: method is nil but lyricsImporter.IngestURL was just called")
	}
	return m.IngestURLFunc(ctx, input)
}

// deckBuilderMock implements deckBuilder.
type deckBuilderMock struct {
	NewDeckFunc func(ctx context.Context, songID uuid.UUID, settings domain.DisplaySettings) (*flashcard.Deck, error)

	mu       sync.Mutex
	settings []domain.DisplaySettings
}

func (m *deckBuilderMock) NewDeck(ctx context.Context, songID uuid.UUID, settings domain.DisplaySettings) (*flashcard.Deck, error) {
	if m.NewDeckFunc == nil {
		panic("deckBuilderMock.NewDeckFunc: method is nil but deckBuilder.NewDeck was just called")
	}
	m.mu.Lock()
	m.settings = append(m.settings, settings)
	m.mu.Unlock()
	return m.NewDeckFunc(ctx, songID, settings)
}

// NewDeckCalls returns the settings NewDeck was called with.
func (m *deckBuilderMock) NewDeckCalls() []domain.DisplaySettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// ledgerServiceMock implements ledgerService.
type ledgerServiceMock struct {
	IsUnknownFunc  func(ctx context.Context, wordID uuid.UUID) (bool, error)
	SetUnknownFunc func(ctx context.Context, wordID uuid.UUID, flag bool) error
	ListWordsFunc  func(ctx context.Context) ([]domain.Word, error)
}

func (m *ledgerServiceMock) IsUnknown(ctx context.Context, wordID uuid.UUID) (bool, error) {
	if m.IsUnknownFunc == nil {
		panic("ledgerServiceMock.IsUnknownFunc: method is nil but ledgerService.IsUnknown was just called")
	}
	return m.IsUnknownFunc(ctx, wordID)
}

func (m *ledgerServiceMock) SetUnknown(ctx context.Context, wordID uuid.UUID, flag bool) error {
	if m.SetUnknownFunc == nil {
		panic("ledgerServiceMock.SetUnknownFunc: method is nil but ledgerService.SetUnknown was just called")
	}
	return m.SetUnknownFunc(ctx, wordID, flag)
}

func (m *ledgerServiceMock) ListWords(ctx context.Context) ([]domain.Word, error) {
	if m.ListWordsFunc == nil {
		panic("ledgerServiceMock.ListWordsFunc: method is nil but ledgerService.ListWords was just called")
	}
	return m.ListWordsFunc(ctx)
}
