package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/service/song"
)

type songService interface {
	CreateSong(ctx context.Context, input song.CreateSongInput) (*domain.Song, error)
	GetSong(ctx context.Context, id uuid.UUID) (*domain.Song, error)
	ListSongs(ctx context.Context) ([]domain.Song, error)
	UpdateSong(ctx context.Context, input song.UpdateSongInput) (*domain.Song, error)
	DeleteSong(ctx context.Context, id uuid.UUID) (*song.DeleteResult, error)
	ListSentences(ctx context.Context, songID uuid.UUID) ([]domain.Sentence, error)
	AddSentence(ctx context.Context, input song.AddSentenceInput) (*domain.Sentence, error)
	LinkWord(ctx context.Context, input song.LinkWordInput) (*domain.SentenceWord, error)
	DeleteSentence(ctx context.Context, id uuid.UUID) (*song.DeleteResult, error)
}

type lyricsViewer interface {
	GetSongLyrics(ctx context.Context, songID uuid.UUID) (*domain.SongLyrics, error)
}

// SongHandler serves songs, their sentences and the lyrics view.
type SongHandler struct {
	songs  songService
	lyrics lyricsViewer
	log    *slog.Logger
}

// NewSongHandler creates a SongHandler.
func NewSongHandler(songs songService, lyrics lyricsViewer, logger *slog.Logger) *SongHandler {
	return &SongHandler{
		songs:  songs,
		lyrics: lyrics,
		log:    logger.With("handler", "song"),
	}
}

type songRequest struct {
	Title       string  `json:"title"`
	TitleKorean *string `json:"titleKorean"`
}

type sentenceRequest struct {
	Original      string `json:"original"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
}

type linkWordRequest struct {
	WordID uuid.UUID `json:"wordId"`
}

type linkResponse struct {
	ID         uuid.UUID `json:"id"`
	SentenceID uuid.UUID `json:"sentenceId"`
	WordID     uuid.UUID `json:"wordId"`
	Order      int       `json:"order"`
}

type deleteResponse struct {
	CollectedWords int `json:"collectedWords"`
}

// List returns every song ordered by title.
// GET /songs
func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songs.ListSongs(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]songResponse, len(songs))
	for i, s := range songs {
		out[i] = toSongResponse(s)
	}
	writeData(w, http.StatusOK, out)
}

// Get returns one song.
// GET /songs/{id}
func (h *SongHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	s, err := h.songs.GetSong(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toSongResponse(*s))
}

// Create adds a song.
// POST /songs
func (h *SongHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req songRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.songs.CreateSong(r.Context(), song.CreateSongInput{Title: req.Title, TitleKorean: req.TitleKorean})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toSongResponse(*s))
}

// Update replaces the titles of a song.
// PUT /songs/{id}
func (h *SongHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req songRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.songs.UpdateSong(r.Context(), song.UpdateSongInput{ID: id, Title: req.Title, TitleKorean: req.TitleKorean})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toSongResponse(*s))
}

// Delete removes a song and the words only it used.
// DELETE /songs/{id}
func (h *SongHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.songs.DeleteSong(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, deleteResponse{CollectedWords: len(res.CollectedWordIDs)})
}

// Sentences lists the sentences of a song in order.
// GET /songs/{id}/sentences
func (h *SongHandler) Sentences(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sentences, err := h.songs.ListSentences(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]sentenceResponse, len(sentences))
	for i, s := range sentences {
		out[i] = toSentenceResponse(s)
	}
	writeData(w, http.StatusOK, out)
}

// AddSentence appends a sentence to a song.
// POST /songs/{id}/sentences
func (h *SongHandler) AddSentence(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req sentenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.songs.AddSentence(r.Context(), song.AddSentenceInput{
		SongID:        id,
		Original:      req.Original,
		Pronunciation: req.Pronunciation,
		Meaning:       req.Meaning,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toSentenceResponse(*s))
}

// LinkWord appends an existing word to a sentence.
// POST /sentences/{id}/words
func (h *SongHandler) LinkWord(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req linkWordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	link, err := h.songs.LinkWord(r.Context(), song.LinkWordInput{SentenceID: id, WordID: req.WordID})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, linkResponse{
		ID:         link.ID,
		SentenceID: link.SentenceID,
		WordID:     link.WordID,
		Order:      link.Order,
	})
}

// DeleteSentence removes a sentence and the words only it used.
// DELETE /sentences/{id}
func (h *SongHandler) DeleteSentence(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.songs.DeleteSentence(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, deleteResponse{CollectedWords: len(res.CollectedWordIDs)})
}

// Lyrics returns the song with its sentences and their words in order.
// GET /songs/{id}/lyrics
func (h *SongHandler) Lyrics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	lyrics, err := h.lyrics.GetSongLyrics(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toLyricsResponse(lyrics))
}
