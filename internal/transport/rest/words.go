package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/service/word"
)

type wordService interface {
	CreateWord(ctx context.Context, input word.CreateWordInput) (*domain.Word, error)
	GetWord(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	ListWords(ctx context.Context, f domain.WordFilter) ([]domain.Word, error)
	ListSongWords(ctx context.Context, songID uuid.UUID) ([]domain.Word, error)
	UpdateWord(ctx context.Context, input word.UpdateWordInput) (*domain.Word, error)
	DeleteWord(ctx context.Context, id uuid.UUID) error
	ExportWords(ctx context.Context) (*word.Export, error)
}

// WordHandler serves the shared word list.
type WordHandler struct {
	words wordService
	log   *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(words wordService, logger *slog.Logger) *WordHandler {
	return &WordHandler{
		words: words,
		log:   logger.With("handler", "word"),
	}
}

type wordRequest struct {
	Original      string              `json:"original"`
	Hiragana      *string             `json:"hiragana"`
	Pronunciation string              `json:"pronunciation"`
	Meaning       string              `json:"meaning"`
	WordType      domain.PartOfSpeech `json:"wordType"`
	Order         int                 `json:"order"`
}

type exportResponse struct {
	Nouns      []wordResponse `json:"nouns"`
	Particles  []wordResponse `json:"particles"`
	Verbs      []wordResponse `json:"verbs"`
	Adjectives []wordResponse `json:"adjectives"`
	Adverbs    []wordResponse `json:"adverbs"`
}

// List returns words filtered by ?search=&type=&limit=&offset=.
// GET /words
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	f := domain.WordFilter{Search: r.URL.Query().Get("search")}
	if t := r.URL.Query().Get("type"); t != "" {
		pos := domain.PartOfSpeech(t)
		f.PartOfSpeech = &pos
	}

	var err error
	if f.Limit, err = queryInt(r, "limit", 0); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if f.Offset, err = queryInt(r, "offset", 0); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	words, err := h.words.ListWords(r.Context(), f)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toWordResponses(words))
}

// SongWords returns the distinct words of a song in lyric order.
// GET /songs/{id}/words
func (h *WordHandler) SongWords(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	words, err := h.words.ListSongWords(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toWordResponses(words))
}

// Get returns one word.
// GET /words/{id}
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	wd, err := h.words.GetWord(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toWordResponse(*wd))
}

// Create adds a word.
// POST /words
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req wordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	wd, err := h.words.CreateWord(r.Context(), word.CreateWordInput{
		Original:      req.Original,
		Reading:       req.Hiragana,
		Pronunciation: req.Pronunciation,
		Meaning:       req.Meaning,
		PartOfSpeech:  req.WordType,
		Order:         req.Order,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toWordResponse(*wd))
}

// Update replaces the editable fields of a word.
// PUT /words/{id}
func (h *WordHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req wordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	wd, err := h.words.UpdateWord(r.Context(), word.UpdateWordInput{
		ID:            id,
		Original:      req.Original,
		Reading:       req.Hiragana,
		Pronunciation: req.Pronunciation,
		Meaning:       req.Meaning,
		PartOfSpeech:  req.WordType,
		Order:         req.Order,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toWordResponse(*wd))
}

// Delete removes a word no sentence uses.
// DELETE /words/{id}
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.words.DeleteWord(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export returns every word grouped by type.
// GET /words/export
func (h *WordHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	export, err := h.words.ExportWords(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="words.json"`)
	writeJSON(w, http.StatusOK, exportResponse{
		Nouns:      toWordResponses(export.Nouns),
		Particles:  toWordResponses(export.Particles),
		Verbs:      toWordResponses(export.Verbs),
		Adjectives: toWordResponses(export.Adjectives),
		Adverbs:    toWordResponses(export.Adverbs),
	})
}
