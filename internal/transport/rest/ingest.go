package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/ingestion"
	"github.com/heartmarshall/kashi-backend/internal/service/lyrics"
)

type lyricsImporter interface {
	ImportLyrics(ctx context.Context, doc domain.LyricsDocument) (*domain.ImportResult, error)
	Ingest(ctx context.Context, input lyrics.IngestInput) (*lyrics.IngestResult, error)
	IngestURL(ctx context.Context, input lyrics.IngestURLInput) (*lyrics.IngestResult, error)
}

// ImportHandler serves lyrics import and the ingestion pipeline. Every route is admin only.
type ImportHandler struct {
	lyrics lyricsImporter
	log    *slog.Logger
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(l lyricsImporter, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		lyrics: l,
		log:    logger.With("handler", "import"),
	}
}

type ingestRequest struct {
	Title  string `json:"title"`
	Lyrics string `json:"lyrics"`
}

type ingestURLRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type ingestResponse struct {
	Import         importResponse  `json:"import"`
	Model          string          `json:"model"`
	Usage          ingestion.Usage `json:"usage"`
	ReadingsFilled int             `json:"readingsFilled"`
	TypesInferred  int             `json:"typesInferred"`
}

// Import takes a lyrics document in the expanded or compact JSON shape.
// POST /songs/import
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := ingestion.Parse(raw)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.lyrics.ImportLyrics(r.Context(), doc)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toImportResponse(*res))
}

// Ingest analyses raw lyrics with the configured model and imports the result.
// POST /songs/ingest
func (h *ImportHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req ingestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.lyrics.Ingest(r.Context(), lyrics.IngestInput{Title: req.Title, Lyrics: req.Lyrics})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toIngestResponse(res))
}

// IngestURL fetches a lyrics page and ingests it.
// POST /songs/ingest-url
func (h *ImportHandler) IngestURL(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req ingestURLRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.lyrics.IngestURL(r.Context(), lyrics.IngestURLInput{URL: req.URL, Title: req.Title})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toIngestResponse(res))
}

func toIngestResponse(res *lyrics.IngestResult) ingestResponse {
	return ingestResponse{
		Import:         toImportResponse(res.Import),
		Model:          res.Model,
		Usage:          res.Usage,
		ReadingsFilled: res.Annotation.ReadingsFilled,
		TypesInferred:  res.Annotation.TypesInferred,
	}
}
