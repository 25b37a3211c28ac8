package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

type ledgerService interface {
	IsUnknown(ctx context.Context, wordID uuid.UUID) (bool, error)
	SetUnknown(ctx context.Context, wordID uuid.UUID, flag bool) error
	ListWords(ctx context.Context) ([]domain.Word, error)
}

// LedgerHandler serves the caller's unknown-word marks.
type LedgerHandler struct {
	ledger ledgerService
	log    *slog.Logger
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(ledger ledgerService, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger: ledger,
		log:    logger.With("handler", "ledger"),
	}
}

type unknownResponse struct {
	WordID  uuid.UUID `json:"wordId"`
	Unknown bool      `json:"unknown"`
}

// List returns the words the caller marked unknown.
// GET /me/unknown-words
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	words, err := h.ledger.ListWords(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toWordResponses(words))
}

// Get reports whether the caller marked a word unknown.
// GET /me/unknown-words/{wordId}
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "wordId")
	if !ok {
		return
	}

	unknown, err := h.ledger.IsUnknown(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, unknownResponse{WordID: id, Unknown: unknown})
}

// Mark records a word as unknown. Repeating it is a no-op.
// PUT /me/unknown-words/{wordId}
func (h *LedgerHandler) Mark(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, true)
}

// Unmark removes the unknown mark. Unmarking an unmarked word is a no-op.
// DELETE /me/unknown-words/{wordId}
func (h *LedgerHandler) Unmark(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, false)
}

func (h *LedgerHandler) set(w http.ResponseWriter, r *http.Request, flag bool) {
	id, ok := pathID(w, r, "wordId")
	if !ok {
		return
	}

	if err := h.ledger.SetUnknown(r.Context(), id, flag); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, unknownResponse{WordID: id, Unknown: flag})
}
