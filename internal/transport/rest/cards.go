package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/service/flashcard"
)

type deckBuilder interface {
	NewDeck(ctx context.Context, songID uuid.UUID, settings domain.DisplaySettings) (*flashcard.Deck, error)
}

// CardHandler renders flashcard pages. The server keeps no session: each
// request rebuilds the deck from the query and seeks to ?index.
type CardHandler struct {
	decks deckBuilder
	log   *slog.Logger
}

// NewCardHandler creates a CardHandler.
func NewCardHandler(decks deckBuilder, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		decks: decks,
		log:   logger.With("handler", "card"),
	}
}

// Page returns one card of a song's deck.
// GET /songs/{id}/cards?index=0&types=noun,verb&onlyUnknown=true&showMeaning=false
func (h *CardHandler) Page(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	settings, err := settingsFromQuery(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	index, err := queryInt(r, "index", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	deck, err := h.decks.NewDeck(r.Context(), id, settings)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	deck.Seek(index)
	writeData(w, http.StatusOK, deck.Page())
}

func settingsFromQuery(r *http.Request) (domain.DisplaySettings, error) {
	var (
		patch domain.SettingsPatch
		err   error
	)
	for name, dst := range map[string]**bool{
		"onlyUnknown":       &patch.ShowOnlyUnknown,
		"showMeaning":       &patch.ShowMeaning,
		"showPronunciation": &patch.ShowPronunciation,
		"showHiragana":      &patch.ShowHiragana,
	} {
		if *dst, err = queryBool(r, name); err != nil {
			return domain.DisplaySettings{}, err
		}
	}

	if raw := r.URL.Query().Get("types"); raw != "" {
		patch.WordTypes = make(map[domain.PartOfSpeech]bool, len(domain.PartsOfSpeech))
		for _, p := range domain.PartsOfSpeech {
			patch.WordTypes[p] = false
		}
		for _, t := range strings.Split(raw, ",") {
			p := domain.PartOfSpeech(strings.TrimSpace(t))
			if !p.IsValid() {
				return domain.DisplaySettings{}, domain.NewValidationError("types", fmt.Sprintf("unknown word type %q", t))
			}
			patch.WordTypes[p] = true
		}
	}

	return domain.DefaultDisplaySettings().Merge(patch), nil
}
