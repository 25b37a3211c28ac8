package flashcard

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// Card is one word as the deck's display settings reveal it. Hidden fields are blank.
type Card struct {
	WordID        uuid.UUID           `json:"wordId"`
	Original      string              `json:"original"`
	Hiragana      string              `json:"hiragana"`
	Pronunciation string              `json:"pronunciation"`
	Meaning       string              `json:"meaning"`
	PartOfSpeech  domain.PartOfSpeech `json:"wordType"`
	Unknown       bool                `json:"unknown"`
}

// Deck is a filtered word list with a cursor. Movement is clamped at both
// ends and never wraps. A Deck is not safe for concurrent use.
type Deck struct {
	songID   uuid.UUID
	words    []domain.Word
	settings domain.DisplaySettings
	unknown  map[uuid.UUID]bool
	pos      int
}

func newDeck(songID uuid.UUID, words []domain.Word, settings domain.DisplaySettings, unknown map[uuid.UUID]bool) *Deck {
	return &Deck{songID: songID, words: words, settings: settings, unknown: unknown}
}

// SongID returns the song the deck was built from.
func (d *Deck) SongID() uuid.UUID { return d.songID }

// Settings returns the settings the deck was built with.
func (d *Deck) Settings() domain.DisplaySettings { return d.settings }

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.words) }

// Position returns the zero-based cursor.
func (d *Deck) Position() int { return d.pos }

// HasNext reports whether Next would move.
func (d *Deck) HasNext() bool { return d.pos < len(d.words)-1 }

// HasPrev reports whether Prev would move.
func (d *Deck) HasPrev() bool { return d.pos > 0 }

// Current returns the card under the cursor. It reports false for an empty deck.
func (d *Deck) Current() (Card, bool) {
	if len(d.words) == 0 {
		return Card{}, false
	}
	return d.card(d.words[d.pos]), true
}

// Next advances the cursor and reports whether it moved.
func (d *Deck) Next() bool {
	if !d.HasNext() {
		return false
	}
	d.pos++
	return true
}

// Prev moves the cursor back and reports whether it moved.
func (d *Deck) Prev() bool {
	if !d.HasPrev() {
		return false
	}
	d.pos--
	return true
}

// Seek moves the cursor to i, clamped into the deck.
func (d *Deck) Seek(i int) {
	switch {
	case len(d.words) == 0 || i < 0:
		d.pos = 0
	case i >= len(d.words):
		d.pos = len(d.words) - 1
	default:
		d.pos = i
	}
}

// MarkUnknown updates the unknown mark shown on the word's card. The deck's
// content does not change until it is rebuilt.
func (d *Deck) MarkUnknown(wordID uuid.UUID, flag bool) {
	if d.unknown == nil {
		d.unknown = make(map[uuid.UUID]bool)
	}
	d.unknown[wordID] = flag
}

func (d *Deck) card(w domain.Word) Card {
	c := Card{
		WordID:       w.ID,
		Original:     w.Original,
		PartOfSpeech: w.PartOfSpeech,
		Unknown:      d.unknown[w.ID],
	}
	if d.settings.ShowHiragana && w.Reading != nil {
		c.Hiragana = *w.Reading
	}
	if d.settings.ShowPronunciation {
		c.Pronunciation = w.Pronunciation
	}
	if d.settings.ShowMeaning {
		c.Meaning = w.Meaning
	}
	return c
}

// Page is the deck seen from its cursor.
type Page struct {
	Card    *Card `json:"card"`
	Index   int   `json:"index"`
	Total   int   `json:"total"`
	HasPrev bool  `json:"hasPrev"`
	HasNext bool  `json:"hasNext"`
}

// Page returns the current card with the deck's paging state. Card is nil
// for an empty deck.
func (d *Deck) Page() Page {
	p := Page{Index: d.pos, Total: len(d.words), HasPrev: d.HasPrev(), HasNext: d.HasNext()}
	if c, ok := d.Current(); ok {
		p.Card = &c
	}
	return p
}
