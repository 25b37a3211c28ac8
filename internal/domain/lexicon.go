package domain

import (
	"time"

	"github.com/google/uuid"
)

// Song is a set of lyrics. Title is unique and stored trimmed.
type Song struct {
	ID          uuid.UUID
	Title       string
	TitleKorean *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Sentence is one lyric line of a song. Order is unique within the song.
type Sentence struct {
	ID            uuid.UUID
	SongID        uuid.UUID
	Original      string
	Pronunciation string
	Meaning       string
	Order         int
}

// Word is a shared lexeme, deduplicated by (Original, Reading).
// A nil Reading means the surface form doubles as its own reading.
type Word struct {
	ID            uuid.UUID
	Original      string
	Reading       *string
	Pronunciation string
	Meaning       string
	PartOfSpeech  PartOfSpeech
	Order         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Key returns the deduplication key of the word.
func (w Word) Key() WordKey {
	return NewWordKey(w.Original, w.Reading)
}

// SentenceWord links one occurrence of a word to a sentence at a position.
type SentenceWord struct {
	ID         uuid.UUID
	SentenceID uuid.UUID
	WordID     uuid.UUID
	Order      int
}

// WordKey is the comparable (original, reading) pair. Reading "" stands for no reading.
type WordKey struct {
	Original string
	Reading  string
}

// NewWordKey builds a WordKey from a possibly nil reading.
func NewWordKey(original string, reading *string) WordKey {
	k := WordKey{Original: original}
	if reading != nil {
		k.Reading = *reading
	}
	return k
}

// ReadingPtr returns the reading as stored: nil when the key carries none.
func (k WordKey) ReadingPtr() *string {
	if k.Reading == "" {
		return nil
	}
	r := k.Reading
	return &r
}

// SentenceWithWords is a sentence together with its words in link order.
type SentenceWithWords struct {
	Sentence
	Words []Word
}

// SongLyrics is the full reading view of a song.
type SongLyrics struct {
	Song      Song
	Sentences []SentenceWithWords
}

// UnknownWord records that a user has marked a word as not yet known.
type UnknownWord struct {
	UserID    uuid.UUID
	WordID    uuid.UUID
	CreatedAt time.Time
}
