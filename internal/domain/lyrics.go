package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// LyricsDocument is the structured form of a song's lyrics consumed by the importer.
type LyricsDocument struct {
	Title       string
	TitleKorean *string
	Sentences   []SentenceEntry
}

// SentenceEntry is one sentence of a LyricsDocument with its words in order.
type SentenceEntry struct {
	Original      string
	Pronunciation string
	Meaning       string
	Words         []WordEntry
}

// WordEntry is one word occurrence of a sentence.
type WordEntry struct {
	Original      string
	Reading       *string
	Pronunciation string
	Meaning       string
	PartOfSpeech  PartOfSpeech
}

// Key returns the deduplication key of the entry.
func (w WordEntry) Key() WordKey {
	return NewWordKey(w.Original, w.Reading)
}

// Validate checks every required field of the document and collects all errors.
// Paths follow the JSON layout, e.g. "lyrics[1].words[0].meaning".
func (d LyricsDocument) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if len(d.Sentences) == 0 {
		errs = append(errs, FieldError{Field: "lyrics", Message: "at least one sentence required"})
	}

	for i, s := range d.Sentences {
		prefix := fmt.Sprintf("lyrics[%d].sentence", i)
		errs = appendRequired(errs, prefix+".original", s.Original)
		errs = appendRequired(errs, prefix+".pronunciation", s.Pronunciation)
		errs = appendRequired(errs, prefix+".meaning", s.Meaning)

		for j, w := range s.Words {
			errs = append(errs, w.validate(fmt.Sprintf("lyrics[%d].words[%d]", i, j))...)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (w WordEntry) validate(prefix string) []FieldError {
	var errs []FieldError
	errs = appendRequired(errs, prefix+".original", w.Original)
	errs = appendRequired(errs, prefix+".pronunciation", w.Pronunciation)
	errs = appendRequired(errs, prefix+".meaning", w.Meaning)
	if w.PartOfSpeech != "" && !w.PartOfSpeech.IsValid() {
		errs = append(errs, FieldError{Field: prefix + ".word_type", Message: fmt.Sprintf("unknown word type %q", w.PartOfSpeech)})
	}
	return errs
}

func appendRequired(errs []FieldError, field, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Message: "required"})
	}
	return errs
}

// WordCount returns the number of word occurrences in the document.
func (d LyricsDocument) WordCount() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Words)
	}
	return n
}

// ImportResult summarises one import call.
type ImportResult struct {
	SongID         uuid.UUID
	SongCreated    bool
	SentencesAdded int
	WordsCreated   int
	WordsReused    int
	Links          int
}
