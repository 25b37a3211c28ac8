package song

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

const maxTitleLength = 300

// CreateSongInput holds the parameters for creating a song.
type CreateSongInput struct {
	Title       string
	TitleKorean *string
}

// Validate checks all fields and collects all errors.
func (i CreateSongInput) Validate() error {
	errs := validateTitle(nil, i.Title)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateSongInput holds the parameters for updating a song.
type UpdateSongInput struct {
	ID          uuid.UUID
	Title       string
	TitleKorean *string // nil or blank clears it
}

// Validate checks all fields and collects all errors.
func (i UpdateSongInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = validateTitle(errs, i.Title)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddSentenceInput holds the parameters for appending a sentence to a song.
type AddSentenceInput struct {
	SongID        uuid.UUID
	Original      string
	Pronunciation string
	Meaning       string
}

// Validate checks all fields and collects all errors.
func (i AddSentenceInput) Validate() error {
	var errs []domain.FieldError
	if i.SongID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "song_id", Message: "required"})
	}
	for _, f := range []struct{ name, value string }{
		{"original", i.Original},
		{"pronunciation", i.Pronunciation},
		{"meaning", i.Meaning},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "required"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LinkWordInput holds the parameters for appending a word to a sentence.
type LinkWordInput struct {
	SentenceID uuid.UUID
	WordID     uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i LinkWordInput) Validate() error {
	var errs []domain.FieldError
	if i.SentenceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "sentence_id", Message: "required"})
	}
	if i.WordID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateTitle(errs []domain.FieldError, title string) []domain.FieldError {
	t := strings.TrimSpace(title)
	if t == "" {
		return append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len([]rune(t)) > maxTitleLength {
		return append(errs, domain.FieldError{Field: "title", Message: "max 300 characters"})
	}
	return errs
}
