package word

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// CreateWordInput holds the parameters for creating a word. Original is
// stored as given, like imported words, since it is part of the word key.
type CreateWordInput struct {
	Original      string
	Reading       *string
	Pronunciation string
	Meaning       string
	PartOfSpeech  domain.PartOfSpeech // empty means noun
	Order         int
}

// Validate checks all fields and collects all errors.
func (i CreateWordInput) Validate() error {
	errs := validateFields(nil, i.Original, i.Pronunciation, i.Meaning, i.PartOfSpeech)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i CreateWordInput) word() domain.Word {
	return domain.Word{
		Original:      i.Original,
		Reading:       i.Reading,
		Pronunciation: strings.TrimSpace(i.Pronunciation),
		Meaning:       strings.TrimSpace(i.Meaning),
		PartOfSpeech:  partOfSpeechOrDefault(i.PartOfSpeech),
		Order:         i.Order,
	}
}

// UpdateWordInput replaces every editable field of a word.
type UpdateWordInput struct {
	ID            uuid.UUID
	Original      string
	Reading       *string
	Pronunciation string
	Meaning       string
	PartOfSpeech  domain.PartOfSpeech
	Order         int
}

// Validate checks all fields and collects all errors.
func (i UpdateWordInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = validateFields(errs, i.Original, i.Pronunciation, i.Meaning, i.PartOfSpeech)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateWordInput) word() domain.Word {
	return domain.Word{
		ID:            i.ID,
		Original:      i.Original,
		Reading:       i.Reading,
		Pronunciation: strings.TrimSpace(i.Pronunciation),
		Meaning:       strings.TrimSpace(i.Meaning),
		PartOfSpeech:  partOfSpeechOrDefault(i.PartOfSpeech),
		Order:         i.Order,
	}
}

func validateFields(errs []domain.FieldError, original, pronunciation, meaning string, pos domain.PartOfSpeech) []domain.FieldError {
	for _, f := range []struct{ name, value string }{
		{"original", original},
		{"pronunciation", pronunciation},
		{"meaning", meaning},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "required"})
		}
	}
	if pos != "" && !pos.IsValid() {
		errs = append(errs, domain.FieldError{Field: "word_type", Message: fmt.Sprintf("unknown word type %q", pos)})
	}
	return errs
}

func partOfSpeechOrDefault(p domain.PartOfSpeech) domain.PartOfSpeech {
	if p == "" {
		return domain.DefaultPartOfSpeech
	}
	return p
}
