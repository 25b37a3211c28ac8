package word

import (
	"context"
	"fmt"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

const exportPageSize = 500

// Export is every word of the lexicon grouped by type.
type Export struct {
	Nouns      []domain.Word
	Particles  []domain.Word
	Verbs      []domain.Word
	Adjectives []domain.Word
	Adverbs    []domain.Word
}

// Len returns the number of exported words.
func (e *Export) Len() int {
	return len(e.Nouns) + len(e.Particles) + len(e.Verbs) + len(e.Adjectives) + len(e.Adverbs)
}

func (e *Export) add(w domain.Word) {
	switch w.PartOfSpeech.ExportGroup() {
	case "particles":
		e.Particles = append(e.Particles, w)
	case "verbs":
		e.Verbs = append(e.Verbs, w)
	case "adjectives":
		e.Adjectives = append(e.Adjectives, w)
	case "adverbs":
		e.Adverbs = append(e.Adverbs, w)
	default:
		e.Nouns = append(e.Nouns, w)
	}
}

// ExportWords reads the whole lexicon page by page and groups it by type.
// Every group is a non-nil slice.
func (s *Service) ExportWords(ctx context.Context) (*Export, error) {
	e := &Export{
		Nouns:      []domain.Word{},
		Particles:  []domain.Word{},
		Verbs:      []domain.Word{},
		Adjectives: []domain.Word{},
		Adverbs:    []domain.Word{},
	}

	for offset := 0; ; offset += exportPageSize {
		page, err := s.words.List(ctx, domain.WordFilter{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("list words at %d: %w", offset, err)
		}
		for _, w := range page {
			e.add(w)
		}
		if len(page) < exportPageSize {
			break
		}
	}

	s.log.DebugContext(ctx, "words exported", "count", e.Len())
	return e, nil
}
