package lyrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// WordIdentity is the word an entry resolved to.
type WordIdentity struct {
	ID      uuid.UUID
	Created bool
}

// Resolver maps word entries to stored words by their (original, reading)
// key, creating the ones that do not exist yet. An existing word is never
// modified. A Resolver caches every key it has seen and belongs to a single
// import run; it is not safe for concurrent use.
type Resolver struct {
	words wordRepo
	cache map[domain.WordKey]uuid.UUID
}

// NewResolver creates a Resolver with an empty cache.
func NewResolver(words wordRepo) *Resolver {
	return &Resolver{
		words: words,
		cache: make(map[domain.WordKey]uuid.UUID),
	}
}

// Resolve returns the identity of the word matching the entry's key.
//
// The original is matched exactly, whitespace included. The reading goes
// through domain.NormalizeReading first: a blank reading, or one equal to
// the original, is looked up and stored as no reading. So an explicit
// reading "が" on the word が matches a stored が without one.
func (r *Resolver) Resolve(ctx context.Context, e domain.WordEntry) (WordIdentity, error) {
	reading := domain.NormalizeReading(e.Original, e.Reading)
	key := domain.NewWordKey(e.Original, reading)

	if id, ok := r.cache[key]; ok {
		return WordIdentity{ID: id}, nil
	}

	existing, err := r.words.FindByKey(ctx, e.Original, reading)
	switch {
	case err == nil:
		r.cache[key] = existing.ID
		return WordIdentity{ID: existing.ID}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return WordIdentity{}, fmt.Errorf("find word %q: %w", e.Original, err)
	}

	pos := e.PartOfSpeech
	if pos == "" {
		pos = domain.DefaultPartOfSpeech
	}

	created, err := r.words.Create(ctx, domain.Word{
		Original:      e.Original,
		Reading:       reading,
		Pronunciation: e.Pronunciation,
		Meaning:       e.Meaning,
		PartOfSpeech:  pos,
	})
	if err != nil {
		return WordIdentity{}, fmt.Errorf("create word %q: %w", e.Original, err)
	}

	r.cache[key] = created.ID
	return WordIdentity{ID: created.ID, Created: true}, nil
}
