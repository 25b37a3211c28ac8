// Package dataloader provides per-request DataLoaders that batch lyrics view
// reads into single SQL calls. Loaders call repositories directly, bypassing
// the service layer.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/kashi-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type wordRepo interface {
	ListBySentenceIDs(ctx context.Context, sentenceIDs []uuid.UUID) ([]word.WordWithSentenceID, error)
}

// Repos holds the repositories required by the loaders.
type Repos struct {
	Word wordRepo
}

// Loaders contains the per-request DataLoaders. Created via NewLoaders.
type Loaders struct {
	WordsBySentenceID *dataloader.Loader[uuid.UUID, []domain.Word]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Loaders cache results, so a set must not outlive one request.
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		WordsBySentenceID: newLoader(newWordsBatchFn(repos.Word)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContextOrNew returns the request's Loaders, or a fresh set when the
// caller runs outside an HTTP request (CLI tools).
func FromContextOrNew(ctx context.Context, repos *Repos) *Loaders {
	if l, ok := ctx.Value(loadersKey).(*Loaders); ok && l != nil {
		return l
	}
	return NewLoaders(repos)
}
