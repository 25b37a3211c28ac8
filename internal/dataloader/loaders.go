package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Words by SentenceID
// ---------------------------------------------------------------------------

func newWordsBatchFn(repo wordRepo) dataloader.BatchFunc[uuid.UUID, []domain.Word] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Word] {
		rows, err := repo.ListBySentenceIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.Word](len(keys), err)
		}

		// Rows arrive in position order within each sentence.
		grouped := make(map[uuid.UUID][]domain.Word, len(keys))
		for _, r := range rows {
			grouped[r.SentenceID] = append(grouped[r.SentenceID], r.Word)
		}

		return mapResults(keys, grouped, emptySlice[domain.Word])
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

// emptySlice returns a non-nil empty slice.
func emptySlice[T any]() []T {
	return []T{}
}
