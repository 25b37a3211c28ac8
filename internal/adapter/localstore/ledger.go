package localstore

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// UnknownWordsKey is the key the anonymous ledger is stored under.
const UnknownWordsKey = "unknownWords"

// DeviceLedger is the unknown-word ledger of an anonymous user: a flat JSON
// array of word-id strings under UnknownWordsKey.
type DeviceLedger struct {
	store *Store
	mu    sync.Mutex
}

// NewDeviceLedger creates a ledger on top of store.
func NewDeviceLedger(store *Store) *DeviceLedger {
	return &DeviceLedger{store: store}
}

// IsUnknown reports whether the word is in the ledger.
func (l *DeviceLedger) IsUnknown(ctx context.Context, wordID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.load(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, wordID.String()), nil
}

// SetUnknown adds the word (flag true) or removes it (flag false).
// Both directions are idempotent and the array never holds duplicates.
func (l *DeviceLedger) SetUnknown(ctx context.Context, wordID uuid.UUID, flag bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.load(ctx)
	if err != nil {
		return err
	}

	id := wordID.String()
	has := slices.Contains(ids, id)
	switch {
	case flag && !has:
		ids = append(ids, id)
	case !flag && has:
		ids = slices.DeleteFunc(ids, func(s string) bool { return s == id })
	default:
		return nil
	}
	return l.store.PutJSON(ctx, UnknownWordsKey, ids)
}

// List returns the ids in the ledger in insertion order. Entries that are not
// valid UUIDs are skipped.
func (l *DeviceLedger) List(ctx context.Context) ([]uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]uuid.UUID, 0, len(ids))
	for _, s := range ids {
		if id, err := uuid.Parse(s); err == nil {
			result = append(result, id)
		}
	}
	return result, nil
}

func (l *DeviceLedger) load(ctx context.Context) ([]string, error) {
	ids := []string{}
	if _, err := l.store.GetJSON(ctx, UnknownWordsKey, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
