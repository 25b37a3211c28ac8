package localstore

import (
	"context"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// SettingsKey is the key the flashcard display settings are stored under.
const SettingsKey = "word-settings-storage"

// SettingsStore persists domain.DisplaySettings as a flat JSON object.
type SettingsStore struct {
	store *Store
}

// NewSettingsStore creates a settings store on top of store.
func NewSettingsStore(store *Store) *SettingsStore {
	return &SettingsStore{store: store}
}

// Load returns the saved settings layered over the defaults, so fields and
// word types missing from an older saved document keep their default.
func (s *SettingsStore) Load(ctx context.Context) (domain.DisplaySettings, error) {
	var patch domain.SettingsPatch
	found, err := s.store.GetJSON(ctx, SettingsKey, &patch)
	if err != nil {
		return domain.DisplaySettings{}, err
	}
	if !found {
		return domain.DefaultDisplaySettings(), nil
	}
	return domain.DefaultDisplaySettings().Merge(patch), nil
}

// Save stores the settings.
func (s *SettingsStore) Save(ctx context.Context, settings domain.DisplaySettings) error {
	return s.store.PutJSON(ctx, SettingsKey, settings)
}

// Update applies a partial update to the saved settings and returns the result.
func (s *SettingsStore) Update(ctx context.Context, patch domain.SettingsPatch) (domain.DisplaySettings, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return domain.DisplaySettings{}, err
	}
	next := current.Merge(patch)
	if err := s.Save(ctx, next); err != nil {
		return domain.DisplaySettings{}, err
	}
	return next, nil
}
