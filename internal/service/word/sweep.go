package word

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PurgeOrphans deletes words older than olderThan that no sentence uses,
// such as words created through the admin surface and never linked. Fresh
// words are kept so an admin can still link them.
func (s *Service) PurgeOrphans(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan < 0 {
		olderThan = 0
	}
	threshold := time.Now().Add(-olderThan)

	deleted, err := s.words.DeleteOrphansBefore(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("delete orphans: %w", err)
	}

	s.log.InfoContext(ctx, "orphan words purged",
		slog.Int("deleted", len(deleted)),
		slog.Time("threshold", threshold),
	)
	return len(deleted), nil
}
