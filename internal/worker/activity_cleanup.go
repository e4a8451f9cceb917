package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ActivityPruner deletes feed entries older than a cutoff.
type ActivityPruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ActivityCleanupWorker keeps the activity feed bounded to a retention window.
type ActivityCleanupWorker struct {
	repo            ActivityPruner
	retention       time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

func NewActivityCleanupWorker(repo ActivityPruner, retentionDays int, cleanupInterval time.Duration) *ActivityCleanupWorker {
	return &ActivityCleanupWorker{
		repo:            repo,
		retention:       time.Duration(retentionDays) * 24 * time.Hour,
		cleanupInterval: cleanupInterval,
		now:             time.Now,
	}
}

// Start prunes once, then on every tick until ctx is cancelled.
func (w *ActivityCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		if err := w.cleanup(ctx); err != nil {
			log.Error().Err(err).Msg("activity cleanup failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *ActivityCleanupWorker) cleanup(ctx context.Context) error {
	cutoff := w.now().Add(-w.retention)

	rows, err := w.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup activities: %w", err)
	}

	if rows > 0 {
		log.Info().Int64("rows", rows).Time("cutoff", cutoff).Msg("pruned old activities")
	}
	return nil
}
