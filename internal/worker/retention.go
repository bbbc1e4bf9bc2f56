package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hotelops/hotel-api/internal/repository"
	"github.com/hotelops/hotel-api/pkg/logger"
)

// RetentionWorker purges sent and cancelled notification records once
// they age past the configured retention window. Pending records are
// never touched regardless of age.
type RetentionWorker struct {
	store           repository.NotificationRepository
	retentionDays   int
	cleanupInterval time.Duration
	logger          *logger.Logger
}

func NewRetentionWorker(store repository.NotificationRepository, retentionDays int, cleanupInterval time.Duration, log *logger.Logger) *RetentionWorker {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Hour
	}
	return &RetentionWorker{
		store:           store,
		retentionDays:   retentionDays,
		cleanupInterval: cleanupInterval,
		logger:          log,
	}
}

func (w *RetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	w.logger.Info("starting notification retention worker",
		"retention_days", w.retentionDays,
		"interval", w.cleanupInterval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("shutting down retention worker")
			return
		case <-ticker.C:
			if err := w.cleanup(ctx); err != nil {
				w.logger.Error(err, "notification cleanup failed")
			}
		}
	}
}

func (w *RetentionWorker) cleanup(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -w.retentionDays)

	rows, err := w.store.DeleteSentBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge old notifications: %w", err)
	}

	if rows > 0 {
		w.logger.Info("purged old notifications", "count", rows, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
