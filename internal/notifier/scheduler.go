package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
	"github.com/hotelops/hotel-api/pkg/logger"
	"github.com/hotelops/hotel-api/pkg/metrics"
)

// SchedulerConfig tunes the deferred-release worker.
type SchedulerConfig struct {
	TickInterval time.Duration
	BatchSize    int
}

// Scheduler releases deferred notification records once their
// scheduled time passes. It creates no records of its own.
type Scheduler struct {
	store      repository.NotificationRepository
	dispatcher *Dispatcher
	clock      Clock
	config     SchedulerConfig
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// NewScheduler creates the deferred-release worker.
func NewScheduler(
	store repository.NotificationRepository,
	dispatcher *Dispatcher,
	clock Clock,
	config SchedulerConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) *Scheduler {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Minute
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	return &Scheduler{
		store:      store,
		dispatcher: dispatcher,
		clock:      clock,
		config:     config,
		logger:     log,
		metrics:    m,
	}
}

// Start runs the tick loop until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	s.logger.Info("starting notification scheduler",
		"interval", s.config.TickInterval.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down notification scheduler")
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.logger.Error(err, "scheduler tick failed")
			}
		}
	}
}

// Tick releases every due record: claim it with the conditional
// pending -> sent transition, then fan out. Two overlapping ticks
// cannot double-deliver because only one claim succeeds; the loser
// observes ErrIllegalTransition and skips.
func (s *Scheduler) Tick(ctx context.Context) error {
	now := s.clock.Now()
	due, err := s.store.QueryDue(ctx, now, s.config.BatchSize)
	if err != nil {
		return err
	}

	for _, record := range due {
		sentAt := s.clock.Now()
		if err := s.store.UpdateStatus(ctx, record.ID, model.NotificationStatusSent, &sentAt); err != nil {
			if errors.Is(err, repository.ErrIllegalTransition) {
				continue
			}
			s.logger.Error(err, "failed to claim due notification", "id", record.ID.String())
			continue
		}

		s.dispatcher.Release(ctx, record)
		s.metrics.NotificationsReleased.Inc()
	}

	return nil
}
