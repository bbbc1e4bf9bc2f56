package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
	"github.com/hotelops/hotel-api/pkg/metrics"
)

func newTestScheduler(p *pipeline, batchSize int) *Scheduler {
	return NewScheduler(p.store, p.dispatcher, p.clock, SchedulerConfig{
		TickInterval: time.Minute,
		BatchSize:    batchSize,
	}, testLogger(), metrics.NewTestMetrics())
}

func deferredRecord(p *pipeline, releaseAt time.Time) *model.Notification {
	n := &model.Notification{
		UserID:       uuid.New(),
		HotelID:      p.hotel.ID,
		Type:         string(model.EventCleaningStarted),
		Title:        "Cleaning Started",
		Message:      "Cleaning of room 101 has started",
		Priority:     model.PriorityLow,
		ScheduledFor: &releaseAt,
		CreatedAt:    p.clock.Now(),
	}
	return n
}

func TestSchedulerReleasesDueRecords(t *testing.T) {
	night := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	p := newPipeline(night)
	s := newTestScheduler(p, 100)

	release := time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC)
	record := deferredRecord(p, release)
	require.NoError(t, p.store.Create(context.Background(), record))

	// Before the release time nothing happens.
	require.NoError(t, s.Tick(context.Background()))
	assert.Empty(t, p.transport.userSends)

	got, err := p.store.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusPending, got.Status)

	// Past the release time the record is claimed and pushed.
	p.clock.Advance(9 * time.Hour)
	require.NoError(t, s.Tick(context.Background()))

	got, err = p.store.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusSent, got.Status)
	require.NotNil(t, got.SentAt)

	require.Len(t, p.transport.userSends, 1)
	assert.Equal(t, record.UserID, p.transport.userSends[0].Target)
	assert.Equal(t, model.TopicNotificationNew, p.transport.userSends[0].Topic)
}

func TestSchedulerTickIsIdempotent(t *testing.T) {
	p := newPipeline(time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC))
	s := newTestScheduler(p, 100)

	release := time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC)
	record := deferredRecord(p, release)
	require.NoError(t, p.store.Create(context.Background(), record))

	require.NoError(t, s.Tick(context.Background()))
	require.NoError(t, s.Tick(context.Background()))

	// The second tick loses the conditional claim and must not
	// double-deliver.
	assert.Len(t, p.transport.userSends, 1)
}

func TestSchedulerSkipsAlreadyClaimedRecords(t *testing.T) {
	p := newPipeline(time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC))
	s := newTestScheduler(p, 100)

	release := time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC)
	record := deferredRecord(p, release)
	require.NoError(t, p.store.Create(context.Background(), record))

	// Another instance wins the claim between QueryDue and UpdateStatus.
	p.store.failUpdateStatus[record.ID] = repository.ErrIllegalTransition

	require.NoError(t, s.Tick(context.Background()))
	assert.Empty(t, p.transport.userSends)
}

func TestSchedulerHonorsBatchSize(t *testing.T) {
	p := newPipeline(time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC))
	s := newTestScheduler(p, 2)

	release := time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, p.store.Create(context.Background(), deferredRecord(p, release)))
	}

	require.NoError(t, s.Tick(context.Background()))
	assert.Len(t, p.transport.userSends, 2)

	require.NoError(t, s.Tick(context.Background()))
	require.NoError(t, s.Tick(context.Background()))
	assert.Len(t, p.transport.userSends, 5)
}

func TestSchedulerUrgentReleaseBroadcastsToHotel(t *testing.T) {
	p := newPipeline(time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC))
	s := newTestScheduler(p, 100)

	release := time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC)
	record := deferredRecord(p, release)
	record.Priority = model.PriorityUrgent
	require.NoError(t, p.store.Create(context.Background(), record))

	require.NoError(t, s.Tick(context.Background()))

	require.Len(t, p.transport.userSends, 1)
	assert.Equal(t, model.TopicNotificationUrgent, p.transport.userSends[0].Topic)
	require.Len(t, p.transport.hotelSends, 1)
	assert.Equal(t, p.hotel.ID, p.transport.hotelSends[0].Target)
}

func TestSchedulerReleaseClearsStalePushFailure(t *testing.T) {
	night := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	p := newPipeline(night)
	s := newTestScheduler(p, 100)

	release := time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC)
	record := deferredRecord(p, release)
	require.NoError(t, p.store.Create(context.Background(), record))
	require.NoError(t, p.store.MarkFailed(context.Background(), record.ID, model.ChannelPush, "redis gone"))

	p.clock.Advance(9 * time.Hour)
	require.NoError(t, s.Tick(context.Background()))

	got, err := p.store.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusSent, got.Status)
	assert.Empty(t, got.Failures)
	assert.Contains(t, p.store.delivered[record.ID], model.ChannelPush)
}
