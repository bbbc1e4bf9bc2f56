package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
)

var noon = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestDispatchUrgentEventFansOut(t *testing.T) {
	admin := staffUser(uuid.Nil, model.RoleAdmin)
	tech := staffUser(uuid.Nil, model.RoleMaintenance)
	p := newPipeline(noon, admin, tech)

	ids, err := p.dispatcher.Dispatch(context.Background(), &model.Intent{
		Kind:    model.EventMaintenanceUrgent,
		HotelID: p.hotel.ID,
		Payload: model.JSONMap{
			"type":        "electrical",
			"roomNumber":  "512",
			"description": "sparking outlet",
		},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityUrgent,
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	for _, id := range ids {
		record, err := p.store.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, model.NotificationStatusSent, record.Status)
		assert.Equal(t, "URGENT Maintenance", record.Title)
		assert.Contains(t, record.Message, "room 512")
		require.NotNil(t, record.SentAt)
	}

	// Each recipient gets a direct push on the urgent topic, plus one
	// broadcast per record to the hotel admin channel.
	assert.Len(t, p.transport.userSends, 2)
	for _, push := range p.transport.userSends {
		assert.Equal(t, model.TopicNotificationUrgent, push.Topic)
	}
	assert.Len(t, p.transport.hotelSends, 2)
}

func TestDispatchMediumPriorityUsesNewTopic(t *testing.T) {
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(noon, manager)

	_, err := p.dispatcher.Dispatch(context.Background(), &model.Intent{
		Kind:       model.EventCleaningCompleted,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	})
	require.NoError(t, err)

	require.Len(t, p.transport.userSends, 1)
	assert.Equal(t, model.TopicNotificationNew, p.transport.userSends[0].Topic)
	assert.Empty(t, p.transport.hotelSends)
}

func TestDispatchNoRecipientsIsNoOp(t *testing.T) {
	p := newPipeline(noon)

	ids, err := p.dispatcher.Dispatch(context.Background(), &model.Intent{
		Kind:       model.EventRoomNeedsCleaning,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	})
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Empty(t, p.store.all())
}

func TestDispatchInvalidPriorityDefaultsToMedium(t *testing.T) {
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(noon, manager)

	ids, err := p.dispatcher.Dispatch(context.Background(), &model.Intent{
		Kind:       model.EventCleaningCompleted,
		HotelID:    p.hotel.ID,
		Recipients: model.AutoRecipients(),
		Priority:   "catastrophic",
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	record, err := p.store.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, record.Priority)
}

func TestDispatchBurstCoalesces(t *testing.T) {
	housekeeper := staffUser(uuid.Nil, model.RoleHousekeeping)
	p := newPipeline(noon, housekeeper)

	intent := &model.Intent{
		Kind:       model.EventRoomNeedsCleaning,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	}

	first, err := p.dispatcher.Dispatch(context.Background(), intent)
	require.NoError(t, err)
	require.Len(t, first, 1)

	p.clock.Advance(time.Minute)
	second, err := p.dispatcher.Dispatch(context.Background(), intent)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// The second dispatch merged into the first record.
	assert.Equal(t, first[0], second[0])
	assert.Len(t, p.store.all(), 1)

	record, err := p.store.Get(context.Background(), first[0])
	require.NoError(t, err)
	assert.Contains(t, record.Message, "(+1 more)")

	p.clock.Advance(time.Minute)
	third, err := p.dispatcher.Dispatch(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, first[0], third[0])

	record, err = p.store.Get(context.Background(), first[0])
	require.NoError(t, err)
	assert.Contains(t, record.Message, "(+2 more)")
	assert.NotContains(t, record.Message, "(+1 more)")
}

func TestDispatchOutsideWindowCreatesFreshRecord(t *testing.T) {
	housekeeper := staffUser(uuid.Nil, model.RoleHousekeeping)
	p := newPipeline(noon, housekeeper)

	intent := &model.Intent{
		Kind:       model.EventRoomNeedsCleaning,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	}

	first, err := p.dispatcher.Dispatch(context.Background(), intent)
	require.NoError(t, err)

	p.clock.Advance(10 * time.Minute)
	second, err := p.dispatcher.Dispatch(context.Background(), intent)
	require.NoError(t, err)

	assert.NotEqual(t, first[0], second[0])
	assert.Len(t, p.store.all(), 2)
}

func TestDispatchCoalesceRaceFallsBackToCreate(t *testing.T) {
	housekeeper := staffUser(uuid.Nil, model.RoleHousekeeping)
	p := newPipeline(noon, housekeeper)

	intent := &model.Intent{
		Kind:       model.EventRoomNeedsCleaning,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	}

	first, err := p.dispatcher.Dispatch(context.Background(), intent)
	require.NoError(t, err)

	// The merge target advances between the bucket read and the append.
	p.store.failAppend = repository.ErrIllegalTransition

	p.clock.Advance(time.Minute)
	second, err := p.dispatcher.Dispatch(context.Background(), intent)
	require.NoError(t, err)
	assert.NotEqual(t, first[0], second[0])
	assert.Len(t, p.store.all(), 2)
}

func TestDispatchQuietHoursDefers(t *testing.T) {
	night := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(night, manager)

	ids, err := p.dispatcher.Dispatch(context.Background(), &model.Intent{
		Kind:       model.EventCleaningStarted,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityLow,
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	record, err := p.store.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusPending, record.Status)
	require.NotNil(t, record.ScheduledFor)
	assert.Equal(t, time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC), record.ScheduledFor.UTC())

	// Nothing is pushed until the scheduler releases it.
	assert.Empty(t, p.transport.userSends)
}

func TestDispatchPushFailureStillPersists(t *testing.T) {
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(noon, manager)
	p.transport.err = errors.New("redis gone")

	ids, err := p.dispatcher.Dispatch(context.Background(), &model.Intent{
		Kind:       model.EventCleaningCompleted,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	// The durable in-app record counts as delivered; the push failure
	// is recorded against the push channel only.
	record, err := p.store.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusSent, record.Status)
	assert.Equal(t, "redis gone", record.Failures[model.ChannelPush])
}

func TestDispatchMetadataCarriesPayloadAndIcon(t *testing.T) {
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(noon, manager)

	ids, err := p.dispatcher.Dispatch(context.Background(), &model.Intent{
		Kind:       model.EventCleaningCompleted,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	record, err := p.store.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "101", record.Metadata["roomNumber"])
	assert.Equal(t, "check-circle", record.Metadata["icon"])
	assert.Equal(t, noon.Format(time.RFC3339), record.Metadata["timestamp"])
}

func TestScheduleCreatesFutureDatedRecords(t *testing.T) {
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(noon, manager)

	when := noon.Add(6 * time.Hour)
	ids, err := p.dispatcher.Schedule(context.Background(), &model.Intent{
		Kind:       model.EventDailyOperationsSummary,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"summary": "All quiet."},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	}, when)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	record, err := p.store.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusPending, record.Status)
	require.NotNil(t, record.ScheduledFor)
	assert.Equal(t, when, record.ScheduledFor.UTC())
	assert.Empty(t, p.transport.userSends)
}

func TestSchedulePastTimeClampsToNow(t *testing.T) {
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(noon, manager)

	ids, err := p.dispatcher.Schedule(context.Background(), &model.Intent{
		Kind:       model.EventDailyOperationsSummary,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"summary": "Late report."},
		Recipients: model.AutoRecipients(),
	}, noon.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, ids, 1)

	record, err := p.store.Get(context.Background(), ids[0])
	require.NoError(t, err)
	require.NotNil(t, record.ScheduledFor)
	assert.Equal(t, noon, record.ScheduledFor.UTC())
}

func TestDispatchSurvivesCallerCancellation(t *testing.T) {
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(noon, manager)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ids, err := p.dispatcher.Dispatch(ctx, &model.Intent{
		Kind:       model.EventCleaningCompleted,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	record, err := p.store.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusSent, record.Status)
	assert.Len(t, p.transport.userSends, 1)
}

func TestScheduleSurvivesCallerCancellation(t *testing.T) {
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(noon, manager)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ids, err := p.dispatcher.Schedule(ctx, &model.Intent{
		Kind:       model.EventDailyOperationsSummary,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"summary": "All quiet."},
		Recipients: model.AutoRecipients(),
	}, noon.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, ids, 1)
}

func TestDispatchMarksPushDelivered(t *testing.T) {
	manager := staffUser(uuid.Nil, model.RoleManager)
	p := newPipeline(noon, manager)

	ids, err := p.dispatcher.Dispatch(context.Background(), &model.Intent{
		Kind:       model.EventCleaningCompleted,
		HotelID:    p.hotel.ID,
		Payload:    model.JSONMap{"roomNumber": "101"},
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	assert.Contains(t, p.store.delivered[ids[0]], model.ChannelPush)
}
