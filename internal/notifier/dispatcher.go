package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
	"github.com/hotelops/hotel-api/pkg/logger"
	"github.com/hotelops/hotel-api/pkg/metrics"
)

// Dispatcher orchestrates the notification pipeline: render, resolve,
// suppress, persist, fan out, mark status. It is constructed once at
// startup and shared; all state lives in the store.
type Dispatcher struct {
	store      repository.NotificationRepository
	renderer   func(model.EventKind, model.JSONMap) Content
	resolver   *Resolver
	suppressor *Suppressor
	transport  Transport
	clock      Clock
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// NewDispatcher wires the pipeline components together.
func NewDispatcher(
	store repository.NotificationRepository,
	resolver *Resolver,
	suppressor *Suppressor,
	transport Transport,
	clock Clock,
	log *logger.Logger,
	m *metrics.Metrics,
) *Dispatcher {
	return &Dispatcher{
		store:      store,
		renderer:   Render,
		resolver:   resolver,
		suppressor: suppressor,
		transport:  transport,
		clock:      clock,
		logger:     log,
		metrics:    m,
	}
}

// Dispatch runs the full pipeline for one intent and returns the IDs of
// every notification record it touched (created or merged into).
//
// Store write failures propagate to the caller; push transport failures
// are recorded per channel and swallowed. An empty recipient set is a
// successful no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, intent *model.Intent) ([]uuid.UUID, error) {
	timer := prometheus.NewTimer(d.metrics.DispatchLatency)
	defer timer.ObserveDuration()

	// An accepted intent outlives its trigger: the request that caused
	// the business write may be cancelled or time out while records are
	// still being persisted and fanned out.
	ctx = context.WithoutCancel(ctx)

	content := d.renderer(intent.Kind, intent.Payload)

	recipients, err := d.resolver.Resolve(ctx, intent)
	if err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", intent.Kind, err)
	}
	if len(recipients) == 0 {
		d.logger.Info("no recipients for event, skipping dispatch",
			"kind", string(intent.Kind), "hotel_id", intent.HotelID.String())
		return nil, nil
	}

	priority := intent.Priority
	if !model.ValidPriority(priority) {
		priority = model.PriorityMedium
	}

	var ids []uuid.UUID
	var errs []error
	for _, recipient := range recipients {
		id, err := d.dispatchOne(ctx, intent, content, recipient, priority)
		if err != nil {
			d.logger.Error(err, "failed to dispatch notification",
				"kind", string(intent.Kind), "recipient", recipient.String())
			errs = append(errs, err)
			continue
		}
		ids = append(ids, id)
	}

	return ids, errors.Join(errs...)
}

func (d *Dispatcher) dispatchOne(ctx context.Context, intent *model.Intent, content Content, recipient uuid.UUID, priority string) (uuid.UUID, error) {
	now := d.clock.Now()

	record := &model.Notification{
		UserID:    recipient,
		HotelID:   intent.HotelID,
		Type:      string(intent.Kind),
		Title:     content.Title,
		Message:   content.Message,
		Priority:  priority,
		Channels:  []string{model.ChannelInApp, model.ChannelPush},
		Metadata:  buildMetadata(intent.Payload, content.Icon, now),
		CreatedAt: now,
	}

	// Quiet hours: defer instead of delivering. The scheduler takes
	// over once the release time passes.
	if d.suppressor.ApplyQuietHours(ctx, record) {
		if err := d.store.Create(ctx, record); err != nil {
			return uuid.Nil, fmt.Errorf("failed to persist deferred notification: %w", err)
		}
		d.metrics.NotificationsDeferred.Inc()
		return record.ID, nil
	}

	decision, err := d.suppressor.Coalesce(ctx, record)
	if err != nil {
		return uuid.Nil, err
	}
	if decision.Merge {
		err := d.store.AppendToMessage(ctx, decision.TargetID, decision.Suffix)
		if err == nil {
			d.metrics.NotificationsCoalesced.Inc()
			return decision.TargetID, nil
		}
		if !errors.Is(err, repository.ErrIllegalTransition) {
			return uuid.Nil, err
		}
		// The target died between the read and the append; fall
		// through and create a fresh record.
	}

	if err := d.store.Create(ctx, record); err != nil {
		return uuid.Nil, fmt.Errorf("failed to persist notification: %w", err)
	}
	d.metrics.NotificationsCreated.WithLabelValues(string(intent.Kind)).Inc()

	d.deliver(ctx, record)
	return record.ID, nil
}

// deliver fans the record out and settles its status. Persistence has
// already succeeded, so the durable in-app channel counts as delivered
// regardless of what the push transport does.
func (d *Dispatcher) deliver(ctx context.Context, record *model.Notification) {
	envelope := record.ToEnvelope()

	topic := model.TopicNotificationNew
	if record.Priority == model.PriorityUrgent {
		topic = model.TopicNotificationUrgent
	}

	var transportErr error
	if err := d.transport.SendToUser(ctx, record.UserID, topic, envelope); err != nil {
		transportErr = err
	}

	if record.Priority == model.PriorityHigh || record.Priority == model.PriorityUrgent {
		if err := d.transport.SendToHotel(ctx, record.HotelID, model.TopicNotificationUrgent, envelope); err != nil && transportErr == nil {
			transportErr = err
		}
	}

	sentAt := d.clock.Now()
	if err := d.store.UpdateStatus(ctx, record.ID, model.NotificationStatusSent, &sentAt); err != nil {
		if errors.Is(err, repository.ErrIllegalTransition) {
			return
		}
		d.logger.Error(err, "failed to mark notification sent", "id", record.ID.String())
	}

	d.settlePush(ctx, record.ID, transportErr)
}

// settlePush records the push channel outcome: a failure is written for
// the record, a success clears any stale one left by an earlier attempt.
func (d *Dispatcher) settlePush(ctx context.Context, id uuid.UUID, transportErr error) {
	if transportErr != nil {
		d.metrics.PushFailures.Inc()
		if err := d.store.MarkFailed(ctx, id, model.ChannelPush, transportErr.Error()); err != nil {
			d.logger.Error(err, "failed to record push failure", "id", id.String())
		}
		return
	}
	if err := d.store.MarkDelivered(ctx, id, model.ChannelPush); err != nil {
		d.logger.Error(err, "failed to record push delivery", "id", id.String())
	}
}

// Schedule persists future-dated records for the intent without
// suppression or fan-out; the scheduler releases them when due.
func (d *Dispatcher) Schedule(ctx context.Context, intent *model.Intent, when time.Time) ([]uuid.UUID, error) {
	ctx = context.WithoutCancel(ctx)

	content := d.renderer(intent.Kind, intent.Payload)

	recipients, err := d.resolver.Resolve(ctx, intent)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", intent.Kind, err)
	}
	if len(recipients) == 0 {
		return nil, nil
	}

	priority := intent.Priority
	if !model.ValidPriority(priority) {
		priority = model.PriorityMedium
	}

	var ids []uuid.UUID
	var errs []error
	for _, recipient := range recipients {
		now := d.clock.Now()
		scheduledFor := when
		if scheduledFor.Before(now) {
			scheduledFor = now
		}

		record := &model.Notification{
			UserID:       recipient,
			HotelID:      intent.HotelID,
			Type:         string(intent.Kind),
			Title:        content.Title,
			Message:      content.Message,
			Priority:     priority,
			Channels:     []string{model.ChannelInApp, model.ChannelPush},
			ScheduledFor: &scheduledFor,
			Metadata:     buildMetadata(intent.Payload, content.Icon, now),
			CreatedAt:    now,
		}

		if err := d.store.Create(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("failed to persist scheduled notification: %w", err))
			continue
		}
		ids = append(ids, record.ID)
	}

	return ids, errors.Join(errs...)
}

// Release fans out a previously deferred record that has come due. The
// caller must have already claimed it via the conditional pending ->
// sent transition.
func (d *Dispatcher) Release(ctx context.Context, record *model.Notification) {
	envelope := record.ToEnvelope()

	topic := model.TopicNotificationNew
	if record.Priority == model.PriorityUrgent {
		topic = model.TopicNotificationUrgent
	}

	var transportErr error
	if err := d.transport.SendToUser(ctx, record.UserID, topic, envelope); err != nil {
		transportErr = err
	}
	if record.Priority == model.PriorityHigh || record.Priority == model.PriorityUrgent {
		if err := d.transport.SendToHotel(ctx, record.HotelID, model.TopicNotificationUrgent, envelope); err != nil && transportErr == nil {
			transportErr = err
		}
	}

	d.settlePush(ctx, record.ID, transportErr)
}

func buildMetadata(payload model.JSONMap, icon string, at time.Time) model.JSONMap {
	metadata := make(model.JSONMap, len(payload)+2)
	for k, v := range payload {
		metadata[k] = v
	}
	metadata["icon"] = icon
	metadata["timestamp"] = at.UTC().Format(time.RFC3339)
	return metadata
}
