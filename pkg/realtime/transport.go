package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/pkg/logger"
	"github.com/hotelops/hotel-api/pkg/messaging"
	"github.com/hotelops/hotel-api/pkg/metrics"
)

// FanoutChannel is the broker channel carrying push messages between
// API instances. Every instance subscribes and routes to its own hub.
const FanoutChannel = "notify:fanout"

const publishTimeout = 2 * time.Second

// Scope of a fanout message target.
const (
	scopeUser  = "user"
	scopeHotel = "hotel"
)

type fanoutMessage struct {
	Scope    string         `json:"scope"`
	TargetID uuid.UUID      `json:"target_id"`
	Topic    string         `json:"topic"`
	Envelope model.Envelope `json:"envelope"`
}

// Transport delivers envelopes to connected clients. Messages go
// through the broker so sessions held by other instances receive them
// too; the local hub picks them up from the same subscription.
type Transport struct {
	broker  messaging.Broker
	hub     *Hub
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewTransport(broker messaging.Broker, hub *Hub, log *logger.Logger, m *metrics.Metrics) *Transport {
	return &Transport{broker: broker, hub: hub, logger: log, metrics: m}
}

func (t *Transport) SendToUser(ctx context.Context, userID uuid.UUID, topic string, envelope model.Envelope) error {
	return t.publish(ctx, fanoutMessage{
		Scope:    scopeUser,
		TargetID: userID,
		Topic:    topic,
		Envelope: envelope,
	})
}

func (t *Transport) SendToHotel(ctx context.Context, hotelID uuid.UUID, topic string, envelope model.Envelope) error {
	return t.publish(ctx, fanoutMessage{
		Scope:    scopeHotel,
		TargetID: hotelID,
		Topic:    topic,
		Envelope: envelope,
	})
}

func (t *Transport) publish(ctx context.Context, msg fanoutMessage) error {
	timer := prometheus.NewTimer(t.metrics.FanoutLatency)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := t.broker.Publish(ctx, FanoutChannel, msg)
	status := "ok"
	if err != nil {
		status = "error"
	}
	t.metrics.RedisOperations.WithLabelValues("publish", status).Inc()
	return err
}

// Run consumes the fanout channel and routes messages to the local hub.
// It blocks until the context is cancelled.
func (t *Transport) Run(ctx context.Context) error {
	msgs, err := t.broker.Subscribe(ctx, FanoutChannel)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-msgs:
			if !ok {
				return nil
			}
			var msg fanoutMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				t.metrics.RedisOperations.WithLabelValues("receive", "error").Inc()
				t.logger.Warn("dropping malformed fanout message", "error", err.Error())
				continue
			}
			t.metrics.RedisOperations.WithLabelValues("receive", "ok").Inc()
			switch msg.Scope {
			case scopeUser:
				t.hub.SendToUser(msg.TargetID, msg.Topic, msg.Envelope)
			case scopeHotel:
				t.hub.SendToHotel(msg.TargetID, msg.Topic, msg.Envelope)
			}
		}
	}
}
