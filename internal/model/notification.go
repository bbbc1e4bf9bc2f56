package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NotificationStatus is the lifecycle state of a notification record.
// Transitions are monotonic: pending -> {sent, failed, suppressed}.
type NotificationStatus string

const (
	NotificationStatusPending    NotificationStatus = "pending"
	NotificationStatusSent       NotificationStatus = "sent"
	NotificationStatusFailed     NotificationStatus = "failed"
	NotificationStatusSuppressed NotificationStatus = "suppressed"
)

// CanTransitionTo reports whether moving to next is a legal lifecycle step.
func (s NotificationStatus) CanTransitionTo(next NotificationStatus) bool {
	if s == next {
		return false
	}
	return s == NotificationStatusPending
}

// Notification priority levels. Urgent and high additionally fan out to
// the hotel admin topic; low is subject to quiet-hours deferral.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidPriority reports whether p is a recognized priority level.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Delivery channel labels. Email and SMS are reserved for pluggable
// gateway transports.
const (
	ChannelInApp = "in_app"
	ChannelPush  = "push"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// ChannelFailures maps channel label to the recorded failure reason.
type ChannelFailures map[string]string

// Value implements driver.Valuer for JSONB persistence.
func (f ChannelFailures) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB columns.
func (f *ChannelFailures) Scan(src interface{}) error {
	if src == nil {
		*f = ChannelFailures{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("unsupported type for ChannelFailures: %T", src)
	}
}

// Notification is the persistent record of one delivery to one recipient.
type Notification struct {
	ID           uuid.UUID          `json:"id" db:"id"`
	UserID       uuid.UUID          `json:"user_id" db:"user_id"`
	HotelID      uuid.UUID          `json:"hotel_id" db:"hotel_id"`
	Type         string             `json:"type" db:"type"`
	Title        string             `json:"title" db:"title"`
	Message      string             `json:"message" db:"message"`
	Priority     string             `json:"priority" db:"priority"`
	Status       NotificationStatus `json:"status" db:"status"`
	Channels     pq.StringArray     `json:"channels" db:"channels"`
	ScheduledFor *time.Time         `json:"scheduled_for" db:"scheduled_for"`
	SentAt       *time.Time         `json:"sent_at" db:"sent_at"`
	ReadAt       *time.Time         `json:"read_at" db:"read_at"`
	Failures     ChannelFailures    `json:"failures" db:"failures"`
	Metadata     JSONMap            `json:"metadata" db:"metadata"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"`
}

// SuppressionKey identifies a coalescing bucket: notifications for the
// same recipient, kind, and hotel within the window merge into one record.
type SuppressionKey struct {
	UserID  uuid.UUID
	Type    string
	HotelID uuid.UUID
}

// Key returns the notification's coalescing bucket.
func (n *Notification) Key() SuppressionKey {
	return SuppressionKey{UserID: n.UserID, Type: n.Type, HotelID: n.HotelID}
}

// Envelope topics for the real-time channel.
const (
	TopicNotificationNew    = "notification:new"
	TopicNotificationUrgent = "notification:urgent"
)

// Envelope is the client-facing projection of a notification pushed over
// the real-time channel.
type Envelope struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority"`
	Metadata  JSONMap   `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// ToEnvelope projects the record for real-time delivery.
func (n *Notification) ToEnvelope() Envelope {
	return Envelope{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Priority:  n.Priority,
		Metadata:  n.Metadata,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationFilter represents admin/dashboard query parameters over the
// notification log.
type NotificationFilter struct {
	HotelID   uuid.UUID          `json:"hotel_id" form:"hotel_id"`
	UserID    uuid.UUID          `json:"user_id" form:"user_id"`
	Type      string             `json:"type" form:"type"`
	Status    NotificationStatus `json:"status" form:"status"`
	StartDate time.Time          `json:"start_date" form:"start_date"`
	EndDate   time.Time          `json:"end_date" form:"end_date"`
	Limit     int                `json:"limit" form:"limit"`
	Offset    int                `json:"offset" form:"offset"`
}
