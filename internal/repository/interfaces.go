package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
)

// All repository interfaces in one file
type (
	// HotelRepository handles tenant operations
	HotelRepository interface {
		Create(ctx context.Context, hotel *model.Hotel) error
		Get(ctx context.Context, id uuid.UUID) (*model.Hotel, error)
		Update(ctx context.Context, hotel *model.Hotel) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Hotel, error)
	}

	// UserRepository handles user persistence; the notification
	// directory reads users through it.
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error)
		ListByRoles(ctx context.Context, hotelID uuid.UUID, roles []string) ([]*model.User, error)
		UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	}

	RoomRepository interface {
		Create(ctx context.Context, room *model.Room) error
		Get(ctx context.Context, id uuid.UUID) (*model.Room, error)
		GetByNumber(ctx context.Context, hotelID uuid.UUID, number string) (*model.Room, error)
		Update(ctx context.Context, room *model.Room) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.RoomFilter) ([]*model.Room, error)
	}

	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		Update(ctx context.Context, booking *model.Booking) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.BookingFilter) ([]*model.Booking, error)
		FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) ([]*model.Booking, error)
	}

	HousekeepingRepository interface {
		Create(ctx context.Context, task *model.HousekeepingTask) error
		Get(ctx context.Context, id uuid.UUID) (*model.HousekeepingTask, error)
		Update(ctx context.Context, task *model.HousekeepingTask) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.HousekeepingFilter) ([]*model.HousekeepingTask, error)
	}

	MaintenanceRepository interface {
		Create(ctx context.Context, task *model.MaintenanceTask) error
		Get(ctx context.Context, id uuid.UUID) (*model.MaintenanceTask, error)
		Update(ctx context.Context, task *model.MaintenanceTask) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.MaintenanceFilter) ([]*model.MaintenanceTask, error)
	}

	GuestServiceRepository interface {
		Create(ctx context.Context, svc *model.GuestService) error
		Get(ctx context.Context, id uuid.UUID) (*model.GuestService, error)
		Update(ctx context.Context, svc *model.GuestService) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.GuestServiceFilter) ([]*model.GuestService, error)
	}

	InventoryRepository interface {
		Create(ctx context.Context, item *model.InventoryItem) error
		Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
		Update(ctx context.Context, item *model.InventoryItem) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.InventoryFilter) ([]*model.InventoryItem, error)
		AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*model.InventoryItem, error)
	}

	// NotificationRepository is the durable notification store. It is
	// the serialization point of the dispatch pipeline: every status
	// transition goes through a conditional update here.
	NotificationRepository interface {
		Create(ctx context.Context, n *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		// UpdateStatus performs a monotonic transition and returns
		// ErrIllegalTransition when the record has already advanced.
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, sentAt *time.Time) error
		// AppendToMessage appends a coalescing suffix; it refuses once
		// the target's status has advanced past sent.
		AppendToMessage(ctx context.Context, id uuid.UUID, suffix string) error
		// QueryRecent returns records in the suppression bucket created
		// since the given instant with status pending or sent, newest first.
		QueryRecent(ctx context.Context, key model.SuppressionKey, since time.Time) ([]*model.Notification, error)
		// QueryDue returns pending records whose scheduled_for is at or
		// before the given instant.
		QueryDue(ctx context.Context, before time.Time, limit int) ([]*model.Notification, error)
		MarkDelivered(ctx context.Context, id uuid.UUID, channel string) error
		MarkFailed(ctx context.Context, id uuid.UUID, channel, reason string) error
		MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error
		ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error)
		CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
		List(ctx context.Context, filter *model.NotificationFilter) ([]*model.Notification, error)
		DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}
)
