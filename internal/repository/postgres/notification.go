package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
)

type notificationRepository struct {
	BaseRepository
}

func NewNotificationRepository(base BaseRepository) repository.NotificationRepository {
	return &notificationRepository{base}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (err error) {
	done := r.track("notification_create")
	defer func() { done(err) }()

	if n.Title == "" || n.Message == "" {
		return fmt.Errorf("notification title and message are required")
	}

	query := `
		INSERT INTO notifications (
			id, user_id, hotel_id, type, title, message, priority,
			status, channels, scheduled_for, failures, metadata,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.Status = model.NotificationStatusPending
	n.UpdatedAt = n.CreatedAt

	_, err = r.db.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.HotelID,
		n.Type,
		n.Title,
		n.Message,
		n.Priority,
		n.Status,
		n.Channels,
		n.ScheduledFor,
		n.Failures,
		n.Metadata,
		n.CreatedAt,
		n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `SELECT * FROM notifications WHERE id = $1`

	var n model.Notification
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

// UpdateStatus moves a record along the pending -> {sent, failed,
// suppressed} lifecycle. The WHERE clause only matches records still in
// pending, which makes concurrent scheduler ticks idempotent: the loser
// of the race observes zero affected rows and gets ErrIllegalTransition.
func (r *notificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, sentAt *time.Time) (err error) {
	done := r.track("notification_update_status")
	defer func() { done(err) }()

	if !model.NotificationStatusPending.CanTransitionTo(status) {
		return repository.ErrIllegalTransition
	}

	query := `
		UPDATE notifications
		SET status = $1, sent_at = COALESCE($2, sent_at), updated_at = NOW()
		WHERE id = $3 AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, status, sentAt, id)
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return getErr
		}
		return repository.ErrIllegalTransition
	}
	return nil
}

// AppendToMessage is the coalescing write. Any previous coalescing
// suffix is stripped before the new one lands, so repeated merges keep
// a single running count. The status guard resolves the check-then-act
// race between QueryRecent and this call: once a record has advanced
// past sent, the suffix is refused and the caller falls back to
// creating a fresh record.
func (r *notificationRepository) AppendToMessage(ctx context.Context, id uuid.UUID, suffix string) (err error) {
	done := r.track("notification_append")
	defer func() { done(err) }()

	query := `
		UPDATE notifications
		SET message = regexp_replace(message, '\s\(\+\d+ more\)$', '') || $1,
		    updated_at = NOW()
		WHERE id = $2 AND status IN ('pending', 'sent')
	`

	result, err := r.db.ExecContext(ctx, query, suffix, id)
	if err != nil {
		return fmt.Errorf("failed to append to notification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrIllegalTransition
	}
	return nil
}

func (r *notificationRepository) QueryRecent(ctx context.Context, key model.SuppressionKey, since time.Time) (_ []*model.Notification, err error) {
	done := r.track("notification_query_recent")
	defer func() { done(err) }()

	query := `
		SELECT * FROM notifications
		WHERE user_id = $1 AND type = $2 AND hotel_id = $3
		AND created_at >= $4
		AND status IN ('pending', 'sent')
		ORDER BY created_at DESC
	`

	var notifications []*model.Notification
	err = r.db.SelectContext(ctx, &notifications, query, key.UserID, key.Type, key.HotelID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) QueryDue(ctx context.Context, before time.Time, limit int) (_ []*model.Notification, err error) {
	done := r.track("notification_query_due")
	defer func() { done(err) }()

	query := `
		SELECT * FROM notifications
		WHERE status = 'pending'
		AND scheduled_for IS NOT NULL
		AND scheduled_for <= $1
		ORDER BY scheduled_for ASC
		LIMIT $2
	`

	var notifications []*model.Notification
	err = r.db.SelectContext(ctx, &notifications, query, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, id uuid.UUID, channel string) error {
	query := `
		UPDATE notifications
		SET failures = failures - $1::text, updated_at = NOW()
		WHERE id = $2
	`

	_, err := r.db.ExecContext(ctx, query, channel, id)
	if err != nil {
		return fmt.Errorf("failed to mark channel delivered: %w", err)
	}
	return nil
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, channel, reason string) error {
	query := `
		UPDATE notifications
		SET failures = failures || jsonb_build_object($1::text, $2::text),
		    updated_at = NOW()
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, channel, reason, id)
	if err != nil {
		return fmt.Errorf("failed to mark channel failed: %w", err)
	}
	return nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	query := `
		UPDATE notifications
		SET read_at = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND read_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query, at, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1 AND status IN ('sent', 'pending')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var notifications []*model.Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND status = 'sent' AND read_at IS NULL
	`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) List(ctx context.Context, filter *model.NotificationFilter) ([]*model.Notification, error) {
	query := `SELECT * FROM notifications WHERE hotel_id = $1`
	args := []interface{}{filter.HotelID}

	if filter.UserID != uuid.Nil {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var notifications []*model.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) DeleteSentBefore(ctx context.Context, cutoff time.Time) (_ int64, err error) {
	done := r.track("notification_delete_sent")
	defer func() { done(err) }()

	var deleted int64
	err = r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM notifications WHERE status = 'sent' AND created_at < $1`, cutoff)
		if err != nil {
			return err
		}
		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}
	return deleted, nil
}
