package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
)

type guestServiceRepository struct {
	BaseRepository
}

func NewGuestServiceRepository(base BaseRepository) repository.GuestServiceRepository {
	return &guestServiceRepository{base}
}

func (r *guestServiceRepository) Create(ctx context.Context, svc *model.GuestService) error {
	query := `
		INSERT INTO guest_services (
			id, hotel_id, guest_id, room_number, service_type, priority,
			status, assigned_to, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	svc.ID = uuid.New()
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	if svc.Status == "" {
		svc.Status = model.TaskStatusPending
	}
	if svc.Priority == "" {
		svc.Priority = model.PriorityMedium
	}

	_, err := r.db.ExecContext(ctx, query,
		svc.ID,
		svc.HotelID,
		svc.GuestID,
		svc.RoomNumber,
		svc.ServiceType,
		svc.Priority,
		svc.Status,
		svc.AssignedTo,
		svc.Description,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create guest service: %w", err)
	}
	return nil
}

func (r *guestServiceRepository) Get(ctx context.Context, id uuid.UUID) (*model.GuestService, error) {
	query := `SELECT * FROM guest_services WHERE id = $1 AND deleted_at IS NULL`

	var svc model.GuestService
	if err := r.db.GetContext(ctx, &svc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get guest service: %w", err)
	}
	return &svc, nil
}

func (r *guestServiceRepository) Update(ctx context.Context, svc *model.GuestService) error {
	query := `
		UPDATE guest_services SET
			priority = $1,
			status = $2,
			assigned_to = $3,
			description = $4,
			started_at = $5,
			completed_at = $6,
			updated_at = $7
		WHERE id = $8 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		svc.Priority,
		svc.Status,
		svc.AssignedTo,
		svc.Description,
		svc.StartedAt,
		svc.CompletedAt,
		time.Now(),
		svc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update guest service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *guestServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE guest_services SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest service: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *guestServiceRepository) List(ctx context.Context, filter *model.GuestServiceFilter) ([]*model.GuestService, error) {
	query := `SELECT * FROM guest_services WHERE hotel_id = $1 AND deleted_at IS NULL`
	args := []interface{}{filter.HotelID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ServiceType != "" {
		args = append(args, filter.ServiceType)
		query += fmt.Sprintf(" AND service_type = $%d", len(args))
	}
	if filter.GuestID != uuid.Nil {
		args = append(args, filter.GuestID)
		query += fmt.Sprintf(" AND guest_id = $%d", len(args))
	}
	if filter.AssignedTo != uuid.Nil {
		args = append(args, filter.AssignedTo)
		query += fmt.Sprintf(" AND assigned_to = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	var services []*model.GuestService
	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list guest services: %w", err)
	}
	return services, nil
}
