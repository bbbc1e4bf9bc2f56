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

type maintenanceRepository struct {
	BaseRepository
}

func NewMaintenanceRepository(base BaseRepository) repository.MaintenanceRepository {
	return &maintenanceRepository{base}
}

func (r *maintenanceRepository) Create(ctx context.Context, task *model.MaintenanceTask) error {
	query := `
		INSERT INTO maintenance_tasks (
			id, hotel_id, room_number, type, priority, status,
			assigned_to, description, estimated_cost,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	task.ID = uuid.New()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	if task.Status == "" {
		task.Status = model.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = model.MaintenancePriorityMedium
	}

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.HotelID,
		task.RoomNumber,
		task.Type,
		task.Priority,
		task.Status,
		task.AssignedTo,
		task.Description,
		task.EstimatedCost,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create maintenance task: %w", err)
	}
	return nil
}

func (r *maintenanceRepository) Get(ctx context.Context, id uuid.UUID) (*model.MaintenanceTask, error) {
	query := `SELECT * FROM maintenance_tasks WHERE id = $1 AND deleted_at IS NULL`

	var task model.MaintenanceTask
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get maintenance task: %w", err)
	}
	return &task, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, task *model.MaintenanceTask) error {
	query := `
		UPDATE maintenance_tasks SET
			priority = $1,
			status = $2,
			assigned_to = $3,
			description = $4,
			estimated_cost = $5,
			actual_cost = $6,
			started_at = $7,
			completed_at = $8,
			updated_at = $9
		WHERE id = $10 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Priority,
		task.Status,
		task.AssignedTo,
		task.Description,
		task.EstimatedCost,
		task.ActualCost,
		task.StartedAt,
		task.CompletedAt,
		time.Now(),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update maintenance task: %w", err)
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

func (r *maintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE maintenance_tasks SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance task: %w", err)
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

func (r *maintenanceRepository) List(ctx context.Context, filter *model.MaintenanceFilter) ([]*model.MaintenanceTask, error) {
	query := `SELECT * FROM maintenance_tasks WHERE hotel_id = $1 AND deleted_at IS NULL`
	args := []interface{}{filter.HotelID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if filter.AssignedTo != uuid.Nil {
		args = append(args, filter.AssignedTo)
		query += fmt.Sprintf(" AND assigned_to = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	var tasks []*model.MaintenanceTask
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list maintenance tasks: %w", err)
	}
	return tasks, nil
}
