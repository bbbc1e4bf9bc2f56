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

type housekeepingRepository struct {
	BaseRepository
}

func NewHousekeepingRepository(base BaseRepository) repository.HousekeepingRepository {
	return &housekeepingRepository{base}
}

func (r *housekeepingRepository) Create(ctx context.Context, task *model.HousekeepingTask) error {
	query := `
		INSERT INTO housekeeping_tasks (
			id, hotel_id, room_number, task_type, priority, status,
			assigned_to, quality_score, inventory_consumed, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	task.ID = uuid.New()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	if task.Status == "" {
		task.Status = model.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.HotelID,
		task.RoomNumber,
		task.TaskType,
		task.Priority,
		task.Status,
		task.AssignedTo,
		task.QualityScore,
		task.InventoryConsumed,
		task.Notes,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create housekeeping task: %w", err)
	}
	return nil
}

func (r *housekeepingRepository) Get(ctx context.Context, id uuid.UUID) (*model.HousekeepingTask, error) {
	query := `SELECT * FROM housekeeping_tasks WHERE id = $1 AND deleted_at IS NULL`

	var task model.HousekeepingTask
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get housekeeping task: %w", err)
	}
	return &task, nil
}

func (r *housekeepingRepository) Update(ctx context.Context, task *model.HousekeepingTask) error {
	query := `
		UPDATE housekeeping_tasks SET
			priority = $1,
			status = $2,
			assigned_to = $3,
			quality_score = $4,
			inventory_consumed = $5,
			notes = $6,
			started_at = $7,
			completed_at = $8,
			updated_at = $9
		WHERE id = $10 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Priority,
		task.Status,
		task.AssignedTo,
		task.QualityScore,
		task.InventoryConsumed,
		task.Notes,
		task.StartedAt,
		task.CompletedAt,
		time.Now(),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update housekeeping task: %w", err)
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

func (r *housekeepingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE housekeeping_tasks SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete housekeeping task: %w", err)
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

func (r *housekeepingRepository) List(ctx context.Context, filter *model.HousekeepingFilter) ([]*model.HousekeepingTask, error) {
	query := `SELECT * FROM housekeeping_tasks WHERE hotel_id = $1 AND deleted_at IS NULL`
	args := []interface{}{filter.HotelID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.TaskType != "" {
		args = append(args, filter.TaskType)
		query += fmt.Sprintf(" AND task_type = $%d", len(args))
	}
	if filter.AssignedTo != uuid.Nil {
		args = append(args, filter.AssignedTo)
		query += fmt.Sprintf(" AND assigned_to = $%d", len(args))
	}
	if filter.RoomNumber != "" {
		args = append(args, filter.RoomNumber)
		query += fmt.Sprintf(" AND room_number = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	var tasks []*model.HousekeepingTask
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list housekeeping tasks: %w", err)
	}
	return tasks, nil
}
