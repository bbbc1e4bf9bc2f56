package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/notifier/hooks"
	"github.com/hotelops/hotel-api/internal/repository"
)

type HousekeepingServicer interface {
	CreateTask(ctx context.Context, hotelID uuid.UUID, req *model.CreateHousekeepingRequest) (*model.HousekeepingTask, error)
	GetTask(ctx context.Context, id uuid.UUID) (*model.HousekeepingTask, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req *model.UpdateHousekeepingRequest) (*model.HousekeepingTask, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListTasks(ctx context.Context, filter *model.HousekeepingFilter) ([]*model.HousekeepingTask, error)
}

type Service struct {
	repo    repository.HousekeepingRepository
	emitter *hooks.Emitter
}

func NewService(repo repository.HousekeepingRepository, emitter *hooks.Emitter) *Service {
	return &Service{repo: repo, emitter: emitter}
}

func (s *Service) CreateTask(ctx context.Context, hotelID uuid.UUID, req *model.CreateHousekeepingRequest) (*model.HousekeepingTask, error) {
	now := time.Now()
	task := &model.HousekeepingTask{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		HotelID:           hotelID,
		RoomNumber:        req.RoomNumber,
		TaskType:          req.TaskType,
		Priority:          req.Priority,
		Status:            model.TaskStatusPending,
		InventoryConsumed: model.ConsumedItems{},
		Notes:             req.Notes,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create housekeeping task: %w", err)
	}

	s.emitter.HousekeepingCreated(ctx, task)
	return task, nil
}

func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (*model.HousekeepingTask, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get housekeeping task: %w", err)
	}
	return task, nil
}

func (s *Service) UpdateTask(ctx context.Context, id uuid.UUID, req *model.UpdateHousekeepingRequest) (*model.HousekeepingTask, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get housekeeping task: %w", err)
	}
	before := *task

	now := time.Now()
	if req.Status != nil {
		task.Status = *req.Status
		if task.Status == model.TaskStatusInProgress && task.StartedAt == nil {
			task.StartedAt = &now
		}
		if task.Status == model.TaskStatusCompleted && task.CompletedAt == nil {
			task.CompletedAt = &now
		}
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}
	if req.QualityScore != nil {
		task.QualityScore = req.QualityScore
	}
	if req.InventoryConsumed != nil {
		task.InventoryConsumed = req.InventoryConsumed
	}
	if req.Notes != nil {
		task.Notes = req.Notes
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update housekeeping task: %w", err)
	}

	s.emitter.HousekeepingUpdated(ctx, &before, task)
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete housekeeping task: %w", err)
	}
	return nil
}

func (s *Service) ListTasks(ctx context.Context, filter *model.HousekeepingFilter) ([]*model.HousekeepingTask, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list housekeeping tasks: %w", err)
	}
	return tasks, nil
}
