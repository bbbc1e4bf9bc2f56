package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/notifier/hooks"
	"github.com/hotelops/hotel-api/internal/repository"
)

type MaintenanceServicer interface {
	CreateTask(ctx context.Context, hotelID uuid.UUID, req *model.CreateMaintenanceRequest) (*model.MaintenanceTask, error)
	GetTask(ctx context.Context, id uuid.UUID) (*model.MaintenanceTask, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req *model.UpdateMaintenanceRequest) (*model.MaintenanceTask, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListTasks(ctx context.Context, filter *model.MaintenanceFilter) ([]*model.MaintenanceTask, error)
}

type Service struct {
	repo    repository.MaintenanceRepository
	emitter *hooks.Emitter
}

func NewService(repo repository.MaintenanceRepository, emitter *hooks.Emitter) *Service {
	return &Service{repo: repo, emitter: emitter}
}

func (s *Service) CreateTask(ctx context.Context, hotelID uuid.UUID, req *model.CreateMaintenanceRequest) (*model.MaintenanceTask, error) {
	now := time.Now()
	task := &model.MaintenanceTask{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		HotelID:       hotelID,
		RoomNumber:    req.RoomNumber,
		Type:          req.Type,
		Priority:      req.Priority,
		Status:        model.TaskStatusPending,
		Description:   req.Description,
		EstimatedCost: req.EstimatedCost,
	}
	if task.Priority == "" {
		task.Priority = model.MaintenancePriorityMedium
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create maintenance task: %w", err)
	}

	s.emitter.MaintenanceCreated(ctx, task)
	return task, nil
}

func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (*model.MaintenanceTask, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance task: %w", err)
	}
	return task, nil
}

func (s *Service) UpdateTask(ctx context.Context, id uuid.UUID, req *model.UpdateMaintenanceRequest) (*model.MaintenanceTask, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance task: %w", err)
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
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.ActualCost != nil {
		task.ActualCost = req.ActualCost
	}
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update maintenance task: %w", err)
	}

	s.emitter.MaintenanceUpdated(ctx, &before, task)
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete maintenance task: %w", err)
	}
	return nil
}

func (s *Service) ListTasks(ctx context.Context, filter *model.MaintenanceFilter) ([]*model.MaintenanceTask, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance tasks: %w", err)
	}
	return tasks, nil
}
