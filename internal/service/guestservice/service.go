package guestservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/notifier/hooks"
	"github.com/hotelops/hotel-api/internal/repository"
)

type GuestServiceServicer interface {
	CreateRequest(ctx context.Context, hotelID uuid.UUID, req *model.CreateGuestServiceRequest) (*model.GuestService, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*model.GuestService, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, req *model.UpdateGuestServiceRequest) (*model.GuestService, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
	ListRequests(ctx context.Context, filter *model.GuestServiceFilter) ([]*model.GuestService, error)
}

type Service struct {
	repo    repository.GuestServiceRepository
	emitter *hooks.Emitter
}

func NewService(repo repository.GuestServiceRepository, emitter *hooks.Emitter) *Service {
	return &Service{repo: repo, emitter: emitter}
}

func (s *Service) CreateRequest(ctx context.Context, hotelID uuid.UUID, req *model.CreateGuestServiceRequest) (*model.GuestService, error) {
	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		return nil, fmt.Errorf("invalid guest id: %w", err)
	}

	now := time.Now()
	svc := &model.GuestService{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		HotelID:     hotelID,
		GuestID:     guestID,
		RoomNumber:  req.RoomNumber,
		ServiceType: req.ServiceType,
		Priority:    req.Priority,
		Status:      model.TaskStatusPending,
		Description: req.Description,
	}
	if svc.Priority == "" {
		svc.Priority = model.PriorityMedium
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create guest service request: %w", err)
	}

	s.emitter.GuestServiceCreated(ctx, svc)
	return svc, nil
}

func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*model.GuestService, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest service request: %w", err)
	}
	return svc, nil
}

func (s *Service) UpdateRequest(ctx context.Context, id uuid.UUID, req *model.UpdateGuestServiceRequest) (*model.GuestService, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest service request: %w", err)
	}
	before := *svc

	now := time.Now()
	if req.Status != nil {
		svc.Status = *req.Status
		if svc.Status == model.TaskStatusInProgress && svc.StartedAt == nil {
			svc.StartedAt = &now
		}
		if svc.Status == model.TaskStatusCompleted && svc.CompletedAt == nil {
			svc.CompletedAt = &now
		}
	}
	if req.Priority != nil {
		svc.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		svc.AssignedTo = req.AssignedTo
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	svc.UpdatedAt = now

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update guest service request: %w", err)
	}

	s.emitter.GuestServiceUpdated(ctx, &before, svc)
	return svc, nil
}

func (s *Service) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete guest service request: %w", err)
	}
	return nil
}

func (s *Service) ListRequests(ctx context.Context, filter *model.GuestServiceFilter) ([]*model.GuestService, error) {
	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list guest service requests: %w", err)
	}
	return requests, nil
}
