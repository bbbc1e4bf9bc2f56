package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/notifier/hooks"
	"github.com/hotelops/hotel-api/internal/repository"
)

type InventoryServicer interface {
	CreateItem(ctx context.Context, item *model.InventoryItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	UpdateItem(ctx context.Context, item *model.InventoryItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, filter *model.InventoryFilter) ([]*model.InventoryItem, error)
	AdjustStock(ctx context.Context, id uuid.UUID, req *model.AdjustInventoryRequest) (*model.InventoryItem, error)
}

type Service struct {
	repo    repository.InventoryRepository
	emitter *hooks.Emitter
}

func NewService(repo repository.InventoryRepository, emitter *hooks.Emitter) *Service {
	return &Service{repo: repo, emitter: emitter}
}

func (s *Service) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, item *model.InventoryItem) error {
	item.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, item); err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	return nil
}

func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

func (s *Service) ListItems(ctx context.Context, filter *model.InventoryFilter) ([]*model.InventoryItem, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, req *model.AdjustInventoryRequest) (*model.InventoryItem, error) {
	delta := req.Delta
	// Movements that remove stock are always negative regardless of sign
	// convention used by the caller.
	if req.Reason != model.InventoryReasonRestock && delta > 0 {
		delta = -delta
	}

	item, err := s.repo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust inventory: %w", err)
	}

	s.emitter.InventoryAdjusted(ctx, item, req.Reason, delta)
	return item, nil
}
