package room

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/notifier/hooks"
	"github.com/hotelops/hotel-api/internal/repository"
)

type RoomServicer interface {
	CreateRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req *model.UpdateRoomRequest) (*model.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	ListRooms(ctx context.Context, filter *model.RoomFilter) ([]*model.Room, error)
}

type Service struct {
	repo    repository.RoomRepository
	emitter *hooks.Emitter
}

func NewService(repo repository.RoomRepository, emitter *hooks.Emitter) *Service {
	return &Service{repo: repo, emitter: emitter}
}

func (s *Service) CreateRoom(ctx context.Context, room *model.Room) error {
	if existing, _ := s.repo.GetByNumber(ctx, room.HotelID, room.Number); existing != nil {
		return fmt.Errorf("room %s already exists", room.Number)
	}

	room.ID = uuid.New()
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	if room.Status == "" {
		room.Status = model.RoomStatusAvailable
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	room, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id uuid.UUID, req *model.UpdateRoomRequest) (*model.Room, error) {
	room, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	before := *room

	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if req.Rate != nil {
		room.Rate = *req.Rate
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	room.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	s.emitter.RoomStatusChanged(ctx, &before, room)
	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

func (s *Service) ListRooms(ctx context.Context, filter *model.RoomFilter) ([]*model.Room, error) {
	rooms, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}
