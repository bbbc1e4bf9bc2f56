package hotel

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
)

type HotelServicer interface {
	CreateHotel(ctx context.Context, hotel *model.Hotel) error
	GetHotel(ctx context.Context, id uuid.UUID) (*model.Hotel, error)
	UpdateHotel(ctx context.Context, hotel *model.Hotel) error
	DeleteHotel(ctx context.Context, id uuid.UUID) error
	ListHotels(ctx context.Context) ([]*model.Hotel, error)
}

type Service struct {
	repo repository.HotelRepository
}

func NewService(repo repository.HotelRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateHotel(ctx context.Context, hotel *model.Hotel) error {
	hotel.ID = uuid.New()
	hotel.CreatedAt = time.Now()
	hotel.UpdatedAt = hotel.CreatedAt
	hotel.Status = "active"
	if hotel.Timezone == "" {
		hotel.Timezone = model.DefaultTimezone
	}
	if _, err := time.LoadLocation(hotel.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", hotel.Timezone, err)
	}

	if err := s.repo.Create(ctx, hotel); err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (s *Service) GetHotel(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	hotel, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return hotel, nil
}

func (s *Service) UpdateHotel(ctx context.Context, hotel *model.Hotel) error {
	if hotel.Timezone != "" {
		if _, err := time.LoadLocation(hotel.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", hotel.Timezone, err)
		}
	}
	hotel.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, hotel); err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
	}
	return nil
}

func (s *Service) DeleteHotel(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	return nil
}

func (s *Service) ListHotels(ctx context.Context) ([]*model.Hotel, error) {
	hotels, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	return hotels, nil
}
