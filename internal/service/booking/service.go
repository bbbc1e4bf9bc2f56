package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/notifier/hooks"
	"github.com/hotelops/hotel-api/internal/repository"
)

var ErrRoomUnavailable = errors.New("room is not available for the requested dates")

type BookingServicer interface {
	CreateBooking(ctx context.Context, booking *model.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, req *model.UpdateBookingRequest) (*model.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) error
	ListBookings(ctx context.Context, filter *model.BookingFilter) ([]*model.Booking, error)
}

type Service struct {
	repo    repository.BookingRepository
	rooms   repository.RoomRepository
	emitter *hooks.Emitter
}

func NewService(repo repository.BookingRepository, rooms repository.RoomRepository, emitter *hooks.Emitter) *Service {
	return &Service{repo: repo, rooms: rooms, emitter: emitter}
}

func (s *Service) CreateBooking(ctx context.Context, booking *model.Booking) error {
	overlapping, err := s.repo.FindOverlapping(ctx, booking.RoomID, booking.CheckIn, booking.CheckOut, nil)
	if err != nil {
		return fmt.Errorf("failed to check availability: %w", err)
	}
	if len(overlapping) > 0 {
		return ErrRoomUnavailable
	}

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	if booking.Status == "" {
		booking.Status = model.BookingStatusPending
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *Service) UpdateBooking(ctx context.Context, id uuid.UUID, req *model.UpdateBookingRequest) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	before := *booking

	if req.CheckIn != nil {
		booking.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		booking.CheckOut = *req.CheckOut
	}
	if req.CheckIn != nil || req.CheckOut != nil {
		overlapping, err := s.repo.FindOverlapping(ctx, booking.RoomID, booking.CheckIn, booking.CheckOut, &booking.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check availability: %w", err)
		}
		if len(overlapping) > 0 {
			return nil, ErrRoomUnavailable
		}
	}
	if req.Status != nil {
		booking.Status = *req.Status
	}
	if req.Total != nil {
		booking.Total = *req.Total
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	now := time.Now()
	if booking.Status == model.BookingStatusCheckedIn && before.Status != model.BookingStatusCheckedIn {
		booking.CheckedInAt = &now
	}
	if booking.Status == model.BookingStatusCheckedOut && before.Status != model.BookingStatusCheckedOut {
		booking.CheckedOutAt = &now
	}
	booking.UpdatedAt = now

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if booking.Status == model.BookingStatusCheckedOut && before.Status != model.BookingStatusCheckedOut {
		if room, err := s.rooms.Get(ctx, booking.RoomID); err == nil {
			s.emitter.BookingCheckedOut(ctx, booking, room)
		}
	}

	return booking, nil
}

func (s *Service) CancelBooking(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}
	booking.Status = model.BookingStatusCancelled
	booking.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, booking); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	return nil
}

func (s *Service) ListBookings(ctx context.Context, filter *model.BookingFilter) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
