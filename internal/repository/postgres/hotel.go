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

type hotelRepository struct {
	BaseRepository
}

func NewHotelRepository(base BaseRepository) repository.HotelRepository {
	return &hotelRepository{base}
}

func (r *hotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	query := `
		INSERT INTO hotels (
			id, name, address, phone, timezone, status, settings,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	hotel.ID = uuid.New()
	hotel.CreatedAt = time.Now()
	hotel.UpdatedAt = hotel.CreatedAt
	if hotel.Timezone == "" {
		hotel.Timezone = model.DefaultTimezone
	}

	_, err := r.db.ExecContext(ctx, query,
		hotel.ID,
		hotel.Name,
		hotel.Address,
		hotel.Phone,
		hotel.Timezone,
		hotel.Status,
		hotel.Settings,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *hotelRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	query := `SELECT * FROM hotels WHERE id = $1 AND deleted_at IS NULL`

	var hotel model.Hotel
	if err := r.db.GetContext(ctx, &hotel, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	hotel.Settings = hotel.Settings.WithDefaults()
	return &hotel, nil
}

func (r *hotelRepository) Update(ctx context.Context, hotel *model.Hotel) error {
	query := `
		UPDATE hotels SET
			name = $1,
			address = $2,
			phone = $3,
			timezone = $4,
			status = $5,
			settings = $6,
			updated_at = $7
		WHERE id = $8 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		hotel.Name,
		hotel.Address,
		hotel.Phone,
		hotel.Timezone,
		hotel.Status,
		hotel.Settings,
		time.Now(),
		hotel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
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

func (r *hotelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE hotels SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
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

func (r *hotelRepository) List(ctx context.Context) ([]*model.Hotel, error) {
	query := `SELECT * FROM hotels WHERE deleted_at IS NULL ORDER BY created_at DESC`

	var hotels []*model.Hotel
	if err := r.db.SelectContext(ctx, &hotels, query); err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	for _, h := range hotels {
		h.Settings = h.Settings.WithDefaults()
	}
	return hotels, nil
}
