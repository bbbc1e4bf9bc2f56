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

type inventoryRepository struct {
	BaseRepository
}

func NewInventoryRepository(base BaseRepository) repository.InventoryRepository {
	return &inventoryRepository{base}
}

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			id, hotel_id, name, category, quantity, reorder_level,
			unit_cost, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.HotelID,
		item.Name,
		item.Category,
		item.Quantity,
		item.ReorderLevel,
		item.UnitCost,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	query := `SELECT * FROM inventory_items WHERE id = $1 AND deleted_at IS NULL`

	var item model.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			name = $1,
			category = $2,
			quantity = $3,
			reorder_level = $4,
			unit_cost = $5,
			updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.Category,
		item.Quantity,
		item.ReorderLevel,
		item.UnitCost,
		time.Now(),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
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

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE inventory_items SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
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

func (r *inventoryRepository) List(ctx context.Context, filter *model.InventoryFilter) ([]*model.InventoryItem, error) {
	query := `SELECT * FROM inventory_items WHERE hotel_id = $1 AND deleted_at IS NULL`
	args := []interface{}{filter.HotelID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.LowStock {
		query += " AND quantity <= reorder_level"
	}

	query += " ORDER BY name ASC"

	var items []*model.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// AdjustQuantity applies a stock movement atomically and returns the
// updated row. Quantity never goes below zero.
func (r *inventoryRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*model.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET quantity = GREATEST(quantity + $1, 0), updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING *
	`

	var item model.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, delta, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to adjust inventory quantity: %w", err)
	}
	return &item, nil
}
