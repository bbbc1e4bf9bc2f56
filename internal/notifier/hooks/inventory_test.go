package hooks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/hotel-api/internal/model"
)

func newItem(h *harness, quantity, reorderLevel int) *model.InventoryItem {
	item := &model.InventoryItem{
		HotelID:      h.hotel.ID,
		Name:         "Towels",
		Category:     "linen",
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	}
	item.ID = uuid.New()
	return item
}

func TestInventoryLowStockAfterConsumption(t *testing.T) {
	h := newHarness()

	item := newItem(h, 4, 5)
	h.emitter.InventoryAdjusted(context.Background(), item, model.InventoryReasonConsumed, -2)

	records := h.store.byType(model.EventInventoryLowStock)
	require.Len(t, records, 2)
	assert.Contains(t, records[0].Message, "Towels")
	assert.Contains(t, records[0].Message, "4 remaining")
}

func TestInventoryOutOfStock(t *testing.T) {
	h := newHarness()

	item := newItem(h, 0, 5)
	h.emitter.InventoryAdjusted(context.Background(), item, model.InventoryReasonConsumed, -3)

	records := h.store.byType(model.EventInventoryOutOfStock)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, model.PriorityHigh, r.Priority)
	}
	// Out-of-stock supersedes the low-stock alert.
	assert.Empty(t, h.store.byType(model.EventInventoryLowStock))
}

func TestInventoryDamagedReportsLoss(t *testing.T) {
	h := newHarness()

	item := newItem(h, 20, 5)
	h.emitter.InventoryAdjusted(context.Background(), item, model.InventoryReasonDamaged, -3)

	records := h.store.byType(model.EventInventoryDamaged)
	require.Len(t, records, 2)
	assert.Contains(t, records[0].Message, "3 units of Towels")
}

func TestInventoryMissingReportsLoss(t *testing.T) {
	h := newHarness()

	item := newItem(h, 20, 5)
	h.emitter.InventoryAdjusted(context.Background(), item, model.InventoryReasonMissing, -2)

	assert.Len(t, h.store.byType(model.EventInventoryMissing), 2)
}

func TestInventoryRestockIsSilent(t *testing.T) {
	h := newHarness()

	item := newItem(h, 50, 5)
	h.emitter.InventoryAdjusted(context.Background(), item, "restock", 30)

	assert.Empty(t, h.store.records)
}

func TestInventoryAboveReorderLevelIsSilent(t *testing.T) {
	h := newHarness()

	item := newItem(h, 12, 5)
	h.emitter.InventoryAdjusted(context.Background(), item, model.InventoryReasonConsumed, -2)

	assert.Empty(t, h.store.records)
}
