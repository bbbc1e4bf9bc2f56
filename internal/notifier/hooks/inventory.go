package hooks

import (
	"context"

	"github.com/hotelops/hotel-api/internal/model"
)

func inventoryPayload(item *model.InventoryItem) model.JSONMap {
	return model.JSONMap{
		"itemId":   item.ID.String(),
		"itemName": item.Name,
		"category": item.Category,
		"quantity": item.Quantity,
	}
}

// InventoryAdjusted fires after a stock movement has been applied. The
// item carries the post-adjustment quantity.
func (e *Emitter) InventoryAdjusted(ctx context.Context, item *model.InventoryItem, reason string, delta int) {
	var intents []*model.Intent

	switch reason {
	case model.InventoryReasonDamaged:
		payload := inventoryPayload(item)
		payload["quantity"] = -delta
		intents = append(intents, &model.Intent{
			Kind:       model.EventInventoryDamaged,
			HotelID:    item.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityMedium,
		})
	case model.InventoryReasonMissing:
		payload := inventoryPayload(item)
		payload["quantity"] = -delta
		intents = append(intents, &model.Intent{
			Kind:       model.EventInventoryMissing,
			HotelID:    item.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityMedium,
		})
	}

	if delta < 0 {
		switch {
		case item.Quantity == 0:
			intents = append(intents, &model.Intent{
				Kind:       model.EventInventoryOutOfStock,
				HotelID:    item.HotelID,
				Payload:    inventoryPayload(item),
				Recipients: model.AutoRecipients(),
				Priority:   model.PriorityHigh,
			})
		case item.Quantity <= item.ReorderLevel:
			intents = append(intents, &model.Intent{
				Kind:       model.EventInventoryLowStock,
				HotelID:    item.HotelID,
				Payload:    inventoryPayload(item),
				Recipients: model.AutoRecipients(),
				Priority:   model.PriorityMedium,
			})
		}
	}

	e.emit(ctx, intents...)
}
