package hooks

import (
	"context"

	"github.com/hotelops/hotel-api/internal/model"
)

// RoomStatusChanged fires when a room's status field changes.
func (e *Emitter) RoomStatusChanged(ctx context.Context, before, after *model.Room) {
	if before.Status == after.Status {
		return
	}

	payload := model.JSONMap{
		"roomId":     after.ID.String(),
		"roomNumber": after.Number,
		"status":     after.Status,
	}

	var intents []*model.Intent

	switch after.Status {
	case model.RoomStatusOutOfOrder:
		intents = append(intents, &model.Intent{
			Kind:       model.EventRoomOutOfOrder,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityHigh,
		})
	case model.RoomStatusCleaning:
		intents = append(intents, &model.Intent{
			Kind:       model.EventRoomNeedsCleaning,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityMedium,
		})
	case model.RoomStatusAvailable:
		if before.Status == model.RoomStatusOutOfOrder || before.Status == model.RoomStatusMaintenance {
			intents = append(intents, &model.Intent{
				Kind:       model.EventRoomBackInService,
				HotelID:    after.HotelID,
				Payload:    payload,
				Recipients: model.AutoRecipients(),
				Priority:   model.PriorityMedium,
			})
		}
	}

	e.emit(ctx, intents...)
}

// BookingCheckedOut fires when a guest checks out; housekeeping gets a
// checkout-dirty event for the vacated room.
func (e *Emitter) BookingCheckedOut(ctx context.Context, booking *model.Booking, room *model.Room) {
	payload := model.JSONMap{
		"bookingId":  booking.ID.String(),
		"roomNumber": room.Number,
		"guestId":    booking.GuestID.String(),
	}

	e.emit(ctx, &model.Intent{
		Kind:       model.EventRoomCheckoutDirty,
		HotelID:    booking.HotelID,
		Payload:    payload,
		Recipients: model.AutoRecipients(),
		Priority:   model.PriorityMedium,
	})
}
