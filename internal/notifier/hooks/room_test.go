package hooks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/hotel-api/internal/model"
)

func newRoom(h *harness, status string) *model.Room {
	room := &model.Room{
		HotelID: h.hotel.ID,
		Number:  "101",
		Type:    "double",
		Status:  status,
	}
	room.ID = uuid.New()
	return room
}

func TestRoomOutOfOrderNotifiesManagement(t *testing.T) {
	h := newHarness()

	before := newRoom(h, model.RoomStatusAvailable)
	after := *before
	after.Status = model.RoomStatusOutOfOrder

	h.emitter.RoomStatusChanged(context.Background(), before, &after)

	records := h.store.byType(model.EventRoomOutOfOrder)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, model.PriorityHigh, r.Priority)
	}
}

func TestRoomBackInService(t *testing.T) {
	h := newHarness()

	before := newRoom(h, model.RoomStatusOutOfOrder)
	after := *before
	after.Status = model.RoomStatusAvailable

	h.emitter.RoomStatusChanged(context.Background(), before, &after)

	assert.Len(t, h.store.byType(model.EventRoomBackInService), 2)
}

func TestRoomAvailableAfterCleaningIsSilent(t *testing.T) {
	h := newHarness()

	before := newRoom(h, model.RoomStatusCleaning)
	after := *before
	after.Status = model.RoomStatusAvailable

	h.emitter.RoomStatusChanged(context.Background(), before, &after)

	assert.Empty(t, h.store.byType(model.EventRoomBackInService))
}

func TestRoomStatusUnchangedIsSilent(t *testing.T) {
	h := newHarness()

	room := newRoom(h, model.RoomStatusAvailable)
	h.emitter.RoomStatusChanged(context.Background(), room, room)

	assert.Empty(t, h.store.records)
}

func TestRoomNeedsCleaningOnStatusChange(t *testing.T) {
	h := newHarness()

	before := newRoom(h, model.RoomStatusOccupied)
	after := *before
	after.Status = model.RoomStatusCleaning

	h.emitter.RoomStatusChanged(context.Background(), before, &after)

	records := h.store.byType(model.EventRoomNeedsCleaning)
	require.Len(t, records, 1)
	assert.Equal(t, h.housekeeper.ID, records[0].UserID)
}

func TestBookingCheckoutNotifiesHousekeeping(t *testing.T) {
	h := newHarness()

	room := newRoom(h, model.RoomStatusOccupied)
	booking := &model.Booking{
		HotelID: h.hotel.ID,
		GuestID: uuid.New(),
		RoomID:  room.ID,
		Status:  "checked_out",
	}
	booking.ID = uuid.New()

	h.emitter.BookingCheckedOut(context.Background(), booking, room)

	records := h.store.byType(model.EventRoomCheckoutDirty)
	require.Len(t, records, 1)
	assert.Equal(t, h.housekeeper.ID, records[0].UserID)
	assert.Contains(t, records[0].Message, "101")
}
