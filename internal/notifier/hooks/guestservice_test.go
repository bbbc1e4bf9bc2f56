package hooks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/hotel-api/internal/model"
)

func guestWithTier(tier string) *model.User {
	guest := &model.User{Role: model.RoleGuest, Status: model.UserStatusActive}
	guest.ID = uuid.New()
	if tier != "" {
		guest.LoyaltyTier = &tier
	}
	return guest
}

func newRequest(h *harness, guestID uuid.UUID, priority string) *model.GuestService {
	svc := &model.GuestService{
		HotelID:     h.hotel.ID,
		GuestID:     guestID,
		RoomNumber:  "808",
		ServiceType: "room_service",
		Priority:    priority,
		Status:      model.TaskStatusPending,
		Description: "extra towels",
	}
	svc.ID = uuid.New()
	return svc
}

func TestGuestServiceCreatedNotifiesFrontDesk(t *testing.T) {
	guest := guestWithTier("")
	h := newHarness(guest)

	h.emitter.GuestServiceCreated(context.Background(), newRequest(h, guest.ID, model.PriorityMedium))

	// Routed to staff and managers; the harness has one manager and
	// no generic staff user.
	records := h.store.byType(model.EventGuestServiceCreated)
	require.Len(t, records, 1)
	assert.Equal(t, h.manager.ID, records[0].UserID)
	assert.Contains(t, records[0].Message, "extra towels")
}

func TestGuestServiceVIPEscalates(t *testing.T) {
	guest := guestWithTier(model.TierPlatinum)
	h := newHarness(guest)

	h.emitter.GuestServiceCreated(context.Background(), newRequest(h, guest.ID, model.PriorityMedium))

	// A VIP request bypasses the normal created event entirely.
	assert.Empty(t, h.store.byType(model.EventGuestServiceCreated))

	records := h.store.byType(model.EventGuestServiceVIP)
	require.Len(t, records, 2)
	recipients := []uuid.UUID{records[0].UserID, records[1].UserID}
	assert.ElementsMatch(t, []uuid.UUID{h.admin.ID, h.manager.ID}, recipients)
	for _, r := range records {
		assert.Equal(t, model.PriorityHigh, r.Priority)
		assert.Equal(t, "VIP Guest Request", r.Title)
	}
}

func TestGuestServiceGoldTierIsNotVIP(t *testing.T) {
	guest := guestWithTier(model.TierGold)
	h := newHarness(guest)

	h.emitter.GuestServiceCreated(context.Background(), newRequest(h, guest.ID, model.PriorityMedium))

	assert.Empty(t, h.store.byType(model.EventGuestServiceVIP))
	assert.Len(t, h.store.byType(model.EventGuestServiceCreated), 1)
}

func TestGuestServiceUrgentPriority(t *testing.T) {
	guest := guestWithTier("")
	h := newHarness(guest)

	h.emitter.GuestServiceCreated(context.Background(), newRequest(h, guest.ID, model.PriorityUrgent))

	records := h.store.byType(model.EventGuestServiceUrgent)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.Equal(t, model.PriorityUrgent, r.Priority)
	}
}

func TestGuestServiceCompletedNotifiesGuest(t *testing.T) {
	guest := guestWithTier("")
	h := newHarness(guest)

	before := newRequest(h, guest.ID, model.PriorityMedium)
	after := *before
	after.Status = model.TaskStatusCompleted

	h.emitter.GuestServiceUpdated(context.Background(), before, &after)

	records := h.store.byType(model.EventGuestServiceCompleted)
	require.Len(t, records, 1)
	assert.Equal(t, guest.ID, records[0].UserID)
}

func TestGuestServiceAssignmentVIPBoostsPriority(t *testing.T) {
	guest := guestWithTier(model.TierDiamond)
	h := newHarness(guest)

	before := newRequest(h, guest.ID, model.PriorityMedium)
	after := *before
	after.AssignedTo = &h.technician.ID

	h.emitter.GuestServiceUpdated(context.Background(), before, &after)

	records := h.store.byType(model.EventGuestServiceAssigned)
	require.Len(t, records, 1)
	assert.Equal(t, h.technician.ID, records[0].UserID)
	assert.Equal(t, model.PriorityHigh, records[0].Priority)
}
