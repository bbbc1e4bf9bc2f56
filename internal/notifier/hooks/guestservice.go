package hooks

import (
	"context"

	"github.com/hotelops/hotel-api/internal/model"
)

func guestServicePayload(svc *model.GuestService) model.JSONMap {
	payload := model.JSONMap{
		"serviceId":   svc.ID.String(),
		"guestId":     svc.GuestID.String(),
		"roomNumber":  svc.RoomNumber,
		"serviceType": svc.ServiceType,
		"priority":    svc.Priority,
		"description": svc.Description,
	}
	if svc.AssignedTo != nil {
		payload["assignedTo"] = svc.AssignedTo.String()
	}
	return payload
}

// GuestServiceCreated fires when a guest request is first written. VIP
// guests escalate the event kind regardless of the request priority.
func (e *Emitter) GuestServiceCreated(ctx context.Context, svc *model.GuestService) {
	kind := model.EventGuestServiceCreated
	priority := model.PriorityMedium

	switch {
	case e.directory.IsVIP(ctx, svc.GuestID):
		kind = model.EventGuestServiceVIP
		priority = model.PriorityHigh
	case svc.Priority == model.PriorityUrgent:
		kind = model.EventGuestServiceUrgent
		priority = model.PriorityUrgent
	}

	e.emit(ctx, &model.Intent{
		Kind:       kind,
		HotelID:    svc.HotelID,
		Payload:    guestServicePayload(svc),
		Recipients: model.AutoRecipients(),
		Priority:   priority,
	})
}

// GuestServiceUpdated compares before/after state and emits an intent
// per matched transition.
func (e *Emitter) GuestServiceUpdated(ctx context.Context, before, after *model.GuestService) {
	var intents []*model.Intent
	payload := guestServicePayload(after)

	if assignedChanged(before.AssignedTo, after.AssignedTo) {
		priority := model.PriorityMedium
		if e.directory.IsVIP(ctx, after.GuestID) {
			priority = model.PriorityHigh
		}
		intents = append(intents, &model.Intent{
			Kind:       model.EventGuestServiceAssigned,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   priority,
		})
	}

	if statusChanged(before.Status, after.Status, model.TaskStatusInProgress) {
		intents = append(intents, &model.Intent{
			Kind:       model.EventGuestServiceStarted,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityLow,
		})
	}

	if statusChanged(before.Status, after.Status, model.TaskStatusCompleted) {
		intents = append(intents, &model.Intent{
			Kind:       model.EventGuestServiceCompleted,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityMedium,
		})
	}

	e.emit(ctx, intents...)
}
