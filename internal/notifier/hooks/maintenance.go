package hooks

import (
	"context"

	"github.com/hotelops/hotel-api/internal/model"
)

func maintenancePayload(task *model.MaintenanceTask) model.JSONMap {
	payload := model.JSONMap{
		"taskId":      task.ID.String(),
		"roomNumber":  task.RoomNumber,
		"type":        task.Type,
		"priority":    task.Priority,
		"description": task.Description,
	}
	if task.AssignedTo != nil {
		payload["assignedTo"] = task.AssignedTo.String()
	}
	return payload
}

func maintenancePriority(task *model.MaintenanceTask) string {
	if task.Priority == model.MaintenancePriorityEmergency {
		return model.PriorityUrgent
	}
	return model.PriorityMedium
}

// MaintenanceCreated fires when a maintenance task is first written.
func (e *Emitter) MaintenanceCreated(ctx context.Context, task *model.MaintenanceTask) {
	kind := model.EventMaintenanceRequestCreated
	if task.Priority == model.MaintenancePriorityEmergency {
		kind = model.EventMaintenanceUrgent
	}

	e.emit(ctx, &model.Intent{
		Kind:       kind,
		HotelID:    task.HotelID,
		Payload:    maintenancePayload(task),
		Recipients: model.AutoRecipients(),
		Priority:   maintenancePriority(task),
	})
}

// MaintenanceUpdated compares before/after state and emits an intent per
// matched transition.
func (e *Emitter) MaintenanceUpdated(ctx context.Context, before, after *model.MaintenanceTask) {
	var intents []*model.Intent
	payload := maintenancePayload(after)

	if assignedChanged(before.AssignedTo, after.AssignedTo) {
		intents = append(intents, &model.Intent{
			Kind:       model.EventMaintenanceAssigned,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   maintenancePriority(after),
		})
	}

	if statusChanged(before.Status, after.Status, model.TaskStatusInProgress) {
		intents = append(intents, &model.Intent{
			Kind:       model.EventMaintenanceStarted,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityLow,
		})
	}

	if statusChanged(before.Status, after.Status, model.TaskStatusCompleted) {
		intents = append(intents, &model.Intent{
			Kind:       model.EventMaintenanceCompleted,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityMedium,
		})
	}

	if after.ActualCost != nil && (before.ActualCost == nil || *before.ActualCost != *after.ActualCost) {
		threshold := e.settings(ctx, after.HotelID).HighCostThreshold
		if *after.ActualCost >= threshold {
			costed := model.JSONMap{}
			for k, v := range payload {
				costed[k] = v
			}
			costed["cost"] = *after.ActualCost
			intents = append(intents, &model.Intent{
				Kind:       model.EventMaintenanceHighCost,
				HotelID:    after.HotelID,
				Payload:    costed,
				Recipients: model.AutoRecipients(),
				Priority:   model.PriorityHigh,
			})
		}
	}

	if after.Priority == model.MaintenancePriorityEmergency && before.Priority != model.MaintenancePriorityEmergency {
		intents = append(intents, &model.Intent{
			Kind:       model.EventMaintenanceUrgent,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityUrgent,
		})
	}

	e.emit(ctx, intents...)
}
