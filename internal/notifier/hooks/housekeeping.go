package hooks

import (
	"context"

	"github.com/hotelops/hotel-api/internal/model"
)

func housekeepingPayload(task *model.HousekeepingTask) model.JSONMap {
	payload := model.JSONMap{
		"taskId":     task.ID.String(),
		"roomNumber": task.RoomNumber,
		"taskType":   task.TaskType,
		"priority":   task.Priority,
	}
	if task.AssignedTo != nil {
		payload["assignedTo"] = task.AssignedTo.String()
	}
	return payload
}

// HousekeepingCreated fires when a housekeeping task is first written.
func (e *Emitter) HousekeepingCreated(ctx context.Context, task *model.HousekeepingTask) {
	kind := model.EventRoomNeedsCleaning
	if task.TaskType == model.HousekeepingTypeDeepClean {
		kind = model.EventDeepCleaningDue
	}

	priority := model.PriorityMedium
	if task.Priority == model.PriorityUrgent {
		priority = model.PriorityUrgent
	}

	e.emit(ctx, &model.Intent{
		Kind:       kind,
		HotelID:    task.HotelID,
		Payload:    housekeepingPayload(task),
		Recipients: model.AutoRecipients(),
		Priority:   priority,
	})
}

// HousekeepingUpdated compares the before and after state of a task and
// emits an intent per matched transition.
func (e *Emitter) HousekeepingUpdated(ctx context.Context, before, after *model.HousekeepingTask) {
	var intents []*model.Intent
	payload := housekeepingPayload(after)

	if assignedChanged(before.AssignedTo, after.AssignedTo) {
		priority := after.Priority
		if !model.ValidPriority(priority) {
			priority = model.PriorityMedium
		}
		intents = append(intents, &model.Intent{
			Kind:       model.EventHousekeepingAssigned,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   priority,
		})
	}

	if statusChanged(before.Status, after.Status, model.TaskStatusInProgress) {
		intents = append(intents, &model.Intent{
			Kind:       model.EventCleaningStarted,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityLow,
		})
	}

	if statusChanged(before.Status, after.Status, model.TaskStatusCompleted) {
		intents = append(intents, &model.Intent{
			Kind:       model.EventCleaningCompleted,
			HotelID:    after.HotelID,
			Payload:    payload,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityMedium,
		})
	}

	if after.QualityScore != nil && *after.QualityScore < 3 &&
		(before.QualityScore == nil || *before.QualityScore != *after.QualityScore) {
		scored := model.JSONMap{}
		for k, v := range payload {
			scored[k] = v
		}
		scored["qualityScore"] = *after.QualityScore
		intents = append(intents, &model.Intent{
			Kind:       model.EventCleaningQualityIssue,
			HotelID:    after.HotelID,
			Payload:    scored,
			Recipients: model.AutoRecipients(),
			Priority:   model.PriorityHigh,
		})
	}

	beforeValue := before.InventoryConsumed.TotalValue()
	afterValue := after.InventoryConsumed.TotalValue()
	if afterValue > beforeValue {
		threshold := e.settings(ctx, after.HotelID).HighValueThreshold
		if afterValue > threshold {
			costed := model.JSONMap{}
			for k, v := range payload {
				costed[k] = v
			}
			costed["cost"] = afterValue
			intents = append(intents, &model.Intent{
				Kind:       model.EventInventoryHighValueUsed,
				HotelID:    after.HotelID,
				Payload:    costed,
				Recipients: model.AutoRecipients(),
				Priority:   model.PriorityMedium,
			})
		}
	}

	e.emit(ctx, intents...)
}
