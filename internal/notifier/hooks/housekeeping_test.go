package hooks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/hotel-api/internal/model"
)

func newTask(h *harness, taskType, priority string) *model.HousekeepingTask {
	task := &model.HousekeepingTask{
		HotelID:    h.hotel.ID,
		RoomNumber: "204",
		TaskType:   taskType,
		Priority:   priority,
		Status:     model.TaskStatusPending,
	}
	task.ID = uuid.New()
	return task
}

func TestHousekeepingCreatedNotifiesCleaningStaff(t *testing.T) {
	h := newHarness()

	h.emitter.HousekeepingCreated(context.Background(), newTask(h, model.HousekeepingTypeCleaning, model.PriorityMedium))

	records := h.store.byType(model.EventRoomNeedsCleaning)
	require.Len(t, records, 1)
	assert.Equal(t, h.housekeeper.ID, records[0].UserID)
	assert.Contains(t, records[0].Message, "204")
}

func TestHousekeepingCreatedDeepClean(t *testing.T) {
	h := newHarness()

	h.emitter.HousekeepingCreated(context.Background(), newTask(h, model.HousekeepingTypeDeepClean, model.PriorityMedium))

	records := h.store.byType(model.EventDeepCleaningDue)
	require.Len(t, records, 1)
	assert.Empty(t, h.store.byType(model.EventRoomNeedsCleaning))
}

func TestHousekeepingAssignmentNotifiesAssignee(t *testing.T) {
	h := newHarness()

	before := newTask(h, model.HousekeepingTypeCleaning, model.PriorityHigh)
	after := *before
	after.AssignedTo = &h.housekeeper.ID

	h.emitter.HousekeepingUpdated(context.Background(), before, &after)

	records := h.store.byType(model.EventHousekeepingAssigned)
	require.Len(t, records, 1)
	assert.Equal(t, h.housekeeper.ID, records[0].UserID)
	// Assignment mirrors the task's own priority.
	assert.Equal(t, model.PriorityHigh, records[0].Priority)
}

func TestHousekeepingReassignmentFiresAgain(t *testing.T) {
	h := newHarness()

	before := newTask(h, model.HousekeepingTypeCleaning, model.PriorityMedium)
	before.AssignedTo = &h.housekeeper.ID
	after := *before
	after.AssignedTo = &h.admin.ID

	h.emitter.HousekeepingUpdated(context.Background(), before, &after)

	records := h.store.byType(model.EventHousekeepingAssigned)
	require.Len(t, records, 1)
	assert.Equal(t, h.admin.ID, records[0].UserID)
}

func TestHousekeepingUnchangedAssignmentIsSilent(t *testing.T) {
	h := newHarness()

	before := newTask(h, model.HousekeepingTypeCleaning, model.PriorityMedium)
	before.AssignedTo = &h.housekeeper.ID
	after := *before

	h.emitter.HousekeepingUpdated(context.Background(), before, &after)

	assert.Empty(t, h.store.byType(model.EventHousekeepingAssigned))
}

func TestHousekeepingStatusTransitions(t *testing.T) {
	h := newHarness()

	before := newTask(h, model.HousekeepingTypeCleaning, model.PriorityMedium)
	started := *before
	started.Status = model.TaskStatusInProgress
	h.emitter.HousekeepingUpdated(context.Background(), before, &started)

	completed := started
	completed.Status = model.TaskStatusCompleted
	h.emitter.HousekeepingUpdated(context.Background(), &started, &completed)

	assert.Len(t, h.store.byType(model.EventCleaningStarted), 1)
	// Completion goes to admins and managers.
	assert.Len(t, h.store.byType(model.EventCleaningCompleted), 2)
}

func TestHousekeepingLowQualityScoreEscalates(t *testing.T) {
	h := newHarness()

	before := newTask(h, model.HousekeepingTypeCleaning, model.PriorityMedium)
	after := *before
	score := 2
	after.QualityScore = &score

	h.emitter.HousekeepingUpdated(context.Background(), before, &after)

	records := h.store.byType(model.EventCleaningQualityIssue)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, model.PriorityHigh, r.Priority)
		assert.Contains(t, r.Message, "score 2")
	}
}

func TestHousekeepingGoodQualityScoreIsSilent(t *testing.T) {
	h := newHarness()

	before := newTask(h, model.HousekeepingTypeCleaning, model.PriorityMedium)
	after := *before
	score := 4
	after.QualityScore = &score

	h.emitter.HousekeepingUpdated(context.Background(), before, &after)

	assert.Empty(t, h.store.byType(model.EventCleaningQualityIssue))
}

func TestHousekeepingHighValueConsumption(t *testing.T) {
	h := newHarness()

	before := newTask(h, model.HousekeepingTypeCleaning, model.PriorityMedium)
	after := *before
	after.InventoryConsumed = model.ConsumedItems{
		"Premium amenity kit": {Quantity: 3, UnitCost: 25},
	}

	h.emitter.HousekeepingUpdated(context.Background(), before, &after)

	records := h.store.byType(model.EventInventoryHighValueUsed)
	require.Len(t, records, 2)
	assert.Contains(t, records[0].Message, "$75")
}

func TestHousekeepingConsumptionBelowThresholdIsSilent(t *testing.T) {
	h := newHarness()

	before := newTask(h, model.HousekeepingTypeCleaning, model.PriorityMedium)
	after := *before
	after.InventoryConsumed = model.ConsumedItems{
		"Soap": {Quantity: 2, UnitCost: 1.5},
	}

	h.emitter.HousekeepingUpdated(context.Background(), before, &after)

	assert.Empty(t, h.store.byType(model.EventInventoryHighValueUsed))
}

func TestHousekeepingTenantThresholdOverride(t *testing.T) {
	h := newHarness()
	h.hotel.Settings.HighValueThreshold = 200

	before := newTask(h, model.HousekeepingTypeCleaning, model.PriorityMedium)
	after := *before
	after.InventoryConsumed = model.ConsumedItems{
		"Premium amenity kit": {Quantity: 3, UnitCost: 25},
	}

	h.emitter.HousekeepingUpdated(context.Background(), before, &after)

	assert.Empty(t, h.store.byType(model.EventInventoryHighValueUsed))
}
