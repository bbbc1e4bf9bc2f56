package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hotelops/hotel-api/internal/model"
)

func TestRenderSubstitutesPayloadValues(t *testing.T) {
	content := Render(model.EventMaintenanceUrgent, model.JSONMap{
		"type":        "plumbing",
		"roomNumber":  "204",
		"description": "burst pipe",
	})

	assert.Equal(t, "URGENT Maintenance", content.Title)
	assert.Equal(t, "Emergency plumbing maintenance needed in room 204: burst pipe", content.Message)
	assert.Equal(t, "siren", content.Icon)
}

func TestRenderMissingKeysBecomeEmpty(t *testing.T) {
	content := Render(model.EventRoomNeedsCleaning, model.JSONMap{})

	assert.Equal(t, "Room  needs cleaning", content.Message)
}

func TestRenderNumericValues(t *testing.T) {
	content := Render(model.EventMaintenanceHighCost, model.JSONMap{
		"roomNumber": "310",
		"cost":       750.5,
	})

	assert.Equal(t, "Maintenance for room 310 cost $750.5", content.Message)

	content = Render(model.EventInventoryLowStock, model.JSONMap{
		"itemName": "Towels",
		"quantity": 3,
	})
	assert.Equal(t, "Towels is running low (3 remaining)", content.Message)
}

func TestRenderUnknownKindFallsBack(t *testing.T) {
	content := Render(model.EventKind("something_new"), model.JSONMap{"detail": "x"})

	assert.Equal(t, "Notification: something_new", content.Title)
	assert.Contains(t, content.Message, "detail")
	assert.Equal(t, "bell", content.Icon)
}

func TestRenderUnknownKindEmptyPayload(t *testing.T) {
	content := Render(model.EventKind("something_new"), nil)

	assert.Equal(t, "(no details)", content.Message)
}

func TestRenderNilPayloadValue(t *testing.T) {
	content := Render(model.EventRoomNeedsCleaning, model.JSONMap{"roomNumber": nil})

	assert.Equal(t, "Room  needs cleaning", content.Message)
}

func TestRenderEveryKindHasTemplate(t *testing.T) {
	// Every routed kind should also render without the generic fallback.
	for kind := range routingTable {
		tmpl, ok := contentTemplates[kind]
		assert.True(t, ok, "missing template for %s", kind)
		assert.NotEmpty(t, tmpl.title, "empty title for %s", kind)
	}
}
