package api_test

import (
	"fmt"
	"testing"
	"time"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// uniqueRoomNumber stays under the typical column width.
func uniqueRoomNumber() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%100000)
}

func createTestRoom(t *testing.T) (string, string) {
	t.Helper()

	number := uniqueRoomNumber()
	resp := makeRequest("POST", "/rooms", map[string]interface{}{
		"number":   number,
		"type":     "double",
		"floor":    2,
		"rate":     120.0,
		"capacity": 2,
	}, authToken)
	if !resp.IsSuccess() {
		t.Fatalf("failed to create test room: %s", resp.Message)
	}
	return resp.GetString("id"), number
}

func createTestStaff(t *testing.T, role string) string {
	t.Helper()

	resp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"hotel_id": hotelID,
		"email":    fmt.Sprintf("staff_%d@example.com", time.Now().UnixNano()),
		"name":     uniqueName("Staff"),
		"password": "password123",
		"role":     role,
	}, "")
	if !resp.IsSuccess() {
		t.Fatalf("failed to register staff user: %s", resp.Message)
	}
	return resp.GetString("id")
}
