package model

import "github.com/google/uuid"

// EventKind names an operational event the notification pipeline knows
// how to render and route.
type EventKind string

// Daily check events
const (
	EventDailyCheckAssigned  EventKind = "daily_check_assigned"
	EventDailyCheckOverdue   EventKind = "daily_check_overdue"
	EventDailyCheckCompleted EventKind = "daily_check_completed"
	EventDailyCheckIssues    EventKind = "daily_check_issues"
)

// Maintenance events
const (
	EventMaintenanceRequestCreated EventKind = "maintenance_request_created"
	EventMaintenanceUrgent         EventKind = "maintenance_urgent"
	EventMaintenanceAssigned       EventKind = "maintenance_assigned"
	EventMaintenanceStarted        EventKind = "maintenance_started"
	EventMaintenanceCompleted      EventKind = "maintenance_completed"
	EventMaintenanceOverdue        EventKind = "maintenance_overdue"
	EventMaintenanceHighCost       EventKind = "maintenance_high_cost"
)

// Room events
const (
	EventRoomNeedsCleaning EventKind = "room_needs_cleaning"
	EventRoomOutOfOrder    EventKind = "room_out_of_order"
	EventRoomBackInService EventKind = "room_back_in_service"
	EventRoomCheckoutDirty EventKind = "room_checkout_dirty"
)

// Housekeeping events
const (
	EventCleaningStarted      EventKind = "cleaning_started"
	EventCleaningCompleted    EventKind = "cleaning_completed"
	EventCleaningQualityIssue EventKind = "cleaning_quality_issue"
	EventHousekeepingAssigned EventKind = "housekeeping_assigned"
	EventDeepCleaningDue      EventKind = "deep_cleaning_due"
)

// Guest service events
const (
	EventGuestServiceCreated   EventKind = "guest_service_created"
	EventGuestServiceUrgent    EventKind = "guest_service_urgent"
	EventGuestServiceAssigned  EventKind = "guest_service_assigned"
	EventGuestServiceStarted   EventKind = "guest_service_started"
	EventGuestServiceCompleted EventKind = "guest_service_completed"
	EventGuestServiceOverdue   EventKind = "guest_service_overdue"
	EventGuestServiceVIP       EventKind = "guest_service_vip"
)

// Inventory events
const (
	EventInventoryLowStock      EventKind = "inventory_low_stock"
	EventInventoryOutOfStock    EventKind = "inventory_out_of_stock"
	EventInventoryDamaged       EventKind = "inventory_damaged"
	EventInventoryMissing       EventKind = "inventory_missing"
	EventInventoryHighValueUsed EventKind = "inventory_high_value_used"
)

// Operational summary events
const (
	EventDailyOperationsSummary EventKind = "daily_operations_summary"
	EventStaffPerformanceAlert  EventKind = "staff_performance_alert"
	EventRevenueImpactAlert     EventKind = "revenue_impact_alert"
	EventTaskAssignment         EventKind = "task_assignment"
	EventTaskOverdue            EventKind = "task_overdue"
)

// Recipients is a sum type: either an explicit list of user IDs, the
// auto sentinel (resolve from kind and payload), or a union of both.
type Recipients struct {
	IDs  []uuid.UUID
	Auto bool
}

// AutoRecipients resolves recipients from the routing table.
func AutoRecipients() Recipients {
	return Recipients{Auto: true}
}

// ExplicitRecipients targets the given users without consulting routing.
func ExplicitRecipients(ids ...uuid.UUID) Recipients {
	return Recipients{IDs: ids}
}

// MixedRecipients unions an explicit list with auto-resolution.
func MixedRecipients(ids ...uuid.UUID) Recipients {
	return Recipients{IDs: ids, Auto: true}
}

// Intent is the transient value an adapter hands to the dispatcher:
// something happened, before recipients or content are determined.
type Intent struct {
	Kind       EventKind
	HotelID    uuid.UUID
	Payload    JSONMap
	Recipients Recipients
	Priority   string
}
