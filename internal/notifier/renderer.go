package notifier

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/hotelops/hotel-api/internal/model"
)

// Content is the rendered human-readable projection of an event.
type Content struct {
	Title   string
	Message string
	Icon    string
}

type contentTemplate struct {
	title   string
	message string
	icon    string
}

// Templates reference payload keys as {key}; missing keys render as the
// empty substring. The table is the source of truth for which payload
// fields each kind reads.
var contentTemplates = map[model.EventKind]contentTemplate{
	model.EventDailyCheckAssigned: {
		title:   "Daily Check Assigned",
		message: "You have been assigned the daily check for room {roomNumber}",
		icon:    "clipboard",
	},
	model.EventDailyCheckOverdue: {
		title:   "Daily Check Overdue",
		message: "The daily check for room {roomNumber} is overdue",
		icon:    "alert-circle",
	},
	model.EventDailyCheckCompleted: {
		title:   "Daily Check Completed",
		message: "Daily check for room {roomNumber} completed",
		icon:    "check-circle",
	},
	model.EventDailyCheckIssues: {
		title:   "Daily Check Issues",
		message: "Issues found during daily check of room {roomNumber}: {description}",
		icon:    "alert-triangle",
	},
	model.EventMaintenanceRequestCreated: {
		title:   "Maintenance Request",
		message: "New {type} maintenance request for room {roomNumber}: {description}",
		icon:    "wrench",
	},
	model.EventMaintenanceUrgent: {
		title:   "URGENT Maintenance",
		message: "Emergency {type} maintenance needed in room {roomNumber}: {description}",
		icon:    "siren",
	},
	model.EventMaintenanceAssigned: {
		title:   "Maintenance Assigned",
		message: "You have been assigned {type} maintenance for room {roomNumber}",
		icon:    "wrench",
	},
	model.EventMaintenanceStarted: {
		title:   "Maintenance Started",
		message: "Maintenance work started in room {roomNumber}",
		icon:    "play-circle",
	},
	model.EventMaintenanceCompleted: {
		title:   "Maintenance Completed",
		message: "Maintenance in room {roomNumber} has been completed",
		icon:    "check-circle",
	},
	model.EventMaintenanceOverdue: {
		title:   "Maintenance Overdue",
		message: "Maintenance task for room {roomNumber} is overdue",
		icon:    "alert-circle",
	},
	model.EventMaintenanceHighCost: {
		title:   "High Maintenance Cost",
		message: "Maintenance for room {roomNumber} cost ${cost}",
		icon:    "dollar-sign",
	},
	model.EventRoomNeedsCleaning: {
		title:   "Room Needs Cleaning",
		message: "Room {roomNumber} needs cleaning",
		icon:    "spray-can",
	},
	model.EventRoomOutOfOrder: {
		title:   "Room Out of Order",
		message: "Room {roomNumber} has been taken out of order",
		icon:    "x-circle",
	},
	model.EventRoomBackInService: {
		title:   "Room Back in Service",
		message: "Room {roomNumber} is back in service",
		icon:    "check-circle",
	},
	model.EventRoomCheckoutDirty: {
		title:   "Checkout Cleaning Needed",
		message: "Room {roomNumber} checked out and needs cleaning",
		icon:    "log-out",
	},
	model.EventCleaningStarted: {
		title:   "Cleaning Started",
		message: "Cleaning of room {roomNumber} has started",
		icon:    "play-circle",
	},
	model.EventCleaningCompleted: {
		title:   "Cleaning Completed",
		message: "Room {roomNumber} has been cleaned",
		icon:    "check-circle",
	},
	model.EventCleaningQualityIssue: {
		title:   "Cleaning Quality Issue",
		message: "Quality issue reported for room {roomNumber} (score {qualityScore})",
		icon:    "thumbs-down",
	},
	model.EventHousekeepingAssigned: {
		title:   "Housekeeping Assigned",
		message: "You have been assigned to clean room {roomNumber}",
		icon:    "user-check",
	},
	model.EventDeepCleaningDue: {
		title:   "Deep Cleaning Due",
		message: "Room {roomNumber} is due for deep cleaning",
		icon:    "spray-can",
	},
	model.EventGuestServiceCreated: {
		title:   "Guest Service Request",
		message: "New {serviceType} request from room {roomNumber}: {description}",
		icon:    "bell",
	},
	model.EventGuestServiceUrgent: {
		title:   "Urgent Guest Request",
		message: "Urgent {serviceType} request from room {roomNumber}: {description}",
		icon:    "bell-ring",
	},
	model.EventGuestServiceAssigned: {
		title:   "Service Request Assigned",
		message: "You have been assigned the {serviceType} request for room {roomNumber}",
		icon:    "user-check",
	},
	model.EventGuestServiceStarted: {
		title:   "Service Request In Progress",
		message: "Your {serviceType} request is being handled",
		icon:    "play-circle",
	},
	model.EventGuestServiceCompleted: {
		title:   "Service Request Completed",
		message: "Your {serviceType} request for room {roomNumber} has been completed",
		icon:    "check-circle",
	},
	model.EventGuestServiceOverdue: {
		title:   "Service Request Overdue",
		message: "The {serviceType} request for room {roomNumber} is overdue",
		icon:    "alert-circle",
	},
	model.EventGuestServiceVIP: {
		title:   "VIP Guest Request",
		message: "VIP guest in room {roomNumber} requested {serviceType}: {description}",
		icon:    "star",
	},
	model.EventInventoryLowStock: {
		title:   "Low Stock",
		message: "{itemName} is running low ({quantity} remaining)",
		icon:    "package",
	},
	model.EventInventoryOutOfStock: {
		title:   "Out of Stock",
		message: "{itemName} is out of stock",
		icon:    "package-x",
	},
	model.EventInventoryDamaged: {
		title:   "Inventory Damaged",
		message: "{quantity} units of {itemName} reported damaged",
		icon:    "package-x",
	},
	model.EventInventoryMissing: {
		title:   "Inventory Missing",
		message: "{quantity} units of {itemName} reported missing",
		icon:    "search",
	},
	model.EventInventoryHighValueUsed: {
		title:   "High-Value Inventory Used",
		message: "Room {roomNumber} cleaning consumed ${cost} of supplies",
		icon:    "dollar-sign",
	},
	model.EventDailyOperationsSummary: {
		title:   "Daily Operations Summary",
		message: "{summary}",
		icon:    "bar-chart",
	},
	model.EventStaffPerformanceAlert: {
		title:   "Staff Performance Alert",
		message: "{description}",
		icon:    "trending-down",
	},
	model.EventRevenueImpactAlert: {
		title:   "Revenue Impact Alert",
		message: "{description}",
		icon:    "trending-down",
	},
	model.EventTaskAssignment: {
		title:   "Task Assigned",
		message: "You have been assigned a new task: {description}",
		icon:    "clipboard",
	},
	model.EventTaskOverdue: {
		title:   "Task Overdue",
		message: "A task is overdue: {description}",
		icon:    "alert-circle",
	},
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// Render maps an event kind and payload to displayable content. It is
// pure and never fails: unknown kinds fall back to a generic envelope
// that carries the kind and the stringified payload so nothing is
// silently lost.
func Render(kind model.EventKind, payload model.JSONMap) Content {
	tmpl, ok := contentTemplates[kind]
	if !ok {
		return Content{
			Title:   fmt.Sprintf("Notification: %s", kind),
			Message: stringifyPayload(payload),
			Icon:    "bell",
		}
	}

	return Content{
		Title:   substitute(tmpl.title, payload),
		Message: substitute(tmpl.message, payload),
		Icon:    tmpl.icon,
	}
}

func substitute(tmpl string, payload model.JSONMap) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := match[1 : len(match)-1]
		value, ok := payload[key]
		if !ok || value == nil {
			return ""
		}
		return stringifyValue(value)
	})
}

func stringifyValue(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

func stringifyPayload(payload model.JSONMap) string {
	if len(payload) == 0 {
		return "(no details)"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}
