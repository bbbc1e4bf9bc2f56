package notifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
)

// routingRule declares who receives an event kind when the caller asks
// for auto-resolution. A rule may name a static role set, a payload
// field holding a user ID, or both; both resolve to their union.
type routingRule struct {
	roles        []string
	payloadField string
}

var catchAllRule = routingRule{roles: []string{model.RoleAdmin, model.RoleManager}}

var routingTable = map[model.EventKind]routingRule{
	model.EventDailyCheckAssigned:  {payloadField: "assignedTo"},
	model.EventDailyCheckOverdue:   {roles: []string{model.RoleAdmin, model.RoleManager}, payloadField: "assignedTo"},
	model.EventDailyCheckCompleted: {roles: []string{model.RoleManager}},
	model.EventDailyCheckIssues:    {roles: []string{model.RoleAdmin, model.RoleManager}},

	model.EventMaintenanceRequestCreated: {roles: []string{model.RoleAdmin, model.RoleManager, model.RoleMaintenance}},
	model.EventMaintenanceUrgent:         {roles: []string{model.RoleAdmin, model.RoleManager, model.RoleMaintenance}},
	model.EventMaintenanceAssigned:       {payloadField: "assignedTo"},
	model.EventMaintenanceStarted:        {roles: []string{model.RoleManager}},
	model.EventMaintenanceCompleted:      {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventMaintenanceOverdue:        {roles: []string{model.RoleAdmin, model.RoleManager, model.RoleMaintenance}},
	model.EventMaintenanceHighCost:       {roles: []string{model.RoleAdmin, model.RoleManager}},

	model.EventRoomNeedsCleaning: {roles: []string{model.RoleStaff, model.RoleHousekeeping}},
	model.EventRoomOutOfOrder:    {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventRoomBackInService: {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventRoomCheckoutDirty: {roles: []string{model.RoleStaff, model.RoleHousekeeping}},

	model.EventCleaningStarted:      {roles: []string{model.RoleManager}},
	model.EventCleaningCompleted:    {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventCleaningQualityIssue: {roles: []string{model.RoleAdmin, model.RoleManager}, payloadField: "assignedTo"},
	model.EventHousekeepingAssigned: {payloadField: "assignedTo"},
	model.EventDeepCleaningDue:      {roles: []string{model.RoleStaff, model.RoleHousekeeping}},

	model.EventGuestServiceCreated:   {roles: []string{model.RoleStaff, model.RoleManager}},
	model.EventGuestServiceUrgent:    {roles: []string{model.RoleAdmin, model.RoleManager, model.RoleStaff}},
	model.EventGuestServiceAssigned:  {payloadField: "assignedTo"},
	model.EventGuestServiceStarted:   {payloadField: "guestId"},
	model.EventGuestServiceCompleted: {payloadField: "guestId"},
	model.EventGuestServiceOverdue:   {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventGuestServiceVIP:       {roles: []string{model.RoleAdmin, model.RoleManager}},

	model.EventInventoryLowStock:      {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventInventoryOutOfStock:    {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventInventoryDamaged:       {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventInventoryMissing:       {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventInventoryHighValueUsed: {roles: []string{model.RoleAdmin, model.RoleManager}},

	model.EventDailyOperationsSummary: {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventStaffPerformanceAlert:  {roles: []string{model.RoleAdmin, model.RoleManager, model.RoleHR}},
	model.EventRevenueImpactAlert:     {roles: []string{model.RoleAdmin, model.RoleManager}},
	model.EventTaskAssignment:         {payloadField: "assignedTo"},
	model.EventTaskOverdue:            {roles: []string{model.RoleAdmin, model.RoleManager}, payloadField: "assignedTo"},
}

// Resolver turns an intent's recipient declaration into a concrete,
// de-duplicated list of user IDs.
type Resolver struct {
	directory *Directory
}

// NewResolver creates a resolver over the identity directory.
func NewResolver(directory *Directory) *Resolver {
	return &Resolver{directory: directory}
}

// Resolve applies the recipient policy. A purely explicit list is
// returned de-duplicated without consulting the directory. Auto
// resolution consults the routing table; an explicit list combined with
// auto yields the union of both.
func (r *Resolver) Resolve(ctx context.Context, intent *model.Intent) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var result []uuid.UUID

	add := func(id uuid.UUID) {
		if id == uuid.Nil {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	for _, id := range intent.Recipients.IDs {
		add(id)
	}

	if !intent.Recipients.Auto && len(intent.Recipients.IDs) > 0 {
		return result, nil
	}

	rule, ok := routingTable[intent.Kind]
	if !ok {
		rule = catchAllRule
	}

	if len(rule.roles) > 0 {
		ids, err := r.directory.FindByRoles(ctx, intent.HotelID, rule.roles)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve recipients for %s: %w", intent.Kind, err)
		}
		for _, id := range ids {
			add(id)
		}
	}

	if rule.payloadField != "" {
		if id := userIDFromPayload(intent.Payload, rule.payloadField); id != uuid.Nil {
			add(id)
		}
	}

	return result, nil
}

func userIDFromPayload(payload model.JSONMap, field string) uuid.UUID {
	value, ok := payload[field]
	if !ok || value == nil {
		return uuid.Nil
	}
	switch v := value.(type) {
	case uuid.UUID:
		return v
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil
		}
		return id
	default:
		return uuid.Nil
	}
}
