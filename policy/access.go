package policy

import (
	"fmt"

	"gogo-delivery/models"
)

// Action names a guarded client capability.
type Action string

const (
	ListUsers        Action = "list_users"
	ChangeRole       Action = "change_role"
	ManageCatalog    Action = "manage_catalog"
	ListAllOrders    Action = "list_all_orders"
	PlaceOrder       Action = "place_order"
	SendNotification Action = "send_notification"
	Broadcast        Action = "broadcast"
)

var everyone = []models.UserRole{models.RoleCustomer, models.RoleManager, models.RoleRider}

var rules = map[Action][]models.UserRole{
	ListUsers:        {models.RoleManager},
	ChangeRole:       {models.RoleManager},
	ManageCatalog:    {models.RoleManager},
	ListAllOrders:    {models.RoleManager, models.RoleRider},
	PlaceOrder:       everyone,
	SendNotification: {models.RoleManager, models.RoleRider},
	Broadcast:        {models.RoleManager},
}

// Authorize reports whether the role may perform the action. A denial wraps
// models.ErrAccessDenied.
func Authorize(role models.UserRole, action Action) error {
	for _, r := range rules[action] {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot %s", models.ErrAccessDenied, role, action)
}
