package session

import (
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
)

// Route is one navigable destination. Screen names the permission record
// that gates it; guest routes have no screen and are always reachable.
type Route struct {
	Name   string
	Path   string
	Screen string
}

// RouteTree is the set of routes for one audience: guests or one portal.
type RouteTree struct {
	Portal permission.Portal
	Guest  bool
	Routes []Route
}

var guestRoutes = RouteTree{
	Guest: true,
	Routes: []Route{
		{Name: "login", Path: "/login"},
		{Name: "oauth-callback", Path: "/auth/callback/google"},
	},
}

var hrRoutes = RouteTree{
	Portal: permission.PortalHR,
	Routes: []Route{
		{Name: "hr-dashboard", Path: "/hr", Screen: "employees"},
		{Name: "employees", Path: "/hr/employees", Screen: "employees"},
		{Name: "employee-onboarding", Path: "/hr/employees/onboarding", Screen: "employees"},
		{Name: "hr-reports", Path: "/hr/reports", Screen: "reports"},
	},
}

var inventoryRoutes = RouteTree{
	Portal: permission.PortalInventory,
	Routes: []Route{
		{Name: "inventory-dashboard", Path: "/inventory", Screen: "items"},
		{Name: "items", Path: "/inventory/items", Screen: "items"},
		{Name: "inventory-reports", Path: "/inventory/reports", Screen: "reports"},
	},
}

var expenseRoutes = RouteTree{
	Portal: permission.PortalExpense,
	Routes: []Route{
		{Name: "expense-dashboard", Path: "/expense", Screen: "expenses"},
		{Name: "expenses", Path: "/expense/expenses", Screen: "expenses"},
		{Name: "expense-reports", Path: "/expense/reports", Screen: "reports"},
	},
}

// SelectRoutes maps a session state to its route tree. Unauthenticated
// states get the guest tree no matter what the portal field says, and so
// does any portal value outside the three known portals.
func SelectRoutes(s State) RouteTree {
	if !s.Authenticated {
		return guestRoutes
	}
	switch s.ActivePortal {
	case permission.PortalHR:
		return hrRoutes
	case permission.PortalInventory:
		return inventoryRoutes
	case permission.PortalExpense:
		return expenseRoutes
	}
	return guestRoutes
}

// Guard decides whether the named route may be entered under the given
// state. Unknown routes are denied. A route whose screen lacks the view
// flag is denied even when other action flags are set: view gates entry.
func Guard(s State, routeName string) bool {
	tree := SelectRoutes(s)
	for _, route := range tree.Routes {
		if route.Name != routeName {
			continue
		}
		if tree.Guest {
			return true
		}
		return permission.Capability(s.Permissions, tree.Portal, route.Screen).View
	}
	return false
}
