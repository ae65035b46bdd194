package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
)

func authenticatedState(portal permission.Portal, m permission.Map) State {
	return State{
		Authenticated: true,
		ActivePortal:  portal,
		Permissions:   m,
	}
}

func TestSelectRoutesUnauthenticatedAlwaysGuest(t *testing.T) {
	for _, portal := range []permission.Portal{
		permission.PortalHR,
		permission.PortalInventory,
		permission.PortalExpense,
		permission.Portal("bogus"),
		permission.Portal(""),
	} {
		tree := SelectRoutes(State{Authenticated: false, ActivePortal: portal})
		assert.True(t, tree.Guest, "portal %q", portal)
	}
}

func TestSelectRoutesByPortal(t *testing.T) {
	tests := []struct {
		portal permission.Portal
		want   permission.Portal
		guest  bool
	}{
		{permission.PortalHR, permission.PortalHR, false},
		{permission.PortalInventory, permission.PortalInventory, false},
		{permission.PortalExpense, permission.PortalExpense, false},
		{permission.Portal("bogus"), "", true},
	}
	for _, tt := range tests {
		tree := SelectRoutes(authenticatedState(tt.portal, nil))
		assert.Equal(t, tt.guest, tree.Guest, "portal %q", tt.portal)
		if !tt.guest {
			assert.Equal(t, tt.want, tree.Portal)
		}
	}
}

func TestGuardDeniesWithoutView(t *testing.T) {
	// Add without view: the screen must still be unreachable.
	m := permission.Map{
		permission.PortalHR: {
			"employees": permission.Record{View: false, Add: true, Visible: true},
		},
	}
	s := authenticatedState(permission.PortalHR, m)

	assert.False(t, Guard(s, "employees"))
}

func TestGuardAllowsViewableScreens(t *testing.T) {
	m := permission.Map{
		permission.PortalHR: {
			"employees": permission.Record{View: true, Visible: true},
		},
	}
	s := authenticatedState(permission.PortalHR, m)

	assert.True(t, Guard(s, "employees"))
	assert.True(t, Guard(s, "employee-onboarding"))

	// Screens with no permission record deny.
	assert.False(t, Guard(s, "hr-reports"))
	// Routes outside the active tree deny.
	assert.False(t, Guard(s, "items"))
	assert.False(t, Guard(s, "no-such-route"))
}

func TestGuardGuestRoutes(t *testing.T) {
	signedOut := State{}
	assert.True(t, Guard(signedOut, "login"))
	assert.False(t, Guard(signedOut, "employees"))

	// Guest routes are not part of portal trees.
	m := permission.Map{
		permission.PortalHR: {"employees": permission.Record{View: true}},
	}
	assert.False(t, Guard(authenticatedState(permission.PortalHR, m), "login"))
}
