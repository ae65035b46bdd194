package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplePayload() Payload {
	return Payload{
		{ID: "p-emp", Portal: KeyHR, Name: "employees", View: true, Add: true, Edit: true, Delete: false, Visible: true, Priority: 1,
			Sub: []RawSubPermission{
				{ID: 1, View: true, Edit: true},
				{ID: 2, View: false},
			}},
		{ID: "p-users", Portal: KeyHR, Name: "users", View: true, Visible: true, Priority: 2},
		{ID: "p-exp", Portal: KeyExpense, Name: "expenses", View: true, Add: true, Visible: true, Priority: 1},
	}
}

func TestBuildMap(t *testing.T) {
	m := BuildMap(samplePayload())

	assert.Len(t, m, 2)
	rec := Capability(m, PortalHR, "employees")
	assert.True(t, rec.View)
	assert.True(t, rec.Add)
	assert.False(t, rec.Delete)
	assert.Equal(t, 1, rec.Priority)
	assert.Len(t, rec.Sub, 2)
	assert.True(t, rec.Sub[1].Edit)
}

func TestCapability_AbsentMeansDenied(t *testing.T) {
	m := BuildMap(samplePayload())

	// Unknown screen name within a known portal.
	rec := Capability(m, PortalHR, "payroll")
	assert.Equal(t, Record{}, rec)
	assert.False(t, rec.Allows(ActionView))
	assert.False(t, rec.Allows(ActionAdd))
	assert.False(t, rec.Allows(ActionEdit))
	assert.False(t, rec.Allows(ActionDelete))

	// Portal entirely absent from the map.
	assert.Equal(t, Record{}, Capability(m, PortalInventory, "items"))

	// Nil map must behave the same, not panic.
	assert.Equal(t, Record{}, Capability(nil, PortalHR, "employees"))
}

func TestSubCapability_AbsentMeansDenied(t *testing.T) {
	m := BuildMap(samplePayload())

	assert.True(t, SubCapability(m, PortalHR, "employees", 1).View)
	assert.False(t, SubCapability(m, PortalHR, "employees", 2).View)
	assert.Equal(t, SubRecord{}, SubCapability(m, PortalHR, "employees", 99))
	assert.Equal(t, SubRecord{}, SubCapability(m, PortalHR, "users", 1))
}

func TestPortalFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want Portal
	}{
		{KeyHR, PortalHR},
		{KeyInventory, PortalInventory},
		{KeyExpense, PortalExpense},
		{"", PortalInventory},
		{"99", PortalInventory},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PortalFromKey(tt.key), "key %q", tt.key)
	}
}

func TestActivePortal(t *testing.T) {
	// Keys 1 and 3 present, no key 2: must resolve to hr, not the inventory
	// default.
	m := BuildMap(Payload{
		{Portal: KeyHR, Name: "employees", View: true},
		{Portal: KeyExpense, Name: "expenses", View: true},
	})
	assert.Equal(t, PortalHR, ActivePortal(m))

	// Expense only.
	m = BuildMap(Payload{{Portal: KeyExpense, Name: "expenses", View: true}})
	assert.Equal(t, PortalExpense, ActivePortal(m))

	// Empty map falls back to inventory.
	assert.Equal(t, PortalInventory, ActivePortal(Map{}))
	assert.Equal(t, PortalInventory, ActivePortal(nil))
}

func TestPortals_PriorityOrder(t *testing.T) {
	m := BuildMap(samplePayload())
	assert.Equal(t, []Portal{PortalHR, PortalExpense}, m.Portals())
}

func TestMenu_SortedByPriority(t *testing.T) {
	m := BuildMap(Payload{
		{Portal: KeyHR, Name: "users", View: true, Visible: true, Priority: 2},
		{Portal: KeyHR, Name: "employees", View: true, Visible: true, Priority: 1},
		{Portal: KeyHR, Name: "hidden", View: true, Visible: false, Priority: 0},
	})

	items := Menu(m, PortalHR)
	assert.Len(t, items, 2)
	assert.Equal(t, "employees", items[0].Name)
	assert.Equal(t, "users", items[1].Name)
}
