package permission

// Portal identifies one of the three application contexts a user can be
// authorized into. Each portal carries its own permission sub-map and its own
// route tree.
type Portal string

const (
	PortalHR        Portal = "hr"
	PortalInventory Portal = "inventory"
	PortalExpense   Portal = "expense"
)

// Backend portal keys as they appear in the raw permission payload.
const (
	KeyHR        = "1"
	KeyInventory = "2"
	KeyExpense   = "3"
)

// PortalFromKey maps a backend portal key to a Portal. Unknown keys resolve to
// the inventory portal.
func PortalFromKey(key string) Portal {
	switch key {
	case KeyHR:
		return PortalHR
	case KeyExpense:
		return PortalExpense
	default:
		return PortalInventory
	}
}

// Key returns the backend portal key for p.
func (p Portal) Key() string {
	switch p {
	case PortalHR:
		return KeyHR
	case PortalExpense:
		return KeyExpense
	default:
		return KeyInventory
	}
}

// IsValid reports whether p is one of the three known portals.
func (p Portal) IsValid() bool {
	switch p {
	case PortalHR, PortalInventory, PortalExpense:
		return true
	}
	return false
}

// Action is one of the four capability flags on a permission record.
type Action string

const (
	ActionView   Action = "view"
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// SubRecord gates a single tab or section within a screen, keyed by its
// numeric sub-permission id.
type SubRecord struct {
	ID     int  `json:"id"`
	View   bool `json:"view"`
	Add    bool `json:"add"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// Record holds the capability flags and ordering metadata for one named
// screen within a portal. The zero Record means no access of any kind.
type Record struct {
	ID       string            `json:"id"`
	View     bool              `json:"view"`
	Add      bool              `json:"add"`
	Edit     bool              `json:"edit"`
	Delete   bool              `json:"delete"`
	Visible  bool              `json:"visible"`
	Priority int               `json:"priority"`
	Sub      map[int]SubRecord `json:"sub,omitempty"`
}

// Allows reports whether the record grants the given action.
func (r Record) Allows(action Action) bool {
	switch action {
	case ActionView:
		return r.View
	case ActionAdd:
		return r.Add
	case ActionEdit:
		return r.Edit
	case ActionDelete:
		return r.Delete
	}
	return false
}

// Allows reports whether the sub-record grants the given action.
func (s SubRecord) Allows(action Action) bool {
	switch action {
	case ActionView:
		return s.View
	case ActionAdd:
		return s.Add
	case ActionEdit:
		return s.Edit
	case ActionDelete:
		return s.Delete
	}
	return false
}

// Map is the two-level permission structure: portal -> screen name -> record.
type Map map[Portal]map[string]Record

// Capability resolves the record for a screen within a portal. Absent entries
// at either level yield the zero Record, so callers never need to null-check:
// a name missing from the map behaves exactly like all flags false.
func Capability(m Map, portal Portal, name string) Record {
	screens, ok := m[portal]
	if !ok {
		return Record{}
	}
	return screens[name]
}

// SubCapability resolves a second-level record. Same contract as Capability:
// absent entries yield the zero SubRecord.
func SubCapability(m Map, portal Portal, name string, subID int) SubRecord {
	return Capability(m, portal, name).Sub[subID]
}

// portalPriority is the fixed tie-break order used when a user holds
// permissions in more than one portal.
var portalPriority = []Portal{PortalHR, PortalInventory, PortalExpense}

// ActivePortal selects the portal a fresh session should land on: the first
// portal present in the map following the fixed priority order. An empty map
// resolves to the inventory portal.
func ActivePortal(m Map) Portal {
	for _, p := range portalPriority {
		if screens, ok := m[p]; ok && len(screens) > 0 {
			return p
		}
	}
	return PortalInventory
}

// Portals lists the portals present in the map in priority order.
func (m Map) Portals() []Portal {
	var out []Portal
	for _, p := range portalPriority {
		if screens, ok := m[p]; ok && len(screens) > 0 {
			out = append(out, p)
		}
	}
	return out
}
