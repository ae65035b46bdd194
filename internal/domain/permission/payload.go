package permission

import "sort"

// RawSubPermission is one sub-permission row as sent by the backend.
type RawSubPermission struct {
	ID     int  `json:"id"`
	View   bool `json:"view"`
	Add    bool `json:"add"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// RawPermission is one permission row as sent by the backend. Portal is the
// backend portal key ("1", "2", "3").
type RawPermission struct {
	ID       string             `json:"id"`
	Portal   string             `json:"portal"`
	Name     string             `json:"permission"`
	View     bool               `json:"view"`
	Add      bool               `json:"add"`
	Edit     bool               `json:"edit"`
	Delete   bool               `json:"delete"`
	Visible  bool               `json:"visible"`
	Priority int                `json:"priority"`
	Sub      []RawSubPermission `json:"sub,omitempty"`
}

// Payload is the backend-shaped permission payload returned by the login and
// session endpoints.
type Payload []RawPermission

// BuildMap converts a raw payload into the nested permission map. Duplicate
// (portal, name) pairs keep the last row, matching backend replace-on-update
// semantics.
func BuildMap(raw Payload) Map {
	m := make(Map)
	for _, row := range raw {
		portal := PortalFromKey(row.Portal)
		screens, ok := m[portal]
		if !ok {
			screens = make(map[string]Record)
			m[portal] = screens
		}

		rec := Record{
			ID:       row.ID,
			View:     row.View,
			Add:      row.Add,
			Edit:     row.Edit,
			Delete:   row.Delete,
			Visible:  row.Visible,
			Priority: row.Priority,
		}
		if len(row.Sub) > 0 {
			rec.Sub = make(map[int]SubRecord, len(row.Sub))
			for _, sub := range row.Sub {
				rec.Sub[sub.ID] = SubRecord{
					ID:     sub.ID,
					View:   sub.View,
					Add:    sub.Add,
					Edit:   sub.Edit,
					Delete: sub.Delete,
				}
			}
		}
		screens[row.Name] = rec
	}
	return m
}

// MenuItem is one entry of the visible menu for a portal, ordered by the
// server-assigned priority.
type MenuItem struct {
	Name   string `json:"name"`
	Record Record `json:"record"`
}

// Menu returns the visible records of a portal sorted by priority, then name
// for records sharing a priority.
func Menu(m Map, portal Portal) []MenuItem {
	screens := m[portal]
	items := make([]MenuItem, 0, len(screens))
	for name, rec := range screens {
		if !rec.Visible {
			continue
		}
		items = append(items, MenuItem{Name: name, Record: rec})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Record.Priority != items[j].Record.Priority {
			return items[i].Record.Priority < items[j].Record.Priority
		}
		return items[i].Name < items[j].Name
	})
	return items
}
