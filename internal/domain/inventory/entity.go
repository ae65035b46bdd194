package inventory

import "time"

type Item struct {
	ID           string
	SKU          string
	Name         string
	Category     *string
	Unit         string
	Quantity     int
	ReorderLevel int
	UnitPrice    float64
	Archived     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Adjustment is one manual stock correction. Delta may be negative; the
// resulting quantity never drops below zero.
type Adjustment struct {
	ID        string
	ItemID    string
	Delta     int
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}
