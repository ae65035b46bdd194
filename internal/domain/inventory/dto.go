package inventory

import (
	"time"

	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/validator"
)

var sortableColumns = []string{"name", "sku", "category", "quantity", "unit_price", "created_at"}

type ListItemsRequest struct {
	Page     int
	Limit    int
	Search   string
	SortBy   string
	SortDir  string
	Category string
	LowStock bool
}

func (r *ListItemsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 10
	}
	if r.SortBy == "" {
		r.SortBy = "name"
	}
	if r.SortDir != "asc" && r.SortDir != "desc" {
		r.SortDir = "asc"
	}
}

func (r *ListItemsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SortBy != "" && !validator.IsInSlice(r.SortBy, sortableColumns) {
		errs = append(errs, validator.ValidationError{Field: "sort_by", Message: "unsupported sort column"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateItemRequest struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     *string `json:"category,omitempty"`
	Unit         string  `json:"unit"`
	Quantity     int     `json:"quantity"`
	ReorderLevel int     `json:"reorder_level"`
	UnitPrice    float64 `json:"unit_price"`
}

func (r *CreateItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SKU) {
		errs = append(errs, validator.ValidationError{Field: "sku", Message: "sku is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Unit) {
		errs = append(errs, validator.ValidationError{Field: "unit", Message: "unit is required"})
	}
	if r.Quantity < 0 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "quantity must not be negative"})
	}
	if r.UnitPrice < 0 {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "unit_price must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateItemRequest struct {
	ID           string   `json:"id"`
	Name         *string  `json:"name,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	ReorderLevel *int     `json:"reorder_level,omitempty"`
	UnitPrice    *float64 `json:"unit_price,omitempty"`
	Archived     *bool    `json:"archived,omitempty"`
}

func (r *UpdateItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.UnitPrice != nil && *r.UnitPrice < 0 {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "unit_price must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

func (r *AdjustStockRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Delta == 0 {
		errs = append(errs, validator.ValidationError{Field: "delta", Message: "delta must not be zero"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ItemResponse struct {
	ID           string  `json:"id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     *string `json:"category,omitempty"`
	Unit         string  `json:"unit"`
	Quantity     int     `json:"quantity"`
	ReorderLevel int     `json:"reorder_level"`
	UnitPrice    float64 `json:"unit_price"`
	Archived     bool    `json:"archived"`
	LowStock     bool    `json:"low_stock"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(i Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		SKU:          i.SKU,
		Name:         i.Name,
		Category:     i.Category,
		Unit:         i.Unit,
		Quantity:     i.Quantity,
		ReorderLevel: i.ReorderLevel,
		UnitPrice:    i.UnitPrice,
		Archived:     i.Archived,
		LowStock:     i.Quantity <= i.ReorderLevel,
		CreatedAt:    i.CreatedAt.Format(time.RFC3339),
	}
}

type AdjustmentResponse struct {
	ID        string `json:"id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

func ToAdjustmentResponse(a Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:        a.ID,
		Delta:     a.Delta,
		Reason:    a.Reason,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

type ListResult struct {
	Items []Item
	Total int64
}
