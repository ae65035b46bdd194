package inventory

import "errors"

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrSKUExists         = errors.New("sku already exists")
	ErrInsufficientStock = errors.New("insufficient stock for adjustment")
)
