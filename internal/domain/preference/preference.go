package preference

import (
	"context"
	"errors"
)

// DefaultPageSize is used whenever no stored preference can be read.
const DefaultPageSize = 10

// AllowedPageSizes mirrors the page-size options offered by the table UI.
var AllowedPageSizes = []int{10, 20, 50, 100}

var ErrInvalidPageSize = errors.New("invalid page size")

// Service stores per-user table preferences. Reads must degrade to
// DefaultPageSize when the backing cache is unreachable; they never surface
// transport errors to the caller.
type Service interface {
	GetPageSize(ctx context.Context, userID string, table string) int
	SetPageSize(ctx context.Context, userID string, table string, size int) error
}

func ValidPageSize(size int) bool {
	for _, s := range AllowedPageSizes {
		if s == size {
			return true
		}
	}
	return false
}
