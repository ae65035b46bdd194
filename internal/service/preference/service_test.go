package preference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/preference"
)

func TestGetPageSizeWithoutCacheFallsBack(t *testing.T) {
	svc := NewPreferenceService(nil)

	size := svc.GetPageSize(context.Background(), "u1", "employees")
	assert.Equal(t, preference.DefaultPageSize, size)
}

func TestSetPageSizeValidation(t *testing.T) {
	svc := NewPreferenceService(nil)

	err := svc.SetPageSize(context.Background(), "u1", "employees", 25)
	assert.ErrorIs(t, err, preference.ErrInvalidPageSize)

	// Allowed sizes succeed even when no cache is wired; the preference just
	// will not survive.
	for _, size := range preference.AllowedPageSizes {
		assert.NoError(t, svc.SetPageSize(context.Background(), "u1", "employees", size))
	}
}

func TestPageSizeKey(t *testing.T) {
	assert.Equal(t, "pref:u1:pagesize:employees", pageSizeKey("u1", "employees"))
}
