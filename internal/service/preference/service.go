package preference

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/preference"
)

type PreferenceServiceImpl struct {
	cache *redis.Client
}

func NewPreferenceService(cache *redis.Client) preference.Service {
	return &PreferenceServiceImpl{cache: cache}
}

func pageSizeKey(userID, table string) string {
	return fmt.Sprintf("pref:%s:pagesize:%s", userID, table)
}

// GetPageSize implements preference.Service. Any read failure, including a
// missing client, falls back to the default.
func (s *PreferenceServiceImpl) GetPageSize(ctx context.Context, userID string, table string) int {
	if s.cache == nil {
		return preference.DefaultPageSize
	}

	raw, err := s.cache.Get(ctx, pageSizeKey(userID, table)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("preference read failed", "user_id", userID, "table", table, "error", err)
		}
		return preference.DefaultPageSize
	}

	size, err := strconv.Atoi(raw)
	if err != nil || !preference.ValidPageSize(size) {
		return preference.DefaultPageSize
	}
	return size
}

// SetPageSize implements preference.Service. Preferences survive sessions, so
// no expiry is set.
func (s *PreferenceServiceImpl) SetPageSize(ctx context.Context, userID string, table string, size int) error {
	if !preference.ValidPageSize(size) {
		return preference.ErrInvalidPageSize
	}
	if s.cache == nil {
		return nil
	}

	if err := s.cache.Set(ctx, pageSizeKey(userID, table), strconv.Itoa(size), 0).Err(); err != nil {
		return fmt.Errorf("failed to store preference: %w", err)
	}
	return nil
}
