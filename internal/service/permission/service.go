package permission

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
)

const cacheTTL = 5 * time.Minute

// PermissionServiceImpl resolves role permissions, caching the raw payload in
// Redis. Cache failures fall through to Postgres so a broken cache can slow
// requests down but never change an authorization answer.
type PermissionServiceImpl struct {
	repo  permission.PermissionRepository
	cache *redis.Client
}

// NewPermissionService creates the resolver. cache may be nil, which disables
// caching entirely.
func NewPermissionService(repo permission.PermissionRepository, cache *redis.Client) permission.Service {
	return &PermissionServiceImpl{repo: repo, cache: cache}
}

func cacheKey(role user.Role) string {
	return fmt.Sprintf("perm:role:%s", role)
}

// PayloadFor implements permission.Service.
func (s *PermissionServiceImpl) PayloadFor(ctx context.Context, role user.Role) (permission.Payload, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey(role)).Bytes()
		if err == nil {
			var payload permission.Payload
			if err := json.Unmarshal(raw, &payload); err == nil {
				return payload, nil
			}
			// Corrupt entry: drop it and fall through to the database.
			_ = s.cache.Del(ctx, cacheKey(role)).Err()
		} else if err != redis.Nil {
			slog.Warn("permission cache read failed", "role", role, "error", err)
		}
	}

	payload, err := s.repo.GetByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("load permissions for role %q: %w", role, err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(payload); err == nil {
			if err := s.cache.Set(ctx, cacheKey(role), raw, cacheTTL).Err(); err != nil {
				slog.Warn("permission cache write failed", "role", role, "error", err)
			}
		}
	}

	return payload, nil
}

// Resolve implements permission.Service.
func (s *PermissionServiceImpl) Resolve(ctx context.Context, role user.Role) (permission.Map, error) {
	payload, err := s.PayloadFor(ctx, role)
	if err != nil {
		return nil, err
	}
	return permission.BuildMap(payload), nil
}
