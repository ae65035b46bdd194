package permission

import (
	"context"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
)

// PermissionRepository loads the raw permission rows assigned to a role.
type PermissionRepository interface {
	GetByRole(ctx context.Context, role user.Role) (Payload, error)
}

// Service resolves a role into its permission map. Implementations may cache;
// cache failures must degrade to the backing store, never to a different
// answer.
type Service interface {
	Resolve(ctx context.Context, role user.Role) (Map, error)
	PayloadFor(ctx context.Context, role user.Role) (Payload, error)
}
