package postgresql

import (
	"context"
	"fmt"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/database"
)

type permissionRepositoryImpl struct {
	db *database.DB
}

func NewPermissionRepository(db *database.DB) permission.PermissionRepository {
	return &permissionRepositoryImpl{db: db}
}

// GetByRole implements permission.PermissionRepository. Sub-permission rows
// are fetched in one pass and folded into their parent rows, preserving the
// server-assigned priority ordering.
func (r *permissionRepositoryImpl) GetByRole(ctx context.Context, role user.Role) (permission.Payload, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, portal, name, can_view, can_add, can_edit, can_delete, visible, priority
		FROM role_permissions
		WHERE role = $1
		ORDER BY portal, priority
	`
	rows, err := q.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("query role permissions: %w", err)
	}
	defer rows.Close()

	var payload permission.Payload
	index := make(map[string]int) // portal+name -> payload index
	for rows.Next() {
		var row permission.RawPermission
		if err := rows.Scan(&row.ID, &row.Portal, &row.Name, &row.View, &row.Add, &row.Edit, &row.Delete, &row.Visible, &row.Priority); err != nil {
			return nil, fmt.Errorf("scan role permission: %w", err)
		}
		index[row.Portal+"/"+row.Name] = len(payload)
		payload = append(payload, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subQuery := `
		SELECT portal, name, sub_id, can_view, can_add, can_edit, can_delete
		FROM role_sub_permissions
		WHERE role = $1
		ORDER BY portal, name, sub_id
	`
	subRows, err := q.Query(ctx, subQuery, string(role))
	if err != nil {
		return nil, fmt.Errorf("query role sub permissions: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var portal, name string
		var sub permission.RawSubPermission
		if err := subRows.Scan(&portal, &name, &sub.ID, &sub.View, &sub.Add, &sub.Edit, &sub.Delete); err != nil {
			return nil, fmt.Errorf("scan role sub permission: %w", err)
		}
		// Orphan sub rows (no matching parent permission) are skipped.
		if i, ok := index[portal+"/"+name]; ok {
			payload[i].Sub = append(payload[i].Sub, sub)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, err
	}

	return payload, nil
}
