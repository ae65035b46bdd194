package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/inventory"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/database"
)

const itemColumns = `id, sku, name, category, unit, quantity, reorder_level, unit_price, archived, created_at, updated_at`

type itemRepositoryImpl struct {
	db *database.DB
}

func NewItemRepository(db *database.DB) inventory.ItemRepository {
	return &itemRepositoryImpl{db: db}
}

func scanItem(row interface{ Scan(dest ...any) error }) (inventory.Item, error) {
	var i inventory.Item
	err := row.Scan(
		&i.ID,
		&i.SKU,
		&i.Name,
		&i.Category,
		&i.Unit,
		&i.Quantity,
		&i.ReorderLevel,
		&i.UnitPrice,
		&i.Archived,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// List implements inventory.ItemRepository.
func (r *itemRepositoryImpl) List(ctx context.Context, req inventory.ListItemsRequest) (inventory.ListResult, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"archived = FALSE"}
	args := []interface{}{}
	argIdx := 1

	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+req.Search+"%")
		argIdx++
	}
	if req.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, req.Category)
		argIdx++
	}
	if req.LowStock {
		conditions = append(conditions, "quantity <= reorder_level")
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM inventory_items WHERE %s`, where), args...).Scan(&total); err != nil {
		return inventory.ListResult{}, fmt.Errorf("count items: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM inventory_items
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, itemColumns, where, req.SortBy, strings.ToUpper(req.SortDir), argIdx, argIdx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return inventory.ListResult{}, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return inventory.ListResult{}, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return inventory.ListResult{}, err
	}

	return inventory.ListResult{Items: items, Total: total}, nil
}

// GetByID implements inventory.ItemRepository.
func (r *itemRepositoryImpl) GetByID(ctx context.Context, id string) (inventory.Item, error) {
	q := GetQuerier(ctx, r.db)

	return scanItem(q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id))
}

// GetBySKU implements inventory.ItemRepository.
func (r *itemRepositoryImpl) GetBySKU(ctx context.Context, sku string) (inventory.Item, error) {
	q := GetQuerier(ctx, r.db)

	return scanItem(q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE sku = $1`, sku))
}

// Create implements inventory.ItemRepository.
func (r *itemRepositoryImpl) Create(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO inventory_items (sku, name, category, unit, quantity, reorder_level, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + itemColumns

	return scanItem(q.QueryRow(ctx, query,
		item.SKU,
		item.Name,
		item.Category,
		item.Unit,
		item.Quantity,
		item.ReorderLevel,
		item.UnitPrice,
	))
}

// Update implements inventory.ItemRepository.
func (r *itemRepositoryImpl) Update(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE inventory_items
		SET name = $1, category = $2, unit = $3, reorder_level = $4, unit_price = $5, archived = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + itemColumns

	return scanItem(q.QueryRow(ctx, query,
		item.Name,
		item.Category,
		item.Unit,
		item.ReorderLevel,
		item.UnitPrice,
		item.Archived,
		item.ID,
	))
}

// Delete implements inventory.ItemRepository.
func (r *itemRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}

// AdjustQuantity implements inventory.ItemRepository. The quantity check runs
// inside the UPDATE so concurrent adjustments cannot drive stock negative.
func (r *itemRepositoryImpl) AdjustQuantity(ctx context.Context, itemID string, delta int) (inventory.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE inventory_items
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2 AND quantity + $1 >= 0
		RETURNING ` + itemColumns

	return scanItem(q.QueryRow(ctx, query, delta, itemID))
}

// CreateAdjustment implements inventory.ItemRepository.
func (r *itemRepositoryImpl) CreateAdjustment(ctx context.Context, adj inventory.Adjustment) (inventory.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO inventory_adjustments (item_id, delta, reason, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, item_id, delta, reason, created_by, created_at
	`
	var created inventory.Adjustment
	err := q.QueryRow(ctx, query, adj.ItemID, adj.Delta, adj.Reason, adj.CreatedBy).
		Scan(&created.ID, &created.ItemID, &created.Delta, &created.Reason, &created.CreatedBy, &created.CreatedAt)
	return created, err
}

// ListAdjustments implements inventory.ItemRepository.
func (r *itemRepositoryImpl) ListAdjustments(ctx context.Context, itemID string) ([]inventory.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, item_id, delta, reason, created_by, created_at
		FROM inventory_adjustments
		WHERE item_id = $1
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []inventory.Adjustment
	for rows.Next() {
		var adj inventory.Adjustment
		if err := rows.Scan(&adj.ID, &adj.ItemID, &adj.Delta, &adj.Reason, &adj.CreatedBy, &adj.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, rows.Err()
}
