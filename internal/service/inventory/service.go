package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/inventory"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/database"
	"github.com/sayednaweed/printing-mis-backend-go/internal/repository/postgresql"
)

type ItemServiceImpl struct {
	db *database.DB
	inventory.ItemRepository
}

func NewItemService(db *database.DB, itemRepository inventory.ItemRepository) inventory.ItemService {
	return &ItemServiceImpl{
		db:             db,
		ItemRepository: itemRepository,
	}
}

// List implements inventory.ItemService.
func (s *ItemServiceImpl) List(ctx context.Context, req inventory.ListItemsRequest) (inventory.ListResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return inventory.ListResult{}, err
	}
	return s.ItemRepository.List(ctx, req)
}

// Get implements inventory.ItemService.
func (s *ItemServiceImpl) Get(ctx context.Context, id string) (inventory.Item, error) {
	item, err := s.ItemRepository.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return inventory.Item{}, inventory.ErrItemNotFound
		}
		return inventory.Item{}, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// Create implements inventory.ItemService.
func (s *ItemServiceImpl) Create(ctx context.Context, req inventory.CreateItemRequest) (inventory.Item, error) {
	if err := req.Validate(); err != nil {
		return inventory.Item{}, err
	}

	if _, err := s.ItemRepository.GetBySKU(ctx, req.SKU); err == nil {
		return inventory.Item{}, inventory.ErrSKUExists
	} else if err != pgx.ErrNoRows {
		return inventory.Item{}, fmt.Errorf("failed to check sku: %w", err)
	}

	item := inventory.Item{
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		UnitPrice:    req.UnitPrice,
	}
	created, err := s.ItemRepository.Create(ctx, item)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to create item: %w", err)
	}
	return created, nil
}

// Update implements inventory.ItemService. Quantity is never set here, only
// stock adjustments move it.
func (s *ItemServiceImpl) Update(ctx context.Context, req inventory.UpdateItemRequest) (inventory.Item, error) {
	if err := req.Validate(); err != nil {
		return inventory.Item{}, err
	}

	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return inventory.Item{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Category != nil {
		current.Category = req.Category
	}
	if req.Unit != nil {
		current.Unit = *req.Unit
	}
	if req.ReorderLevel != nil {
		current.ReorderLevel = *req.ReorderLevel
	}
	if req.UnitPrice != nil {
		current.UnitPrice = *req.UnitPrice
	}
	if req.Archived != nil {
		current.Archived = *req.Archived
	}

	updated, err := s.ItemRepository.Update(ctx, current)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to update item: %w", err)
	}
	return updated, nil
}

// Delete implements inventory.ItemService.
func (s *ItemServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.ItemRepository.Delete(ctx, id)
}

// AdjustStock implements inventory.ItemService. The quantity update and the
// adjustment log entry commit together; a delta that would push quantity
// below zero matches no row and maps to ErrInsufficientStock.
func (s *ItemServiceImpl) AdjustStock(ctx context.Context, itemID string, userID string, req inventory.AdjustStockRequest) (inventory.Item, error) {
	if err := req.Validate(); err != nil {
		return inventory.Item{}, err
	}

	if _, err := s.Get(ctx, itemID); err != nil {
		return inventory.Item{}, err
	}

	var updated inventory.Item
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		item, err := s.ItemRepository.AdjustQuantity(txCtx, itemID, req.Delta)
		if err != nil {
			if err == pgx.ErrNoRows {
				return inventory.ErrInsufficientStock
			}
			return fmt.Errorf("failed to adjust quantity: %w", err)
		}

		adj := inventory.Adjustment{
			ItemID:    itemID,
			Delta:     req.Delta,
			Reason:    req.Reason,
			CreatedBy: userID,
		}
		if _, err := s.ItemRepository.CreateAdjustment(txCtx, adj); err != nil {
			return fmt.Errorf("failed to record adjustment: %w", err)
		}

		updated = item
		return nil
	})
	if err != nil {
		return inventory.Item{}, err
	}
	return updated, nil
}

// ListAdjustments implements inventory.ItemService.
func (s *ItemServiceImpl) ListAdjustments(ctx context.Context, itemID string) ([]inventory.Adjustment, error) {
	if _, err := s.Get(ctx, itemID); err != nil {
		return nil, err
	}
	return s.ItemRepository.ListAdjustments(ctx, itemID)
}
