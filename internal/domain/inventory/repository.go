package inventory

import "context"

type ItemRepository interface {
	List(ctx context.Context, req ListItemsRequest) (ListResult, error)
	GetByID(ctx context.Context, id string) (Item, error)
	GetBySKU(ctx context.Context, sku string) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, id string) error

	AdjustQuantity(ctx context.Context, itemID string, delta int) (Item, error)
	CreateAdjustment(ctx context.Context, adj Adjustment) (Adjustment, error)
	ListAdjustments(ctx context.Context, itemID string) ([]Adjustment, error)
}

type ItemService interface {
	List(ctx context.Context, req ListItemsRequest) (ListResult, error)
	Get(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, req CreateItemRequest) (Item, error)
	Update(ctx context.Context, req UpdateItemRequest) (Item, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, itemID string, userID string, req AdjustStockRequest) (Item, error)
	ListAdjustments(ctx context.Context, itemID string) ([]Adjustment, error)
}
