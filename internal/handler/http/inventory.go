package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/inventory"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/preference"
	"github.com/sayednaweed/printing-mis-backend-go/internal/handler/http/response"
)

type InventoryHandler interface {
	ListItems(w http.ResponseWriter, r *http.Request)
	GetItem(w http.ResponseWriter, r *http.Request)
	CreateItem(w http.ResponseWriter, r *http.Request)
	UpdateItem(w http.ResponseWriter, r *http.Request)
	DeleteItem(w http.ResponseWriter, r *http.Request)
	AdjustStock(w http.ResponseWriter, r *http.Request)
	ListAdjustments(w http.ResponseWriter, r *http.Request)
}

type inventoryHandlerImpl struct {
	itemService       inventory.ItemService
	preferenceService preference.Service
}

func NewInventoryHandler(itemService inventory.ItemService, preferenceService preference.Service) InventoryHandler {
	return &inventoryHandlerImpl{
		itemService:       itemService,
		preferenceService: preferenceService,
	}
}

// ListItems implements InventoryHandler.
func (h *inventoryHandlerImpl) ListItems(w http.ResponseWriter, r *http.Request) {
	req := inventory.ListItemsRequest{
		Search:   r.URL.Query().Get("search"),
		SortBy:   r.URL.Query().Get("sort_by"),
		SortDir:  r.URL.Query().Get("sort_dir"),
		Category: r.URL.Query().Get("category"),
		LowStock: r.URL.Query().Get("low_stock") == "true",
	}
	if p := r.URL.Query().Get("page"); p != "" {
		req.Page, _ = strconv.Atoi(p)
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		req.Limit, _ = strconv.Atoi(l)
	} else {
		req.Limit = h.preferenceService.GetPageSize(r.Context(), userIDFromRequest(r), "items")
	}

	result, err := h.itemService.List(r.Context(), req)
	if err != nil {
		slog.Error("ListItems service error", "error", err)
		response.HandleError(w, err)
		return
	}

	req.Normalize()
	items := make([]inventory.ItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, inventory.ToResponse(item))
	}
	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalItems: result.Total,
		TotalPages: totalPages(result.Total, req.Limit),
	})
}

// GetItem implements InventoryHandler.
func (h *inventoryHandlerImpl) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, inventory.ToResponse(item))
}

// CreateItem implements InventoryHandler.
func (h *inventoryHandlerImpl) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req inventory.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.itemService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateItem service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Item created successfully", inventory.ToResponse(created))
}

// UpdateItem implements InventoryHandler.
func (h *inventoryHandlerImpl) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req inventory.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.itemService.Update(r.Context(), req)
	if err != nil {
		slog.Error("UpdateItem service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Item updated successfully", inventory.ToResponse(updated))
}

// DeleteItem implements InventoryHandler.
func (h *inventoryHandlerImpl) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.itemService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteItem service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Item deleted successfully", nil)
}

// AdjustStock implements InventoryHandler.
func (h *inventoryHandlerImpl) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req inventory.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	item, err := h.itemService.AdjustStock(r.Context(), chi.URLParam(r, "id"), userIDFromRequest(r), req)
	if err != nil {
		slog.Error("AdjustStock service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Stock adjusted successfully", inventory.ToResponse(item))
}

// ListAdjustments implements InventoryHandler.
func (h *inventoryHandlerImpl) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := h.itemService.ListAdjustments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]inventory.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		items = append(items, inventory.ToAdjustmentResponse(adj))
	}
	response.Success(w, items)
}
