package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/expense"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/preference"
	"github.com/sayednaweed/printing-mis-backend-go/internal/handler/http/response"
)

type ExpenseHandler interface {
	ListExpenses(w http.ResponseWriter, r *http.Request)
	GetExpense(w http.ResponseWriter, r *http.Request)
	CreateExpense(w http.ResponseWriter, r *http.Request)
	UpdateExpense(w http.ResponseWriter, r *http.Request)
	DeleteExpense(w http.ResponseWriter, r *http.Request)
	ApproveExpense(w http.ResponseWriter, r *http.Request)
	RejectExpense(w http.ResponseWriter, r *http.Request)
	UploadReceipt(w http.ResponseWriter, r *http.Request)
	DownloadReceipt(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService    expense.ExpenseService
	preferenceService preference.Service
}

func NewExpenseHandler(expenseService expense.ExpenseService, preferenceService preference.Service) ExpenseHandler {
	return &expenseHandlerImpl{
		expenseService:    expenseService,
		preferenceService: preferenceService,
	}
}

// ListExpenses implements ExpenseHandler.
func (h *expenseHandlerImpl) ListExpenses(w http.ResponseWriter, r *http.Request) {
	req := expense.ListExpensesRequest{
		Search:   r.URL.Query().Get("search"),
		SortBy:   r.URL.Query().Get("sort_by"),
		SortDir:  r.URL.Query().Get("sort_dir"),
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}
	if p := r.URL.Query().Get("page"); p != "" {
		req.Page, _ = strconv.Atoi(p)
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		req.Limit, _ = strconv.Atoi(l)
	} else {
		req.Limit = h.preferenceService.GetPageSize(r.Context(), userIDFromRequest(r), "expenses")
	}

	result, err := h.expenseService.List(r.Context(), req)
	if err != nil {
		slog.Error("ListExpenses service error", "error", err)
		response.HandleError(w, err)
		return
	}

	req.Normalize()
	items := make([]expense.ExpenseResponse, 0, len(result.Items))
	for _, e := range result.Items {
		items = append(items, expense.ToResponse(e))
	}
	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalItems: result.Total,
		TotalPages: totalPages(result.Total, req.Limit),
	})
}

// GetExpense implements ExpenseHandler.
func (h *expenseHandlerImpl) GetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := h.expenseService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, expense.ToResponse(e))
}

// CreateExpense implements ExpenseHandler.
func (h *expenseHandlerImpl) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expense.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateExpense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.expenseService.Create(r.Context(), userIDFromRequest(r), req)
	if err != nil {
		slog.Error("CreateExpense service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Expense created successfully", expense.ToResponse(created))
}

// UpdateExpense implements ExpenseHandler.
func (h *expenseHandlerImpl) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expense.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateExpense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.expenseService.Update(r.Context(), req)
	if err != nil {
		slog.Error("UpdateExpense service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense updated successfully", expense.ToResponse(updated))
}

// DeleteExpense implements ExpenseHandler.
func (h *expenseHandlerImpl) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteExpense service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense deleted successfully", nil)
}

func (h *expenseHandlerImpl) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	var req expense.DecideExpenseRequest
	if r.Body != nil {
		// The note is optional; an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	var (
		decided expense.Expense
		err     error
	)
	if approve {
		decided, err = h.expenseService.Approve(r.Context(), chi.URLParam(r, "id"), userIDFromRequest(r), req)
	} else {
		decided, err = h.expenseService.Reject(r.Context(), chi.URLParam(r, "id"), userIDFromRequest(r), req)
	}
	if err != nil {
		slog.Error("Decide expense service error", "approve", approve, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense decision recorded", expense.ToResponse(decided))
}

// ApproveExpense implements ExpenseHandler.
func (h *expenseHandlerImpl) ApproveExpense(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// RejectExpense implements ExpenseHandler.
func (h *expenseHandlerImpl) RejectExpense(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

// UploadReceipt implements ExpenseHandler.
func (h *expenseHandlerImpl) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, fileHeader, err := r.FormFile("receipt")
	if err != nil {
		response.BadRequest(w, "Missing receipt file", nil)
		return
	}
	defer file.Close()

	updated, err := h.expenseService.UploadReceipt(r.Context(), chi.URLParam(r, "id"), fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		slog.Error("UploadReceipt service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Receipt uploaded successfully", expense.ToResponse(updated))
}

// DownloadReceipt implements ExpenseHandler.
func (h *expenseHandlerImpl) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	e, reader, err := h.expenseService.DownloadReceipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer reader.Close()

	filename := e.Reference + path.Ext(*e.ReceiptPath)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("DownloadReceipt stream error", "expense_id", e.ID, "error", err)
	}
}
