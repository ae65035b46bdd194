package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/employee"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/preference"
	"github.com/sayednaweed/printing-mis-backend-go/internal/handler/http/response"
)

const maxUploadSize = 10 << 20

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)

	StartOnboarding(w http.ResponseWriter, r *http.Request)
	SavePersonalStep(w http.ResponseWriter, r *http.Request)
	SavePositionStep(w http.ResponseWriter, r *http.Request)
	CompleteOnboarding(w http.ResponseWriter, r *http.Request)

	ListDocuments(w http.ResponseWriter, r *http.Request)
	UploadDocument(w http.ResponseWriter, r *http.Request)
	DownloadDocument(w http.ResponseWriter, r *http.Request)
	DeleteDocument(w http.ResponseWriter, r *http.Request)

	ListPositionChanges(w http.ResponseWriter, r *http.Request)
	RecordPositionChange(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService   employee.EmployeeService
	preferenceService preference.Service
}

func NewEmployeeHandler(employeeService employee.EmployeeService, preferenceService preference.Service) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService:   employeeService,
		preferenceService: preferenceService,
	}
}

// ListEmployees implements EmployeeHandler. A missing limit falls back to the
// caller's stored page-size preference for this table.
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	req := employee.ListEmployeesRequest{
		Search:     r.URL.Query().Get("search"),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortDir:    r.URL.Query().Get("sort_dir"),
		Status:     r.URL.Query().Get("status"),
		Department: r.URL.Query().Get("department"),
	}
	if p := r.URL.Query().Get("page"); p != "" {
		req.Page, _ = strconv.Atoi(p)
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		req.Limit, _ = strconv.Atoi(l)
	} else {
		req.Limit = h.preferenceService.GetPageSize(r.Context(), userIDFromRequest(r), "employees")
	}

	result, err := h.employeeService.List(r.Context(), req)
	if err != nil {
		slog.Error("ListEmployees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	req.Normalize()
	items := make([]employee.EmployeeResponse, 0, len(result.Items))
	for _, e := range result.Items {
		items = append(items, employee.ToResponse(e))
	}
	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalItems: result.Total,
		TotalPages: totalPages(result.Total, req.Limit),
	})
}

// GetEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee.ToResponse(e))
}

// CreateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created successfully", employee.ToResponse(created))
}

// UpdateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		slog.Error("UpdateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", employee.ToResponse(updated))
}

// DeleteEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		slog.Error("DeleteEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// StartOnboarding implements EmployeeHandler.
func (h *employeeHandlerImpl) StartOnboarding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeCode string `json:"employee_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.EmployeeCode == "" {
		response.ValidationError(w, map[string]string{"employee_code": "employee_code is required"})
		return
	}

	draft, err := h.employeeService.StartOnboarding(r.Context(), req.EmployeeCode)
	if err != nil {
		slog.Error("StartOnboarding service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Onboarding started", employee.ToResponse(draft))
}

// SavePersonalStep implements EmployeeHandler.
func (h *employeeHandlerImpl) SavePersonalStep(w http.ResponseWriter, r *http.Request) {
	var req employee.OnboardingPersonalStep
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	draft, err := h.employeeService.SavePersonalStep(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("SavePersonalStep service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Personal information saved", employee.ToResponse(draft))
}

// SavePositionStep implements EmployeeHandler.
func (h *employeeHandlerImpl) SavePositionStep(w http.ResponseWriter, r *http.Request) {
	var req employee.OnboardingPositionStep
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	draft, err := h.employeeService.SavePositionStep(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("SavePositionStep service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Position information saved", employee.ToResponse(draft))
}

// CompleteOnboarding implements EmployeeHandler.
func (h *employeeHandlerImpl) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	activated, err := h.employeeService.CompleteOnboarding(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("CompleteOnboarding service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Onboarding completed", employee.ToResponse(activated))
}

// ListDocuments implements EmployeeHandler.
func (h *employeeHandlerImpl) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.employeeService.ListDocuments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]employee.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, employee.ToDocumentResponse(d))
	}
	response.Success(w, items)
}

// UploadDocument implements EmployeeHandler.
func (h *employeeHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, fileHeader, err := r.FormFile("document")
	if err != nil {
		response.BadRequest(w, "Missing document file", nil)
		return
	}
	defer file.Close()

	doc, err := h.employeeService.UploadDocument(
		r.Context(),
		chi.URLParam(r, "id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		slog.Error("UploadDocument service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Document uploaded successfully", employee.ToDocumentResponse(doc))
}

// DownloadDocument implements EmployeeHandler.
func (h *employeeHandlerImpl) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	doc, reader, err := h.employeeService.DownloadDocument(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("DownloadDocument stream error", "document_id", doc.ID, "error", err)
	}
}

// DeleteDocument implements EmployeeHandler.
func (h *employeeHandlerImpl) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.DeleteDocument(r.Context(), chi.URLParam(r, "documentID")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Document deleted successfully", nil)
}

// ListPositionChanges implements EmployeeHandler.
func (h *employeeHandlerImpl) ListPositionChanges(w http.ResponseWriter, r *http.Request) {
	changes, err := h.employeeService.ListPositionChanges(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]employee.PositionChangeResponse, 0, len(changes))
	for _, pc := range changes {
		items = append(items, employee.ToPositionChangeResponse(pc))
	}
	response.Success(w, items)
}

// RecordPositionChange implements EmployeeHandler.
func (h *employeeHandlerImpl) RecordPositionChange(w http.ResponseWriter, r *http.Request) {
	var req employee.PositionChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	change, err := h.employeeService.RecordPositionChange(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("RecordPositionChange service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Position change recorded", employee.ToPositionChangeResponse(change))
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
