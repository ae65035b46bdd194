package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/preference"
	"github.com/sayednaweed/printing-mis-backend-go/internal/handler/http/response"
)

type PreferenceHandler interface {
	GetPageSize(w http.ResponseWriter, r *http.Request)
	SetPageSize(w http.ResponseWriter, r *http.Request)
}

type preferenceHandlerImpl struct {
	preferenceService preference.Service
}

func NewPreferenceHandler(preferenceService preference.Service) PreferenceHandler {
	return &preferenceHandlerImpl{preferenceService: preferenceService}
}

type pageSizeResponse struct {
	Table    string `json:"table"`
	PageSize int    `json:"page_size"`
}

// GetPageSize implements PreferenceHandler.
func (h *preferenceHandlerImpl) GetPageSize(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	size := h.preferenceService.GetPageSize(r.Context(), userIDFromRequest(r), table)
	response.Success(w, pageSizeResponse{Table: table, PageSize: size})
}

// SetPageSize implements PreferenceHandler.
func (h *preferenceHandlerImpl) SetPageSize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PageSize int `json:"page_size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	table := chi.URLParam(r, "table")
	if err := h.preferenceService.SetPageSize(r.Context(), userIDFromRequest(r), table, req.PageSize); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Preference saved", pageSizeResponse{Table: table, PageSize: req.PageSize})
}
