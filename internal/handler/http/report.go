package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/report"
	"github.com/sayednaweed/printing-mis-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	EmployeeRoster(w http.ResponseWriter, r *http.Request)
	StockOnHand(w http.ResponseWriter, r *http.Request)
	ExpenseSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func writeWorkbook(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		slog.Error("Report stream error", "filename", filename, "error", err)
	}
}

// EmployeeRoster implements ReportHandler.
func (h *reportHandlerImpl) EmployeeRoster(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.reportService.EmployeeRoster(r.Context())
	if err != nil {
		slog.Error("EmployeeRoster report error", "error", err)
		response.HandleError(w, err)
		return
	}
	writeWorkbook(w, data, filename)
}

// StockOnHand implements ReportHandler.
func (h *reportHandlerImpl) StockOnHand(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.reportService.StockOnHand(r.Context())
	if err != nil {
		slog.Error("StockOnHand report error", "error", err)
		response.HandleError(w, err)
		return
	}
	writeWorkbook(w, data, filename)
}

// ExpenseSummary implements ReportHandler. Optional from/to query params
// bound the summary by expense date.
func (h *reportHandlerImpl) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	var filter report.ExpenseSummaryFilter
	if from := r.URL.Query().Get("from"); from != "" {
		d, err := time.Parse("2006-01-02", from)
		if err != nil {
			response.ValidationError(w, map[string]string{"from": "from must be yyyy-mm-dd"})
			return
		}
		filter.From = &d
	}
	if to := r.URL.Query().Get("to"); to != "" {
		d, err := time.Parse("2006-01-02", to)
		if err != nil {
			response.ValidationError(w, map[string]string{"to": "to must be yyyy-mm-dd"})
			return
		}
		filter.To = &d
	}

	data, filename, err := h.reportService.ExpenseSummary(r.Context(), filter)
	if err != nil {
		slog.Error("ExpenseSummary report error", "error", err)
		response.HandleError(w, err)
		return
	}
	writeWorkbook(w, data, filename)
}
