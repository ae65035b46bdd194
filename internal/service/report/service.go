package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/employee"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/expense"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/inventory"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/report"
)

const exportPageSize = 100

type ReportServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	itemRepo     inventory.ItemRepository
	expenseRepo  expense.ExpenseRepository
}

func NewReportService(employeeRepo employee.EmployeeRepository, itemRepo inventory.ItemRepository, expenseRepo expense.ExpenseRepository) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo: employeeRepo,
		itemRepo:     itemRepo,
		expenseRepo:  expenseRepo,
	}
}

// EmployeeRoster implements report.ReportService.
func (s *ReportServiceImpl) EmployeeRoster(ctx context.Context) ([]byte, string, error) {
	columns := []string{"Code", "Full Name", "Email", "Department", "Position", "Status", "Hire Date"}

	var rows [][]any
	req := employee.ListEmployeesRequest{Page: 1, Limit: exportPageSize, SortBy: "full_name", SortDir: "asc"}
	for {
		result, err := s.employeeRepo.List(ctx, req)
		if err != nil {
			return nil, "", fmt.Errorf("failed to list employees: %w", err)
		}
		for _, e := range result.Items {
			hireDate := ""
			if e.HireDate != nil {
				hireDate = e.HireDate.Format("2006-01-02")
			}
			rows = append(rows, []any{
				e.EmployeeCode,
				e.FullName,
				e.Email,
				derefOr(e.Department, ""),
				derefOr(e.Position, ""),
				string(e.Status),
				hireDate,
			})
		}
		if int64(req.Page*req.Limit) >= result.Total {
			break
		}
		req.Page++
	}

	return writeWorkbook("Employee Roster", columns, rows, "employee_roster")
}

// StockOnHand implements report.ReportService.
func (s *ReportServiceImpl) StockOnHand(ctx context.Context) ([]byte, string, error) {
	columns := []string{"SKU", "Name", "Category", "Unit", "Quantity", "Reorder Level", "Unit Price", "Low Stock"}

	var rows [][]any
	req := inventory.ListItemsRequest{Page: 1, Limit: exportPageSize, SortBy: "name", SortDir: "asc"}
	for {
		result, err := s.itemRepo.List(ctx, req)
		if err != nil {
			return nil, "", fmt.Errorf("failed to list items: %w", err)
		}
		for _, item := range result.Items {
			lowStock := ""
			if item.Quantity <= item.ReorderLevel {
				lowStock = "YES"
			}
			rows = append(rows, []any{
				item.SKU,
				item.Name,
				derefOr(item.Category, ""),
				item.Unit,
				item.Quantity,
				item.ReorderLevel,
				item.UnitPrice,
				lowStock,
			})
		}
		if int64(req.Page*req.Limit) >= result.Total {
			break
		}
		req.Page++
	}

	return writeWorkbook("Stock On Hand", columns, rows, "stock_on_hand")
}

// ExpenseSummary implements report.ReportService.
func (s *ReportServiceImpl) ExpenseSummary(ctx context.Context, filter report.ExpenseSummaryFilter) ([]byte, string, error) {
	columns := []string{"Reference", "Title", "Category", "Amount", "Currency", "Status", "Expense Date", "Decided At"}

	req := expense.ListExpensesRequest{Page: 1, Limit: exportPageSize, SortBy: "expense_date", SortDir: "asc"}
	if filter.From != nil {
		req.From = filter.From.Format("2006-01-02")
	}
	if filter.To != nil {
		req.To = filter.To.Format("2006-01-02")
	}

	var rows [][]any
	totals := map[string]float64{}
	for {
		result, err := s.expenseRepo.List(ctx, req)
		if err != nil {
			return nil, "", fmt.Errorf("failed to list expenses: %w", err)
		}
		for _, e := range result.Items {
			decidedAt := ""
			if e.DecidedAt != nil {
				decidedAt = e.DecidedAt.Format("2006-01-02 15:04:05")
			}
			rows = append(rows, []any{
				e.Reference,
				e.Title,
				derefOr(e.Category, ""),
				e.Amount,
				e.Currency,
				string(e.Status),
				e.ExpenseDate.Format("2006-01-02"),
				decidedAt,
			})
			if e.Status == expense.StatusApproved {
				totals[e.Currency] += e.Amount
			}
		}
		if int64(req.Page*req.Limit) >= result.Total {
			break
		}
		req.Page++
	}

	// Approved totals per currency under the detail rows.
	rows = append(rows, []any{})
	for currency, total := range totals {
		rows = append(rows, []any{"TOTAL APPROVED", "", "", total, currency, "", "", ""})
	}

	return writeWorkbook("Expense Summary", columns, rows, "expense_summary")
}

func writeWorkbook(sheetName string, columns []string, rows [][]any, baseName string) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			switch v := val.(type) {
			case time.Time:
				f.SetCellValue(sheetName, cell, v.Format("2006-01-02 15:04:05"))
			default:
				f.SetCellValue(sheetName, cell, v)
			}
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.xlsx", baseName, time.Now().Format("20060102"))
	return buffer.Bytes(), filename, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
