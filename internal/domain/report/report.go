package report

import (
	"context"
	"time"
)

// ExpenseSummaryFilter bounds an expense summary export by decision-agnostic
// expense date.
type ExpenseSummaryFilter struct {
	From *time.Time
	To   *time.Time
}

// ReportService renders printable xlsx workbooks for the portals. Each
// method returns the file bytes and a download filename.
type ReportService interface {
	EmployeeRoster(ctx context.Context) ([]byte, string, error)
	StockOnHand(ctx context.Context) ([]byte, string, error)
	ExpenseSummary(ctx context.Context, filter ExpenseSummaryFilter) ([]byte, string, error)
}
