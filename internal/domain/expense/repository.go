package expense

import (
	"context"
	"io"
)

type ExpenseRepository interface {
	List(ctx context.Context, req ListExpensesRequest) (ListResult, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	Create(ctx context.Context, e Expense) (Expense, error)
	Update(ctx context.Context, e Expense) (Expense, error)
	Delete(ctx context.Context, id string) error
}

type ExpenseService interface {
	List(ctx context.Context, req ListExpensesRequest) (ListResult, error)
	Get(ctx context.Context, id string) (Expense, error)
	Create(ctx context.Context, userID string, req CreateExpenseRequest) (Expense, error)
	Update(ctx context.Context, req UpdateExpenseRequest) (Expense, error)
	Delete(ctx context.Context, id string) error

	Approve(ctx context.Context, id string, deciderID string, req DecideExpenseRequest) (Expense, error)
	Reject(ctx context.Context, id string, deciderID string, req DecideExpenseRequest) (Expense, error)

	UploadReceipt(ctx context.Context, id string, contentType string, file io.Reader) (Expense, error)
	DownloadReceipt(ctx context.Context, id string) (Expense, io.ReadCloser, error)
}
