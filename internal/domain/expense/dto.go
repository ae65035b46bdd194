package expense

import (
	"time"

	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/validator"
)

var sortableColumns = []string{"reference", "title", "category", "amount", "expense_date", "created_at"}

type ListExpensesRequest struct {
	Page     int
	Limit    int
	Search   string
	SortBy   string
	SortDir  string
	Status   string
	Category string
	From     string
	To       string
}

func (r *ListExpensesRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 10
	}
	if r.SortBy == "" {
		r.SortBy = "expense_date"
	}
	if r.SortDir != "asc" && r.SortDir != "desc" {
		r.SortDir = "desc"
	}
}

func (r *ListExpensesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SortBy != "" && !validator.IsInSlice(r.SortBy, sortableColumns) {
		errs = append(errs, validator.ValidationError{Field: "sort_by", Message: "unsupported sort column"})
	}
	if r.Status != "" && !validator.IsInSlice(r.Status, []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}
	if r.From != "" {
		if _, ok := validator.IsValidDate(r.From); !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be yyyy-mm-dd"})
		}
	}
	if r.To != "" {
		if _, ok := validator.IsValidDate(r.To); !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be yyyy-mm-dd"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateExpenseRequest struct {
	Title       string  `json:"title"`
	Category    *string `json:"category,omitempty"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	ExpenseDate string  `json:"expense_date"`
}

func (r *CreateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if !validator.IsPositive(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be positive"})
	}
	if validator.IsEmpty(r.Currency) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "currency is required"})
	}
	if validator.IsEmpty(r.ExpenseDate) {
		errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "expense_date is required"})
	} else if _, ok := validator.IsValidDate(r.ExpenseDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "expense_date must be yyyy-mm-dd"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateExpenseRequest struct {
	ID          string   `json:"id"`
	Title       *string  `json:"title,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	ExpenseDate *string  `json:"expense_date,omitempty"`
}

func (r *UpdateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not be empty"})
	}
	if r.Amount != nil && !validator.IsPositive(*r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be positive"})
	}
	if r.ExpenseDate != nil {
		if _, ok := validator.IsValidDate(*r.ExpenseDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "expense_date must be yyyy-mm-dd"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideExpenseRequest struct {
	Note *string `json:"note,omitempty"`
}

type ExpenseResponse struct {
	ID           string  `json:"id"`
	Reference    string  `json:"reference"`
	Title        string  `json:"title"`
	Category     *string `json:"category,omitempty"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	ExpenseDate  string  `json:"expense_date"`
	SubmittedBy  string  `json:"submitted_by"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	DecisionNote *string `json:"decision_note,omitempty"`
	HasReceipt   bool    `json:"has_receipt"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(e Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:           e.ID,
		Reference:    e.Reference,
		Title:        e.Title,
		Category:     e.Category,
		Amount:       e.Amount,
		Currency:     e.Currency,
		Status:       string(e.Status),
		ExpenseDate:  e.ExpenseDate.Format("2006-01-02"),
		SubmittedBy:  e.SubmittedBy,
		DecidedBy:    e.DecidedBy,
		DecisionNote: e.DecisionNote,
		HasReceipt:   e.ReceiptPath != nil,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.DecidedAt != nil {
		d := e.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &d
	}
	return resp
}

type ListResult struct {
	Items []Expense
	Total int64
}
