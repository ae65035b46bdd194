package expense

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Expense struct {
	ID           string
	Reference    string
	Title        string
	Category     *string
	Amount       float64
	Currency     string
	Status       Status
	ExpenseDate  time.Time
	SubmittedBy  string
	DecidedBy    *string
	DecidedAt    *time.Time
	DecisionNote *string
	ReceiptPath  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanDecide reports whether the expense can still be approved or rejected.
func (e *Expense) CanDecide() bool {
	return e.Status == StatusPending
}
