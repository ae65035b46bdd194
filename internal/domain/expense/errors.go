package expense

import "errors"

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrAlreadyDecided  = errors.New("expense already approved or rejected")
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrNotEditable     = errors.New("only pending expenses can be edited")
)
