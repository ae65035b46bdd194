package response

import (
	"errors"
	"net/http"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/auth"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/employee"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/expense"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/inventory"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/preference"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, "OAuth state mismatch", nil)
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminRequired), errors.Is(err, user.ErrPermissionRequired):
		Forbidden(w, "Insufficient permissions")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, employee.ErrNotDraft):
		Conflict(w, "Employee is not in onboarding")
	case errors.Is(err, employee.ErrOnboardingIncomplete):
		BadRequest(w, "Onboarding steps incomplete", nil)

	// Inventory domain errors
	case errors.Is(err, inventory.ErrItemNotFound):
		NotFound(w, "Item not found")
	case errors.Is(err, inventory.ErrSKUExists):
		Conflict(w, "SKU already exists")
	case errors.Is(err, inventory.ErrInsufficientStock):
		Conflict(w, "Insufficient stock for adjustment")

	// Expense domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, expense.ErrAlreadyDecided):
		Conflict(w, "Expense already approved or rejected")
	case errors.Is(err, expense.ErrNotEditable):
		Conflict(w, "Only pending expenses can be edited")
	case errors.Is(err, expense.ErrReceiptNotFound):
		NotFound(w, "Receipt not found")

	// Preference domain errors
	case errors.Is(err, preference.ErrInvalidPageSize):
		BadRequest(w, "Invalid page size", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
