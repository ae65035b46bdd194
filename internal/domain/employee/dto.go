package employee

import (
	"time"

	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/validator"
)

// Sortable columns whitelisted for the employees table.
var sortableColumns = []string{"full_name", "employee_code", "department", "position", "hire_date", "created_at"}

// ListEmployeesRequest carries the table query: search, filter, sort and
// pagination straight from the list screen.
type ListEmployeesRequest struct {
	Page       int
	Limit      int
	Search     string
	SortBy     string
	SortDir    string
	Status     string
	Department string
}

func (r *ListEmployeesRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 10
	}
	if r.SortBy == "" {
		r.SortBy = "created_at"
	}
	if r.SortDir != "asc" && r.SortDir != "desc" {
		r.SortDir = "desc"
	}
}

func (r *ListEmployeesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SortBy != "" && !validator.IsInSlice(r.SortBy, sortableColumns) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "unsupported sort column",
		})
	}
	if r.Status != "" && !validator.IsInSlice(r.Status, []string{string(StatusDraft), string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Contact      *string `json:"contact,omitempty"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	HireDate     *string `json:"hire_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be yyyy-mm-dd"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string  `json:"id"`
	FullName   *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Onboarding wizard steps. Each step submits its own form; the draft is only
// promoted to active once every required step has been filled in.

type OnboardingPersonalStep struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Contact  *string `json:"contact,omitempty"`
}

func (r *OnboardingPersonalStep) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OnboardingPositionStep struct {
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Grade      *string `json:"grade,omitempty"`
	HireDate   string  `json:"hire_date"`
}

func (r *OnboardingPositionStep) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	}
	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date is required"})
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be yyyy-mm-dd"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PositionChangeRequest struct {
	ToTitle     string  `json:"to_title"`
	Reason      *string `json:"reason,omitempty"`
	EffectiveAt string  `json:"effective_at"`
}

func (r *PositionChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ToTitle) {
		errs = append(errs, validator.ValidationError{Field: "to_title", Message: "to_title is required"})
	}
	if validator.IsEmpty(r.EffectiveAt) {
		errs = append(errs, validator.ValidationError{Field: "effective_at", Message: "effective_at is required"})
	} else if _, ok := validator.IsValidDate(r.EffectiveAt); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_at", Message: "effective_at must be yyyy-mm-dd"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Contact      *string `json:"contact,omitempty"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	Grade        *string `json:"grade,omitempty"`
	Status       string  `json:"status"`
	HireDate     *string `json:"hire_date,omitempty"`
	PictureURL   *string `json:"picture_url,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		Contact:      e.Contact,
		Department:   e.Department,
		Position:     e.Position,
		Grade:        e.Grade,
		Status:       string(e.Status),
		PictureURL:   e.PictureURL,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.HireDate != nil {
		d := e.HireDate.Format("2006-01-02")
		resp.HireDate = &d
	}
	return resp
}

type DocumentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	UploadedAt  string `json:"uploaded_at"`
}

func ToDocumentResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		Name:        d.Name,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		UploadedAt:  d.UploadedAt.Format(time.RFC3339),
	}
}

type PositionChangeResponse struct {
	ID          string  `json:"id"`
	FromTitle   *string `json:"from_title,omitempty"`
	ToTitle     string  `json:"to_title"`
	Reason      *string `json:"reason,omitempty"`
	EffectiveAt string  `json:"effective_at"`
	CreatedAt   string  `json:"created_at"`
}

func ToPositionChangeResponse(pc PositionChange) PositionChangeResponse {
	return PositionChangeResponse{
		ID:          pc.ID,
		FromTitle:   pc.FromTitle,
		ToTitle:     pc.ToTitle,
		Reason:      pc.Reason,
		EffectiveAt: pc.EffectiveAt.Format("2006-01-02"),
		CreatedAt:   pc.CreatedAt.Format(time.RFC3339),
	}
}

// ListResult pairs one page of rows with the unpaged total for meta.
type ListResult struct {
	Items []Employee
	Total int64
}
