package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	List(ctx context.Context, req ListEmployeesRequest) (ListResult, error)
	Get(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id string) error

	// Onboarding wizard
	StartOnboarding(ctx context.Context, employeeCode string) (Employee, error)
	SavePersonalStep(ctx context.Context, id string, req OnboardingPersonalStep) (Employee, error)
	SavePositionStep(ctx context.Context, id string, req OnboardingPositionStep) (Employee, error)
	CompleteOnboarding(ctx context.Context, id string) (Employee, error)

	// Documents
	ListDocuments(ctx context.Context, employeeID string) ([]Document, error)
	UploadDocument(ctx context.Context, employeeID string, name string, contentType string, size int64, file io.Reader) (Document, error)
	DownloadDocument(ctx context.Context, documentID string) (Document, io.ReadCloser, error)
	DeleteDocument(ctx context.Context, documentID string) error

	// Promotion / demotion history
	ListPositionChanges(ctx context.Context, employeeID string) ([]PositionChange, error)
	RecordPositionChange(ctx context.Context, employeeID string, req PositionChangeRequest) (PositionChange, error)
}
