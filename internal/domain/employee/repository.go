package employee

import "context"

type EmployeeRepository interface {
	List(ctx context.Context, req ListEmployeesRequest) (ListResult, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id string) error

	ListDocuments(ctx context.Context, employeeID string) ([]Document, error)
	GetDocument(ctx context.Context, id string) (Document, error)
	CreateDocument(ctx context.Context, d Document) (Document, error)
	DeleteDocument(ctx context.Context, id string) error

	ListPositionChanges(ctx context.Context, employeeID string) ([]PositionChange, error)
	CreatePositionChange(ctx context.Context, pc PositionChange) (PositionChange, error)
}
