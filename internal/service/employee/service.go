package employee

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/employee"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/database"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/email"
	"github.com/sayednaweed/printing-mis-backend-go/internal/repository/postgresql"
	"github.com/sayednaweed/printing-mis-backend-go/internal/service/file"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	fileService  file.FileService
	emailService email.EmailService
	portalURL    string
}

func NewEmployeeService(db *database.DB, employeeRepository employee.EmployeeRepository, fileService file.FileService, emailService email.EmailService, portalURL string) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepository,
		fileService:        fileService,
		emailService:       emailService,
		portalURL:          portalURL,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeesRequest) (employee.ListResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.ListResult{}, err
	}
	return s.EmployeeRepository.List(ctx, req)
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	if _, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode); err == nil {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	} else if err != pgx.ErrNoRows {
		return employee.Employee{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	newEmployee := employee.Employee{
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		Contact:      req.Contact,
		Department:   req.Department,
		Position:     req.Position,
		Status:       employee.StatusActive,
	}
	if req.HireDate != nil {
		d, err := time.Parse("2006-01-02", *req.HireDate)
		if err == nil {
			newEmployee.HireDate = &d
		}
	}

	created, err := s.EmployeeRepository.Create(ctx, newEmployee)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return employee.Employee{}, err
	}

	if req.FullName != nil {
		current.FullName = *req.FullName
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.Contact != nil {
		current.Contact = req.Contact
	}
	if req.Department != nil {
		current.Department = req.Department
	}
	if req.Position != nil {
		current.Position = req.Position
	}
	if req.Status != nil {
		current.Status = employee.Status(*req.Status)
	}

	updated, err := s.EmployeeRepository.Update(ctx, current)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeService. Stored documents are removed
// best effort after the row is gone.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	docs, err := s.EmployeeRepository.ListDocuments(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}

	for _, d := range docs {
		_ = s.fileService.DeleteFile(ctx, d.Path)
	}
	return nil
}

// StartOnboarding implements employee.EmployeeService. The draft uses a
// placeholder email derived from the code; the personal step replaces it.
func (s *EmployeeServiceImpl) StartOnboarding(ctx context.Context, employeeCode string) (employee.Employee, error) {
	if employeeCode == "" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	if _, err := s.EmployeeRepository.GetByCode(ctx, employeeCode); err == nil {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	} else if err != pgx.ErrNoRows {
		return employee.Employee{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	draft := employee.Employee{
		EmployeeCode: employeeCode,
		FullName:     "",
		Email:        fmt.Sprintf("%s@onboarding.invalid", employeeCode),
		Status:       employee.StatusDraft,
	}
	created, err := s.EmployeeRepository.Create(ctx, draft)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create onboarding draft: %w", err)
	}
	return created, nil
}

func (s *EmployeeServiceImpl) getDraft(ctx context.Context, id string) (employee.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if e.Status != employee.StatusDraft {
		return employee.Employee{}, employee.ErrNotDraft
	}
	return e, nil
}

// SavePersonalStep implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SavePersonalStep(ctx context.Context, id string, req employee.OnboardingPersonalStep) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	draft, err := s.getDraft(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	draft.FullName = req.FullName
	draft.Email = req.Email
	draft.Contact = req.Contact

	updated, err := s.EmployeeRepository.Update(ctx, draft)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to save personal step: %w", err)
	}
	return updated, nil
}

// SavePositionStep implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SavePositionStep(ctx context.Context, id string, req employee.OnboardingPositionStep) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	draft, err := s.getDraft(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)
	draft.Department = &req.Department
	draft.Position = &req.Position
	draft.Grade = req.Grade
	draft.HireDate = &hireDate

	updated, err := s.EmployeeRepository.Update(ctx, draft)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to save position step: %w", err)
	}
	return updated, nil
}

// CompleteOnboarding implements employee.EmployeeService. Every wizard step
// must have been saved before the draft can go active.
func (s *EmployeeServiceImpl) CompleteOnboarding(ctx context.Context, id string) (employee.Employee, error) {
	draft, err := s.getDraft(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	if draft.FullName == "" || draft.Department == nil || draft.Position == nil || draft.HireDate == nil {
		return employee.Employee{}, employee.ErrOnboardingIncomplete
	}

	draft.Status = employee.StatusActive
	updated, err := s.EmployeeRepository.Update(ctx, draft)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	if s.emailService != nil {
		go func() {
			if err := s.emailService.SendWelcome(updated.Email, updated.FullName, s.portalURL); err != nil {
				slog.Error("Failed to send welcome email", "employee_id", updated.ID, "error", err)
			}
		}()
	}
	return updated, nil
}

// ListDocuments implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListDocuments(ctx context.Context, employeeID string) ([]employee.Document, error) {
	if _, err := s.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.EmployeeRepository.ListDocuments(ctx, employeeID)
}

// UploadDocument implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadDocument(ctx context.Context, employeeID string, name string, contentType string, size int64, fileReader io.Reader) (employee.Document, error) {
	if _, err := s.Get(ctx, employeeID); err != nil {
		return employee.Document{}, err
	}

	path, err := s.fileService.UploadEmployeeDocument(ctx, employeeID, fileReader, name)
	if err != nil {
		return employee.Document{}, err
	}

	doc := employee.Document{
		EmployeeID:  employeeID,
		Name:        name,
		Path:        path,
		ContentType: contentType,
		SizeBytes:   size,
	}
	created, err := s.EmployeeRepository.CreateDocument(ctx, doc)
	if err != nil {
		// The row failed, drop the orphaned file.
		_ = s.fileService.DeleteFile(ctx, path)
		return employee.Document{}, fmt.Errorf("failed to record document: %w", err)
	}
	return created, nil
}

// DownloadDocument implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DownloadDocument(ctx context.Context, documentID string) (employee.Document, io.ReadCloser, error) {
	doc, err := s.EmployeeRepository.GetDocument(ctx, documentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Document{}, nil, employee.ErrDocumentNotFound
		}
		return employee.Document{}, nil, fmt.Errorf("failed to get document: %w", err)
	}

	reader, err := s.fileService.Download(ctx, doc.Path)
	if err != nil {
		return employee.Document{}, nil, fmt.Errorf("failed to open document: %w", err)
	}
	return doc, reader, nil
}

// DeleteDocument implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteDocument(ctx context.Context, documentID string) error {
	doc, err := s.EmployeeRepository.GetDocument(ctx, documentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrDocumentNotFound
		}
		return fmt.Errorf("failed to get document: %w", err)
	}

	if err := s.EmployeeRepository.DeleteDocument(ctx, documentID); err != nil {
		return err
	}
	_ = s.fileService.DeleteFile(ctx, doc.Path)
	return nil
}

// ListPositionChanges implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListPositionChanges(ctx context.Context, employeeID string) ([]employee.PositionChange, error) {
	if _, err := s.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.EmployeeRepository.ListPositionChanges(ctx, employeeID)
}

// RecordPositionChange implements employee.EmployeeService. The employee's
// current position becomes the change's from side and the new title is applied
// in the same transaction.
func (s *EmployeeServiceImpl) RecordPositionChange(ctx context.Context, employeeID string, req employee.PositionChangeRequest) (employee.PositionChange, error) {
	if err := req.Validate(); err != nil {
		return employee.PositionChange{}, err
	}

	current, err := s.Get(ctx, employeeID)
	if err != nil {
		return employee.PositionChange{}, err
	}

	effectiveAt, _ := time.Parse("2006-01-02", req.EffectiveAt)
	change := employee.PositionChange{
		EmployeeID:  employeeID,
		FromTitle:   current.Position,
		ToTitle:     req.ToTitle,
		Reason:      req.Reason,
		EffectiveAt: effectiveAt,
	}

	var created employee.PositionChange
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		created, err = s.EmployeeRepository.CreatePositionChange(txCtx, change)
		if err != nil {
			return fmt.Errorf("failed to record position change: %w", err)
		}

		current.Position = &req.ToTitle
		if _, err := s.EmployeeRepository.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to apply position change: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.PositionChange{}, err
	}
	return created, nil
}
