package expense

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/expense"
	"github.com/sayednaweed/printing-mis-backend-go/internal/service/file"
)

type ExpenseServiceImpl struct {
	expense.ExpenseRepository
	fileService file.FileService
}

func NewExpenseService(expenseRepository expense.ExpenseRepository, fileService file.FileService) expense.ExpenseService {
	return &ExpenseServiceImpl{
		ExpenseRepository: expenseRepository,
		fileService:       fileService,
	}
}

// List implements expense.ExpenseService.
func (s *ExpenseServiceImpl) List(ctx context.Context, req expense.ListExpensesRequest) (expense.ListResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return expense.ListResult{}, err
	}
	return s.ExpenseRepository.List(ctx, req)
}

// Get implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Get(ctx context.Context, id string) (expense.Expense, error) {
	e, err := s.ExpenseRepository.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// Create implements expense.ExpenseService. The reference number is assigned
// by the repository on insert.
func (s *ExpenseServiceImpl) Create(ctx context.Context, userID string, req expense.CreateExpenseRequest) (expense.Expense, error) {
	if err := req.Validate(); err != nil {
		return expense.Expense{}, err
	}

	expenseDate, _ := time.Parse("2006-01-02", req.ExpenseDate)
	e := expense.Expense{
		Title:       req.Title,
		Category:    req.Category,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      expense.StatusPending,
		ExpenseDate: expenseDate,
		SubmittedBy: userID,
	}

	created, err := s.ExpenseRepository.Create(ctx, e)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

// Update implements expense.ExpenseService. Decided expenses are frozen.
func (s *ExpenseServiceImpl) Update(ctx context.Context, req expense.UpdateExpenseRequest) (expense.Expense, error) {
	if err := req.Validate(); err != nil {
		return expense.Expense{}, err
	}

	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return expense.Expense{}, err
	}
	if current.Status != expense.StatusPending {
		return expense.Expense{}, expense.ErrNotEditable
	}

	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.Category != nil {
		current.Category = req.Category
	}
	if req.Amount != nil {
		current.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		d, err := time.Parse("2006-01-02", *req.ExpenseDate)
		if err == nil {
			current.ExpenseDate = d
		}
	}

	updated, err := s.ExpenseRepository.Update(ctx, current)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to update expense: %w", err)
	}
	return updated, nil
}

// Delete implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Delete(ctx context.Context, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != expense.StatusPending {
		return expense.ErrNotEditable
	}

	if err := s.ExpenseRepository.Delete(ctx, id); err != nil {
		return err
	}
	if current.ReceiptPath != nil {
		_ = s.fileService.DeleteFile(ctx, *current.ReceiptPath)
	}
	return nil
}

func (s *ExpenseServiceImpl) decide(ctx context.Context, id string, deciderID string, status expense.Status, note *string) (expense.Expense, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return expense.Expense{}, err
	}
	if !current.CanDecide() {
		return expense.Expense{}, expense.ErrAlreadyDecided
	}

	now := time.Now()
	current.Status = status
	current.DecidedBy = &deciderID
	current.DecidedAt = &now
	current.DecisionNote = note

	updated, err := s.ExpenseRepository.Update(ctx, current)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to decide expense: %w", err)
	}
	return updated, nil
}

// Approve implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Approve(ctx context.Context, id string, deciderID string, req expense.DecideExpenseRequest) (expense.Expense, error) {
	return s.decide(ctx, id, deciderID, expense.StatusApproved, req.Note)
}

// Reject implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Reject(ctx context.Context, id string, deciderID string, req expense.DecideExpenseRequest) (expense.Expense, error) {
	return s.decide(ctx, id, deciderID, expense.StatusRejected, req.Note)
}

// UploadReceipt implements expense.ExpenseService. A new receipt replaces the
// previous one.
func (s *ExpenseServiceImpl) UploadReceipt(ctx context.Context, id string, contentType string, fileReader io.Reader) (expense.Expense, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return expense.Expense{}, err
	}

	filename := "receipt" + extensionFor(contentType)
	path, err := s.fileService.UploadExpenseReceipt(ctx, id, fileReader, filename)
	if err != nil {
		return expense.Expense{}, err
	}

	previous := current.ReceiptPath
	current.ReceiptPath = &path

	updated, err := s.ExpenseRepository.Update(ctx, current)
	if err != nil {
		_ = s.fileService.DeleteFile(ctx, path)
		return expense.Expense{}, fmt.Errorf("failed to attach receipt: %w", err)
	}

	if previous != nil {
		_ = s.fileService.DeleteFile(ctx, *previous)
	}
	return updated, nil
}

// DownloadReceipt implements expense.ExpenseService.
func (s *ExpenseServiceImpl) DownloadReceipt(ctx context.Context, id string) (expense.Expense, io.ReadCloser, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return expense.Expense{}, nil, err
	}
	if current.ReceiptPath == nil {
		return expense.Expense{}, nil, expense.ErrReceiptNotFound
	}

	reader, err := s.fileService.Download(ctx, *current.ReceiptPath)
	if err != nil {
		return expense.Expense{}, nil, fmt.Errorf("failed to open receipt: %w", err)
	}
	return current, reader, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
