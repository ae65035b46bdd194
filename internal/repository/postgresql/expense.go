package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/expense"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/database"
)

const expenseColumns = `id, reference, title, category, amount, currency, status, expense_date,
		submitted_by, decided_by, decided_at, decision_note, receipt_path, created_at, updated_at`

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

func scanExpense(row interface{ Scan(dest ...any) error }) (expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(
		&e.ID,
		&e.Reference,
		&e.Title,
		&e.Category,
		&e.Amount,
		&e.Currency,
		&e.Status,
		&e.ExpenseDate,
		&e.SubmittedBy,
		&e.DecidedBy,
		&e.DecidedAt,
		&e.DecisionNote,
		&e.ReceiptPath,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// List implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) List(ctx context.Context, req expense.ListExpensesRequest) (expense.ListResult, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR reference ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+req.Search+"%")
		argIdx++
	}
	if req.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, req.Status)
		argIdx++
	}
	if req.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, req.Category)
		argIdx++
	}
	if req.From != "" {
		conditions = append(conditions, fmt.Sprintf("expense_date >= $%d", argIdx))
		args = append(args, req.From)
		argIdx++
	}
	if req.To != "" {
		conditions = append(conditions, fmt.Sprintf("expense_date <= $%d", argIdx))
		args = append(args, req.To)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM expenses WHERE %s`, where), args...).Scan(&total); err != nil {
		return expense.ListResult{}, fmt.Errorf("count expenses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, expenseColumns, where, req.SortBy, strings.ToUpper(req.SortDir), argIdx, argIdx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return expense.ListResult{}, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var items []expense.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return expense.ListResult{}, fmt.Errorf("scan expense: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return expense.ListResult{}, err
	}

	return expense.ListResult{Items: items, Total: total}, nil
}

// GetByID implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	return scanExpense(q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
}

// Create implements expense.ExpenseRepository. The reference is generated by
// the database sequence so concurrent submissions never collide.
func (r *expenseRepositoryImpl) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expenses (reference, title, category, amount, currency, status, expense_date, submitted_by)
		VALUES ('EXP-' || to_char(nextval('expense_reference_seq'), 'FM000000'), $1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + expenseColumns

	return scanExpense(q.QueryRow(ctx, query,
		e.Title,
		e.Category,
		e.Amount,
		e.Currency,
		e.Status,
		e.ExpenseDate,
		e.SubmittedBy,
	))
}

// Update implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Update(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expenses
		SET title = $1, category = $2, amount = $3, currency = $4, status = $5, expense_date = $6,
			decided_by = $7, decided_at = $8, decision_note = $9, receipt_path = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING ` + expenseColumns

	return scanExpense(q.QueryRow(ctx, query,
		e.Title,
		e.Category,
		e.Amount,
		e.Currency,
		e.Status,
		e.ExpenseDate,
		e.DecidedBy,
		e.DecidedAt,
		e.DecisionNote,
		e.ReceiptPath,
		e.ID,
	))
}

// Delete implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}
