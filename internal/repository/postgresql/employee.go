package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/employee"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/database"
)

const employeeColumns = `id, employee_code, full_name, email, contact, department, position, grade,
		status, hire_date, picture_url, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row interface{ Scan(dest ...any) error }) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.EmployeeCode,
		&e.FullName,
		&e.Email,
		&e.Contact,
		&e.Department,
		&e.Position,
		&e.Grade,
		&e.Status,
		&e.HireDate,
		&e.PictureURL,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// List implements employee.EmployeeRepository. Sort column and direction are
// validated by the request DTO before they reach the query builder.
func (r *employeeRepositoryImpl) List(ctx context.Context, req employee.ListEmployeesRequest) (employee.ListResult, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR employee_code ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+req.Search+"%")
		argIdx++
	}
	if req.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, req.Status)
		argIdx++
	}
	if req.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, req.Department)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return employee.ListResult{}, fmt.Errorf("count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, req.SortBy, strings.ToUpper(req.SortDir), argIdx, argIdx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return employee.ListResult{}, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var items []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return employee.ListResult{}, fmt.Errorf("scan employee: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return employee.ListResult{}, err
	}

	return employee.ListResult{Items: items, Total: total}, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(q.QueryRow(ctx, query, id))
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`
	return scanEmployee(q.QueryRow(ctx, query, code))
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (employee_code, full_name, email, contact, department, position, grade, status, hire_date, picture_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + employeeColumns

	return scanEmployee(q.QueryRow(ctx, query,
		e.EmployeeCode,
		e.FullName,
		e.Email,
		e.Contact,
		e.Department,
		e.Position,
		e.Grade,
		e.Status,
		e.HireDate,
		e.PictureURL,
	))
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, email = $2, contact = $3, department = $4, position = $5,
			grade = $6, status = $7, hire_date = $8, picture_url = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING ` + employeeColumns

	return scanEmployee(q.QueryRow(ctx, query,
		e.FullName,
		e.Email,
		e.Contact,
		e.Department,
		e.Position,
		e.Grade,
		e.Status,
		e.HireDate,
		e.PictureURL,
		e.ID,
	))
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ListDocuments implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListDocuments(ctx context.Context, employeeID string) ([]employee.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, name, path, content_type, size_bytes, uploaded_at
		FROM employee_documents
		WHERE employee_id = $1
		ORDER BY uploaded_at DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []employee.Document
	for rows.Next() {
		var d employee.Document
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Name, &d.Path, &d.ContentType, &d.SizeBytes, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetDocument implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetDocument(ctx context.Context, id string) (employee.Document, error) {
	q := GetQuerier(ctx, r.db)

	var d employee.Document
	query := `
		SELECT id, employee_id, name, path, content_type, size_bytes, uploaded_at
		FROM employee_documents
		WHERE id = $1
	`
	err := q.QueryRow(ctx, query, id).Scan(&d.ID, &d.EmployeeID, &d.Name, &d.Path, &d.ContentType, &d.SizeBytes, &d.UploadedAt)
	return d, err
}

// CreateDocument implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CreateDocument(ctx context.Context, d employee.Document) (employee.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_documents (employee_id, name, path, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, name, path, content_type, size_bytes, uploaded_at
	`
	var created employee.Document
	err := q.QueryRow(ctx, query, d.EmployeeID, d.Name, d.Path, d.ContentType, d.SizeBytes).
		Scan(&created.ID, &created.EmployeeID, &created.Name, &created.Path, &created.ContentType, &created.SizeBytes, &created.UploadedAt)
	return created, err
}

// DeleteDocument implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) DeleteDocument(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employee_documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrDocumentNotFound
	}
	return nil
}

// ListPositionChanges implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListPositionChanges(ctx context.Context, employeeID string) ([]employee.PositionChange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, from_title, to_title, reason, effective_at, created_at
		FROM employee_position_changes
		WHERE employee_id = $1
		ORDER BY effective_at DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list position changes: %w", err)
	}
	defer rows.Close()

	var changes []employee.PositionChange
	for rows.Next() {
		var pc employee.PositionChange
		if err := rows.Scan(&pc.ID, &pc.EmployeeID, &pc.FromTitle, &pc.ToTitle, &pc.Reason, &pc.EffectiveAt, &pc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan position change: %w", err)
		}
		changes = append(changes, pc)
	}
	return changes, rows.Err()
}

// CreatePositionChange implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CreatePositionChange(ctx context.Context, pc employee.PositionChange) (employee.PositionChange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_position_changes (employee_id, from_title, to_title, reason, effective_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, from_title, to_title, reason, effective_at, created_at
	`
	var created employee.PositionChange
	err := q.QueryRow(ctx, query, pc.EmployeeID, pc.FromTitle, pc.ToTitle, pc.Reason, pc.EffectiveAt).
		Scan(&created.ID, &created.EmployeeID, &created.FromTitle, &created.ToTitle, &created.Reason, &created.EffectiveAt, &created.CreatedAt)
	return created, err
}
