package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/womni/backoffice/internal/model"
)

const employeeColumns = `id, locale, username, firstname, lastname, email,
	emailPersonal, emailPersonalStatus, phonePrefix, phone, passwd, active,
	createdAt, updatedAt`

// CreateEmployee inserts a new employee row.
func (s *Store) CreateEmployee(ctx context.Context, e *model.Employee) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employee (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Locale, e.Username, e.Firstname, e.Lastname, e.Email,
		e.EmailPersonal, e.EmailPersonalStatus, e.PhonePrefix, e.Phone,
		e.Passwd, e.Active, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetEmployee fetches an employee by ID. Returns ErrNotFound when absent.
func (s *Store) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	var e model.Employee
	err := s.db.GetContext(ctx, &e, `SELECT `+employeeColumns+` FROM employee WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// GetActiveEmployeeByEmail fetches an active employee by email, for login.
// Returns ErrNotFound when no active employee has that address.
func (s *Store) GetActiveEmployeeByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var e model.Employee
	err := s.db.GetContext(ctx, &e, `
		SELECT `+employeeColumns+` FROM employee WHERE email = ? AND active = TRUE`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return &e, nil
}

// EmailExists reports whether any employee uses the given email.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM employee WHERE email = ?`, email); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}

// PhoneExists reports whether any employee uses the given prefix+phone pair.
func (s *Store) PhoneExists(ctx context.Context, prefix, phone string) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM employee WHERE phonePrefix = ? AND phone = ?`, prefix, phone)
	if err != nil {
		return false, fmt.Errorf("check phone: %w", err)
	}
	return n > 0, nil
}

// EmployeeFilter narrows an employee search. At least one of Email or Phone
// must be set; PhonePrefix only applies together with Phone.
type EmployeeFilter struct {
	Email       string
	Phone       string
	PhonePrefix string
}

// SearchEmployees finds employees matching the filter with substring matches
// on email and phone, ordered by name, capped at 50 rows.
func (s *Store) SearchEmployees(ctx context.Context, f EmployeeFilter) ([]model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employee WHERE 1=1`
	var args []interface{}

	if f.Email != "" {
		query += ` AND email LIKE ?`
		args = append(args, "%"+f.Email+"%")
	}
	if f.Phone != "" {
		if f.PhonePrefix != "" {
			query += ` AND phonePrefix = ? AND phone LIKE ?`
			args = append(args, f.PhonePrefix, "%"+f.Phone+"%")
		} else {
			query += ` AND phone LIKE ?`
			args = append(args, "%"+f.Phone+"%")
		}
	}
	query += ` ORDER BY firstname ASC, lastname ASC LIMIT 50`

	employees := []model.Employee{}
	if err := s.db.SelectContext(ctx, &employees, query, args...); err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	return employees, nil
}
