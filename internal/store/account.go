package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/womni/backoffice/internal/model"
)

// CreateAccount inserts a new account row.
func (s *Store) CreateAccount(ctx context.Context, a *model.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account (id, partner, account, name, tenant, region, active, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Partner, a.Account, a.Name, a.Tenant, a.Region, a.Active, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetAccount fetches an account by ID. Returns ErrNotFound when absent.
func (s *Store) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	var a model.Account
	err := s.db.GetContext(ctx, &a, `
		SELECT id, partner, account, name, tenant, region, active, createdAt, updatedAt
		FROM account WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// SlugExists reports whether an account already uses the given slug.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM account WHERE account = ?`, slug); err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return n > 0, nil
}

// CreateAssociation inserts an employee-account association.
func (s *Store) CreateAssociation(ctx context.Context, a *model.Association) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employee_account (id, employeeId, accountId, role, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.EmployeeID, a.AccountID, a.Role, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert association: %w", err)
	}
	return nil
}

// GetAssociation fetches the association between an employee and an account.
// Returns ErrNotFound when no association exists.
func (s *Store) GetAssociation(ctx context.Context, employeeID, accountID string) (*model.Association, error) {
	var a model.Association
	err := s.db.GetContext(ctx, &a, `
		SELECT id, employeeId, accountId, role, createdAt, updatedAt
		FROM employee_account WHERE employeeId = ? AND accountId = ?`, employeeID, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get association: %w", err)
	}
	return &a, nil
}

// UpdateAssociationRole sets the role on an existing association and returns
// the updated row. Returns ErrNotFound when the association does not exist.
func (s *Store) UpdateAssociationRole(ctx context.Context, employeeID, accountID, role string) (*model.Association, error) {
	a, err := s.GetAssociation(ctx, employeeID, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		UPDATE employee_account SET role = ?, updatedAt = ?
		WHERE employeeId = ? AND accountId = ?`, role, now, employeeID, accountID)
	if err != nil {
		return nil, fmt.Errorf("update association: %w", err)
	}

	a.Role = role
	a.UpdatedAt = now
	return a, nil
}

// GetAssociationDetail fetches an association joined with account and
// employee display attributes. Returns ErrNotFound when absent.
func (s *Store) GetAssociationDetail(ctx context.Context, employeeID, accountID string) (*model.AssociationDetail, error) {
	var d model.AssociationDetail
	err := s.db.GetContext(ctx, &d, `
		SELECT ea.id, ea.employeeId, ea.accountId, ea.role, ea.createdAt, ea.updatedAt,
			a.name AS accountName, a.tenant, a.region,
			e.firstname, e.lastname, e.email
		FROM employee_account ea
		INNER JOIN account a ON ea.accountId = a.id
		INNER JOIN employee e ON ea.employeeId = e.id
		WHERE ea.employeeId = ? AND ea.accountId = ?`, employeeID, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get association detail: %w", err)
	}
	return &d, nil
}

// ListEmployeeAccounts lists the accounts an employee is associated with,
// ordered by account name.
func (s *Store) ListEmployeeAccounts(ctx context.Context, employeeID string) ([]model.EmployeeAccount, error) {
	accounts := []model.EmployeeAccount{}
	err := s.db.SelectContext(ctx, &accounts, `
		SELECT a.id, a.name, a.tenant, a.region, ea.role, ea.createdAt, ea.updatedAt
		FROM account a
		INNER JOIN employee_account ea ON a.id = ea.accountId
		WHERE ea.employeeId = ?
		ORDER BY a.name ASC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list employee accounts: %w", err)
	}
	return accounts, nil
}

// ListGrantedAccounts lists an employee's accounts with the fields embedded
// into issued tokens (partner, slug, role), ordered by account name.
func (s *Store) ListGrantedAccounts(ctx context.Context, employeeID string) ([]model.GrantedAccount, error) {
	accounts := []model.GrantedAccount{}
	err := s.db.SelectContext(ctx, &accounts, `
		SELECT a.id, a.name, a.partner, a.account, ea.role, ea.createdAt, ea.updatedAt
		FROM account a
		INNER JOIN employee_account ea ON a.id = ea.accountId
		WHERE ea.employeeId = ?
		ORDER BY a.name ASC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list granted accounts: %w", err)
	}
	return accounts, nil
}

// ListAccountEmployees lists the employees associated with an account,
// ordered by name.
func (s *Store) ListAccountEmployees(ctx context.Context, accountID string) ([]model.AccountEmployee, error) {
	employees := []model.AccountEmployee{}
	err := s.db.SelectContext(ctx, &employees, `
		SELECT e.id, e.locale, e.username, e.firstname, e.lastname, e.email,
			e.phonePrefix, e.phone, e.active,
			ea.role, ea.createdAt, ea.updatedAt
		FROM employee e
		INNER JOIN employee_account ea ON e.id = ea.employeeId
		WHERE ea.accountId = ?
		ORDER BY e.firstname ASC, e.lastname ASC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list account employees: %w", err)
	}
	return employees, nil
}

// CreateAPIKey binds an API key to an account.
func (s *Store) CreateAPIKey(ctx context.Context, k *model.AccountAPIKey) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account_api (id, accountId, apiKey, label, createdAt)
		VALUES (?, ?, ?, ?, ?)`,
		k.ID, k.AccountID, k.APIKey, k.Label, k.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}
