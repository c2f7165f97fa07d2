package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/womni/backoffice/internal/auth"
)

// EmployeeGrant looks up the employee's role on an account, joined with the
// account's display attributes. Returns (nil, nil) when no grant exists. The
// (employeeId, accountId) pair is unique by schema; seeing more than one row
// means the data is corrupt and is reported as an error rather than silently
// picking one.
func (s *Store) EmployeeGrant(ctx context.Context, employeeID, accountID string) (*auth.Grant, error) {
	rows := []struct {
		Role    string `db:"role"`
		Partner string `db:"partner"`
		Account string `db:"account"`
		Name    string `db:"name"`
	}{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT ea.role, a.partner, a.account, a.name
		FROM employee_account ea
		INNER JOIN account a ON a.id = ea.accountId
		WHERE ea.employeeId = ? AND ea.accountId = ?`, employeeID, accountID)
	if err != nil {
		return nil, fmt.Errorf("select grant: %w", err)
	}

	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &auth.Grant{
			Role:        rows[0].Role,
			Partner:     rows[0].Partner,
			AccountSlug: rows[0].Account,
			AccountName: rows[0].Name,
		}, nil
	default:
		return nil, fmt.Errorf("duplicate grant rows for employee %s on account %s", employeeID, accountID)
	}
}

// APIKeyBinding resolves an API key to the account it is bound to. Returns
// (nil, nil) when the key is unknown.
func (s *Store) APIKeyBinding(ctx context.Context, key string) (*auth.APIKeyBinding, error) {
	var row struct {
		ID     string `db:"id"`
		Tenant string `db:"tenant"`
		Region string `db:"region"`
		Name   string `db:"name"`
	}
	err := s.db.GetContext(ctx, &row, `
		SELECT a.id, a.tenant, a.region, a.name
		FROM account a
		INNER JOIN account_api aa ON a.id = aa.accountId
		WHERE aa.apiKey = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select api key binding: %w", err)
	}

	return &auth.APIKeyBinding{
		Tenant:      row.Tenant,
		Region:      row.Region,
		AccountID:   row.ID,
		AccountName: row.Name,
	}, nil
}
