package store

import "fmt"

// migrate applies the schema. Statements are idempotent and portable between
// MySQL and SQLite; column names match the existing production tables and
// must not be renamed.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS employee (
			id VARCHAR(36) PRIMARY KEY,
			locale VARCHAR(8) NOT NULL DEFAULT '',
			username VARCHAR(64) NOT NULL DEFAULT '',
			firstname VARCHAR(64) NOT NULL DEFAULT '',
			lastname VARCHAR(64) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL,
			emailPersonal VARCHAR(255) NOT NULL DEFAULT '',
			emailPersonalStatus VARCHAR(16) NOT NULL DEFAULT 'pending',
			phonePrefix VARCHAR(8) NOT NULL DEFAULT '',
			phone VARCHAR(32) NOT NULL DEFAULT '',
			passwd VARCHAR(128) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			createdAt DATETIME NOT NULL,
			updatedAt DATETIME NOT NULL,
			UNIQUE (email)
		)`,

		`CREATE TABLE IF NOT EXISTS account (
			id VARCHAR(36) PRIMARY KEY,
			partner VARCHAR(64) NOT NULL DEFAULT '',
			account VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			tenant VARCHAR(64) NOT NULL DEFAULT '',
			region VARCHAR(16) NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			createdAt DATETIME NOT NULL,
			updatedAt DATETIME NOT NULL,
			UNIQUE (account)
		)`,

		`CREATE TABLE IF NOT EXISTS employee_account (
			id VARCHAR(36) PRIMARY KEY,
			employeeId VARCHAR(36) NOT NULL,
			accountId VARCHAR(36) NOT NULL,
			role VARCHAR(32) NOT NULL,
			createdAt DATETIME NOT NULL,
			updatedAt DATETIME NOT NULL,
			UNIQUE (employeeId, accountId)
		)`,

		`CREATE TABLE IF NOT EXISTS account_api (
			id VARCHAR(36) PRIMARY KEY,
			accountId VARCHAR(36) NOT NULL,
			apiKey VARCHAR(128) NOT NULL,
			label VARCHAR(255) NOT NULL DEFAULT '',
			createdAt DATETIME NOT NULL,
			UNIQUE (apiKey)
		)`,
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
