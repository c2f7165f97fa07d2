package model

import "time"

// RoleAdmin is the role granted to an account's creator.
const RoleAdmin = "ADMIN"

// Association is an employee-account relation carrying the employee's role on
// that account.
type Association struct {
	ID         string    `json:"id" db:"id"`
	EmployeeID string    `json:"employeeId" db:"employeeId"`
	AccountID  string    `json:"accountId" db:"accountId"`
	Role       string    `json:"role" db:"role"`
	CreatedAt  time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updatedAt"`
}

// AssociationDetail is an association joined with account and employee
// display attributes, returned by the association detail endpoint.
type AssociationDetail struct {
	Association
	AccountName string `json:"accountName" db:"accountName"`
	Tenant      string `json:"tenant" db:"tenant"`
	Region      string `json:"region" db:"region"`
	Firstname   string `json:"firstname" db:"firstname"`
	Lastname    string `json:"lastname" db:"lastname"`
	Email       string `json:"email" db:"email"`
}

// EmployeeAccount is one row of an employee's account listing: the account
// joined with the association's role and timestamps.
type EmployeeAccount struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Tenant    string    `json:"tenant" db:"tenant"`
	Region    string    `json:"region" db:"region"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updatedAt"`
}

// GrantedAccount is one row of the login listing: the account joined with the
// association's role, partner, and slug, embedded into the issued token.
type GrantedAccount struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Partner   string    `json:"partner" db:"partner"`
	Account   string    `json:"account" db:"account"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"associationCreatedAt" db:"createdAt"`
	UpdatedAt time.Time `json:"associationUpdatedAt" db:"updatedAt"`
}

// AccountEmployee is one row of an account's employee listing: the employee
// joined with the association's role and timestamps.
type AccountEmployee struct {
	ID          string    `json:"id" db:"id"`
	Locale      string    `json:"locale" db:"locale"`
	Username    string    `json:"username" db:"username"`
	Firstname   string    `json:"firstname" db:"firstname"`
	Lastname    string    `json:"lastname" db:"lastname"`
	Email       string    `json:"email" db:"email"`
	PhonePrefix string    `json:"phonePrefix" db:"phonePrefix"`
	Phone       string    `json:"phone" db:"phone"`
	Active      bool      `json:"active" db:"active"`
	Role        string    `json:"role" db:"role"`
	CreatedAt   time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updatedAt"`
}
