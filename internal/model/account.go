package model

import "time"

// Account is a tenant account. The account column is a unique slug derived
// from the display name; partner identifies the reseller the account belongs
// to; tenant and region bind the account to its regional backend.
type Account struct {
	ID        string    `json:"id" db:"id"`
	Partner   string    `json:"partner" db:"partner"`
	Account   string    `json:"account" db:"account"`
	Name      string    `json:"name" db:"name"`
	Tenant    string    `json:"tenant" db:"tenant"`
	Region    string    `json:"region" db:"region"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updatedAt"`
}

// DefaultPartner is assigned to accounts created through the backoffice API.
const DefaultPartner = "nutsoft"
