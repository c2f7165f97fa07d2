package model

import "time"

// AccountAPIKey binds an API key to an account for tenant-level access. The
// key itself is the credential; requests present it via the token query
// parameter or the x-womni-token header.
type AccountAPIKey struct {
	ID        string    `json:"id" db:"id"`
	AccountID string    `json:"accountId" db:"accountId"`
	APIKey    string    `json:"-" db:"apiKey"`
	Label     string    `json:"label" db:"label"`
	CreatedAt time.Time `json:"createdAt" db:"createdAt"`
}
