package model

import "time"

// Employee is an administrative user of the backoffice. Passwords are stored
// as salted PBKDF2 hashes in the passwd column and never exposed.
type Employee struct {
	ID                  string    `json:"id" db:"id"`
	Locale              string    `json:"locale" db:"locale"`
	Username            string    `json:"username" db:"username"`
	Firstname           string    `json:"firstname" db:"firstname"`
	Lastname            string    `json:"lastname" db:"lastname"`
	Email               string    `json:"email" db:"email"`
	EmailPersonal       string    `json:"emailPersonal" db:"emailPersonal"`
	EmailPersonalStatus string    `json:"emailPersonalStatus" db:"emailPersonalStatus"`
	PhonePrefix         string    `json:"phonePrefix" db:"phonePrefix"`
	Phone               string    `json:"phone" db:"phone"`
	Passwd              string    `json:"-" db:"passwd"`
	Active              bool      `json:"active" db:"active"`
	CreatedAt           time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updatedAt"`
}

// Name returns the employee's display name.
func (e *Employee) Name() string {
	return e.Firstname + " " + e.Lastname
}
