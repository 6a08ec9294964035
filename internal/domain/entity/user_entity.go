package entity

import (
	"time"
)

// User is the aggregate root for the account domain. Email is the login
// identifier; there is no username. Passwords are stored as bcrypt hashes
// in Password.
type User struct {
	ID          string
	Email       string
	Password    string
	Name        string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
