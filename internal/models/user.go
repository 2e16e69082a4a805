package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a camp staff account.
//
// Staff accounts exist only to authenticate against the HTTP API; they are
// not ledger entities and never appear in participant balances or
// transactions.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the staff member's email address (unique). Used for login.
	Email string

	// DisplayName is the name shown in audit logs.
	DisplayName string

	// PasswordHash is the bcrypt hash of the password. Never exposed.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a staff account with a generated ID and current timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
