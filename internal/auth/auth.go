// Package auth implements staff authentication for the J-Bank API: bcrypt
// password accounts and JWT session tokens.
//
// Only camp staff authenticate; participants are ledger entities, not users.
package auth

import (
	"context"

	"github.com/Junio-R-org/J-Bank/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The abstraction allows swapping auth methods (password, SSO, ...) without
// changing the service layer.
type Authenticator interface {
	// Register creates a new staff account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the account if valid.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks whether the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
