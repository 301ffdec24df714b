package auth

import (
	"context"

	"github.com/mmynk/billpay/internal/storage"
)

// Registration is the data needed to open an account.
type Registration struct {
	Username string
	Email    string
	Phone    string
	Password string

	// Optional identity numbers. PAN is normalized to upper case.
	PAN     string
	Aadhaar string
}

// Authenticator defines the interface for authentication implementations.
// The HTTP handlers depend on it rather than on bcrypt directly.
type Authenticator interface {
	// Register creates a new user account.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, reg Registration) (*storage.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, username, password string) (*storage.User, error)
}
