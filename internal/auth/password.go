package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/billpay/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrMissingFields      = errors.New("missing required fields: username, email, phone_number, password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidPAN         = errors.New("invalid PAN format")
	ErrInvalidAadhaar     = errors.New("invalid Aadhaar format")
	ErrIdentityExists     = errors.New("PAN or Aadhaar already registered")
)

const minPasswordLength = 8

var (
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern = regexp.MustCompile(`^[0-9]{12}$`)
)

// UserStorage defines the user persistence operations the authenticator needs.
type UserStorage interface {
	CreateUser(ctx context.Context, user *storage.User) error
	GetUserByUsername(ctx context.Context, username string) (*storage.User, error)
}

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// HashPassword hashes a password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Register validates reg, hashes the password and stores the user.
func (a *PasswordAuthenticator) Register(ctx context.Context, reg Registration) (*storage.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Phone = strings.TrimSpace(reg.Phone)
	if reg.Username == "" || reg.Email == "" || reg.Phone == "" || reg.Password == "" {
		return nil, ErrMissingFields
	}
	if len(reg.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	reg.PAN = strings.ToUpper(strings.TrimSpace(reg.PAN))
	reg.Aadhaar = strings.TrimSpace(reg.Aadhaar)
	if reg.PAN != "" && !panPattern.MatchString(reg.PAN) {
		return nil, ErrInvalidPAN
	}
	if reg.Aadhaar != "" && !aadhaarPattern.MatchString(reg.Aadhaar) {
		return nil, ErrInvalidAadhaar
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &storage.User{
		Username:     reg.Username,
		PasswordHash: string(hashed),
		Email:        reg.Email,
		Phone:        reg.Phone,
		PAN:          reg.PAN,
		Aadhaar:      reg.Aadhaar,
	}
	if err := a.storage.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrUsernameTaken):
			return nil, ErrUsernameExists
		case errors.Is(err, storage.ErrIdentityTaken):
			return nil, ErrIdentityExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, password string) (*storage.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
