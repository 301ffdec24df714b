// Package storage provides abstractions for the development backend's persistent data.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUsernameTaken  = errors.New("username already registered")
	ErrIdentityTaken  = errors.New("identity number already registered")
	ErrAlreadyPaid    = errors.New("bill already paid")
	ErrAmountMismatch = errors.New("amount does not match bill")
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	Phone        string
	// PAN and Aadhaar are optional identity numbers; empty means not provided.
	PAN       string
	Aadhaar   string
	Role      string
	CreatedAt string
}

// Utility is a billing utility and its provider.
type Utility struct {
	ID          int64
	Name        string
	Description string
	Provider    string
	CreatedAt   string
}

// Bill is a bill joined with its utility's name and provider.
type Bill struct {
	ID          int64
	UserID      int64
	UtilityID   int64
	Amount      decimal.Decimal
	DueDate     string
	Status      string
	CreatedAt   string
	UtilityName string
	Provider    string
}

// Payment is a recorded payment against one bill.
type Payment struct {
	ID              int64
	BillID          int64
	UserID          int64
	Amount          decimal.Decimal
	Method          string
	Status          string
	Reference       string
	TransactionDate string
}

// Reminder is a dated message for a user.
type Reminder struct {
	ID        int64
	UserID    int64
	Message   string
	Date      string
	CreatedAt string
}

// Store defines the storage operations the backend's handlers need.
// This abstraction keeps the handlers independent of the database engine.
type Store interface {
	// CreateUser persists a new user and sets user.ID.
	// Returns ErrUsernameTaken if the username exists.
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)

	BillsByUser(ctx context.Context, userID int64) ([]Bill, error)
	RemindersByUser(ctx context.Context, userID int64) ([]Reminder, error)

	// PayBill marks one of the user's pending bills paid and records the payment, atomically.
	// amount must equal the bill amount.
	PayBill(ctx context.Context, userID, billID int64, amount decimal.Decimal, method string) (*Payment, error)

	// PayBills pays several of the user's pending bills in one transaction. Either every
	// bill is paid or none is.
	PayBills(ctx context.Context, userID int64, billIDs []int64, method string) ([]Payment, error)

	ListUsers(ctx context.Context) ([]User, error)
	ListUtilities(ctx context.Context) ([]Utility, error)
	ListBills(ctx context.Context) ([]Bill, error)
	ListPayments(ctx context.Context) ([]Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
