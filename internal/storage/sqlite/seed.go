package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PasswordHasher turns a plain password into a stored hash.
type PasswordHasher func(password string) (string, error)

type seedUser struct {
	username, password, email, phone, role string
}

type seedBill struct {
	userID, utilityID int64
	amount            string
	dueInDays         int
	paid              bool
}

var (
	seedUsers = []seedUser{
		{"john_doe", "password123", "john@example.com", "9876543210", "user"},
		{"alice_smith", "adminpass", "alice@example.com", "9876543211", "admin"},
		{"bob_jones", "password123", "bob@example.com", "9876543212", "user"},
		{"carol_white", "password123", "carol@example.com", "9876543213", "user"},
		{"david_black", "password123", "david@example.com", "9876543214", "user"},
	}

	seedUtilities = [][3]string{
		{"Electricity", "Electricity supply for the city", "XYZ Power Co."},
		{"Water", "Water supply for households", "ABC Water Works"},
		{"Water", "Water supply for households", "DEF Water Solutions"},
		{"Gas", "Natural gas supply for homes", "DEF Gas Ltd."},
	}

	seedBills = []seedBill{
		{1, 1, "120.50", -3, true},
		{1, 2, "45.25", 5, false},
		{1, 4, "60.00", 0, false},
		{2, 2, "75.00", 12, false},
		{2, 1, "100.00", 30, false},
		{3, 3, "60.00", -2, false},
		{4, 1, "50.00", 8, false},
		{5, 2, "90.00", 6, false},
	}

	seedReminders = []struct {
		userID  int64
		message string
		inDays  int
	}{
		{1, "Pay water bill before it is due", 4},
		{2, "Pay water bill by the due date", 11},
		{3, "Gas bill is overdue", -1},
	}
)

// Seed fills an empty database with demo users, utilities, bills, one payment and
// reminders. Due dates are relative to now. It reports whether anything was inserted.
func (s *SQLiteStore) Seed(ctx context.Context, hash PasswordHasher, now time.Time) (bool, error) {
	var users int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if users > 0 {
		return false, nil
	}

	hashes := make([]string, len(seedUsers))
	for i, u := range seedUsers {
		h, err := hash(u.password)
		if err != nil {
			return false, fmt.Errorf("failed to hash password for %s: %w", u.username, err)
		}
		hashes[i] = h
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := now.UTC().Format(timeLayout)
	date := func(days int) string { return now.AddDate(0, 0, days).Format(time.DateOnly) }

	for i, u := range seedUsers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, password_hash, email, phone_number, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			u.username, hashes[i], u.email, u.phone, u.role, created,
		); err != nil {
			return false, fmt.Errorf("failed to seed user %s: %w", u.username, err)
		}
	}

	for _, u := range seedUtilities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO utilities (name, description, provider_name, created_at) VALUES (?, ?, ?, ?)`,
			u[0], u[1], u[2], created,
		); err != nil {
			return false, fmt.Errorf("failed to seed utility %s: %w", u[0], err)
		}
	}

	for _, b := range seedBills {
		status := billPending
		if b.paid {
			status = billPaid
		}
		amount := decimal.RequireFromString(b.amount)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO bills (user_id, utility_id, amount, due_date, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			b.userID, b.utilityID, amount, date(b.dueInDays), status, created,
		)
		if err != nil {
			return false, fmt.Errorf("failed to seed bill: %w", err)
		}
		if !b.paid {
			continue
		}
		billID, err := res.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("failed to read seeded bill id: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO payments (bill_id, user_id, amount, payment_method, status, reference, transaction_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			billID, b.userID, amount, "credit_card", paymentCompleted, fmt.Sprintf("seed-%d", billID), created,
		); err != nil {
			return false, fmt.Errorf("failed to seed payment: %w", err)
		}
	}

	for _, r := range seedReminders {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reminders (user_id, message, reminder_date, created_at) VALUES (?, ?, ?, ?)`,
			r.userID, r.message, date(r.inDays), created,
		); err != nil {
			return false, fmt.Errorf("failed to seed reminder: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}
