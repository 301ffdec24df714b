package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/billpay/internal/storage"
)

const billSelect = `
	SELECT b.bill_id, b.user_id, b.utility_id, b.amount, b.due_date, b.status, b.created_at,
	       u.name, u.provider_name
	FROM bills b
	JOIN utilities u ON b.utility_id = u.utility_id`

// BillsByUser returns the user's bills with utility details, earliest due first.
func (s *SQLiteStore) BillsByUser(ctx context.Context, userID int64) ([]storage.Bill, error) {
	return s.queryBills(ctx, billSelect+` WHERE b.user_id = ? ORDER BY b.due_date ASC, b.bill_id ASC`, userID)
}

// ListBills returns every bill ordered by ID.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]storage.Bill, error) {
	return s.queryBills(ctx, billSelect+` ORDER BY b.bill_id`)
}

func (s *SQLiteStore) queryBills(ctx context.Context, query string, args ...any) ([]storage.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []storage.Bill
	for rows.Next() {
		var b storage.Bill
		if err := rows.Scan(&b.ID, &b.UserID, &b.UtilityID, &b.Amount, &b.DueDate, &b.Status, &b.CreatedAt,
			&b.UtilityName, &b.Provider); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// ListUtilities returns every utility ordered by ID.
func (s *SQLiteStore) ListUtilities(ctx context.Context) ([]storage.Utility, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT utility_id, name, description, provider_name, created_at FROM utilities ORDER BY utility_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list utilities: %w", err)
	}
	defer rows.Close()

	var utilities []storage.Utility
	for rows.Next() {
		var u storage.Utility
		if err := rows.Scan(&u.ID, &u.Name, &u.Description, &u.Provider, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan utility: %w", err)
		}
		utilities = append(utilities, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate utilities: %w", err)
	}
	return utilities, nil
}

// RemindersByUser returns the user's reminders, soonest first.
func (s *SQLiteStore) RemindersByUser(ctx context.Context, userID int64) ([]storage.Reminder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT reminder_id, user_id, message, reminder_date, created_at
		 FROM reminders WHERE user_id = ? ORDER BY reminder_date ASC, reminder_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []storage.Reminder
	for rows.Next() {
		var r storage.Reminder
		if err := rows.Scan(&r.ID, &r.UserID, &r.Message, &r.Date, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}
	return reminders, nil
}
