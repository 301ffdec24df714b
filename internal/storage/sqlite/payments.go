package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billpay/internal/storage"
)

const (
	billPending      = "pending"
	billPaid         = "paid"
	paymentCompleted = "completed"
)

// PayBill records a payment for one pending bill and marks it paid.
func (s *SQLiteStore) PayBill(ctx context.Context, userID, billID int64, amount decimal.Decimal, method string) (*storage.Payment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := s.payInTx(ctx, tx, userID, billID, &amount, method)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

// PayBills pays every listed bill at its own amount, or none of them.
func (s *SQLiteStore) PayBills(ctx context.Context, userID int64, billIDs []int64, method string) ([]storage.Payment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	payments := make([]storage.Payment, 0, len(billIDs))
	for _, id := range billIDs {
		p, err := s.payInTx(ctx, tx, userID, id, nil, method)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return payments, nil
}

// payInTx pays one bill inside tx. A nil amount means "the bill's amount".
func (s *SQLiteStore) payInTx(ctx context.Context, tx *sql.Tx, userID, billID int64, amount *decimal.Decimal, method string) (*storage.Payment, error) {
	var (
		billAmount decimal.Decimal
		status     string
	)
	err := tx.QueryRowContext(ctx,
		"SELECT amount, status FROM bills WHERE bill_id = ? AND user_id = ?",
		billID, userID,
	).Scan(&billAmount, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %d: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if status != billPending {
		return nil, fmt.Errorf("bill %d: %w", billID, storage.ErrAlreadyPaid)
	}
	if amount != nil && !amount.Equal(billAmount) {
		return nil, fmt.Errorf("bill %d: %w: expected %s", billID, storage.ErrAmountMismatch, billAmount.StringFixed(2))
	}

	if _, err := tx.ExecContext(ctx, "UPDATE bills SET status = ? WHERE bill_id = ?", billPaid, billID); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	p := &storage.Payment{
		BillID:          billID,
		UserID:          userID,
		Amount:          billAmount,
		Method:          method,
		Status:          paymentCompleted,
		Reference:       uuid.NewString(),
		TransactionDate: s.timestamp(),
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO payments (bill_id, user_id, amount, payment_method, status, reference, transaction_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.BillID, p.UserID, p.Amount, p.Method, p.Status, p.Reference, p.TransactionDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read payment id: %w", err)
	}
	return p, nil
}

// ListPayments returns every payment ordered by ID.
func (s *SQLiteStore) ListPayments(ctx context.Context) ([]storage.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payment_id, bill_id, user_id, amount, payment_method, status, reference, transaction_date
		 FROM payments ORDER BY payment_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []storage.Payment
	for rows.Next() {
		var p storage.Payment
		if err := rows.Scan(&p.ID, &p.BillID, &p.UserID, &p.Amount, &p.Method, &p.Status, &p.Reference, &p.TransactionDate); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
