package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billpay/internal/storage"
)

var seedNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func fakeHash(password string) (string, error) {
	return "hash:" + password, nil
}

func newSeededStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	seeded, err := store.Seed(context.Background(), fakeHash, seedNow)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if !seeded {
		t.Fatal("Expected a fresh database to be seeded")
	}
	return store
}

func TestSeed(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	t.Run("second seed is a no-op", func(t *testing.T) {
		seeded, err := store.Seed(ctx, fakeHash, seedNow)
		if err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
		if seeded {
			t.Error("Expected seed to skip a populated database")
		}
	})

	t.Run("tables are populated", func(t *testing.T) {
		users, _ := store.ListUsers(ctx)
		utilities, _ := store.ListUtilities(ctx)
		bills, _ := store.ListBills(ctx)
		payments, _ := store.ListPayments(ctx)
		if len(users) != 5 || len(utilities) != 4 || len(bills) != 8 || len(payments) != 1 {
			t.Errorf("Unexpected counts: users=%d utilities=%d bills=%d payments=%d",
				len(users), len(utilities), len(bills), len(payments))
		}
		if users[0].PasswordHash != "hash:password123" {
			t.Errorf("Expected hashed password, got %q", users[0].PasswordHash)
		}
	})

	t.Run("bills carry utility details and relative due dates", func(t *testing.T) {
		bills, err := store.BillsByUser(ctx, 1)
		if err != nil {
			t.Fatalf("BillsByUser failed: %v", err)
		}
		if len(bills) != 3 {
			t.Fatalf("Expected 3 bills for user 1, got %d", len(bills))
		}
		// Ordered by due date: paid electricity (-3d), gas (today), water (+5d).
		if bills[0].UtilityName != "Electricity" || bills[0].Status != "paid" {
			t.Errorf("Unexpected first bill: %+v", bills[0])
		}
		if bills[1].Provider != "DEF Gas Ltd." || bills[1].DueDate != "2026-10-18" {
			t.Errorf("Unexpected second bill: %+v", bills[1])
		}
		if !bills[2].Amount.Equal(decimal.RequireFromString("45.25")) {
			t.Errorf("Expected amount 45.25, got %s", bills[2].Amount)
		}
	})
}

func TestUsers(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and defaults", func(t *testing.T) {
		user := &storage.User{Username: "erin", PasswordHash: "h", Email: "erin@example.com", Phone: "1"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID != 6 || user.Role != "user" || user.CreatedAt == "" {
			t.Errorf("Unexpected user after create: %+v", user)
		}

		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Username != "erin" {
			t.Errorf("Username mismatch: got %s", got.Username)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := store.CreateUser(ctx, &storage.User{Username: "john_doe", PasswordHash: "h", Email: "x", Phone: "x"})
		if !errors.Is(err, storage.ErrUsernameTaken) {
			t.Errorf("Expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("identity numbers", func(t *testing.T) {
		tests := []struct {
			name     string
			username string
			pan      string
			aadhaar  string
			wantErr  error
		}{
			{"stored", "priya", "ABCDE1234F", "123456789012", nil},
			{"absent numbers do not clash", "ravi", "", "", nil},
			{"duplicate PAN", "sita", "ABCDE1234F", "", storage.ErrIdentityTaken},
			{"duplicate Aadhaar", "gita", "", "123456789012", storage.ErrIdentityTaken},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				user := &storage.User{Username: tt.username, PasswordHash: "h", Email: "x", Phone: "x", PAN: tt.pan, Aadhaar: tt.aadhaar}
				err := store.CreateUser(ctx, user)
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateUser error = %v, want %v", err, tt.wantErr)
				}
				if tt.wantErr != nil {
					return
				}
				got, err := store.GetUserByUsername(ctx, tt.username)
				if err != nil {
					t.Fatalf("GetUserByUsername failed: %v", err)
				}
				if got.PAN != tt.pan || got.Aadhaar != tt.aadhaar {
					t.Errorf("Identity mismatch: got PAN %q Aadhaar %q", got.PAN, got.Aadhaar)
				}
			})
		}
	})

	t.Run("missing user", func(t *testing.T) {
		if _, err := store.GetUserByUsername(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByID(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestPayBill(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  int64
		billID  int64
		amount  string
		wantErr error
	}{
		{"already paid", 1, 1, "120.50", storage.ErrAlreadyPaid},
		{"someone else's bill", 1, 4, "75.00", storage.ErrNotFound},
		{"wrong amount", 1, 2, "45.00", storage.ErrAmountMismatch},
		{"pays", 1, 2, "45.25", nil},
		{"cannot pay twice", 1, 2, "45.25", storage.ErrAlreadyPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := store.PayBill(ctx, tt.userID, tt.billID, decimal.RequireFromString(tt.amount), "credit_card")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PayBill error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if p.ID == 0 || p.Reference == "" || p.Status != "completed" {
				t.Errorf("Unexpected payment: %+v", p)
			}
		})
	}

	payments, _ := store.ListPayments(ctx)
	if len(payments) != 2 {
		t.Errorf("Expected 2 payments after one successful PayBill, got %d", len(payments))
	}
}

func TestPayBills(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	t.Run("all or nothing", func(t *testing.T) {
		// Bill 1 is already paid, so bill 3 must stay pending too.
		_, err := store.PayBills(ctx, 1, []int64{3, 1}, "card")
		if !errors.Is(err, storage.ErrAlreadyPaid) {
			t.Fatalf("Expected ErrAlreadyPaid, got %v", err)
		}
		bills, _ := store.BillsByUser(ctx, 1)
		for _, b := range bills {
			if b.ID == 3 && b.Status != "pending" {
				t.Errorf("Bill 3 should still be pending, got %s", b.Status)
			}
		}
	})

	t.Run("pays every bill", func(t *testing.T) {
		payments, err := store.PayBills(ctx, 1, []int64{2, 3}, "card")
		if err != nil {
			t.Fatalf("PayBills failed: %v", err)
		}
		if len(payments) != 2 {
			t.Fatalf("Expected 2 payments, got %d", len(payments))
		}
		total := payments[0].Amount.Add(payments[1].Amount)
		if !total.Equal(decimal.RequireFromString("105.25")) {
			t.Errorf("Expected total 105.25, got %s", total)
		}
		bills, _ := store.BillsByUser(ctx, 1)
		for _, b := range bills {
			if b.Status != "paid" {
				t.Errorf("Bill %d should be paid, got %s", b.ID, b.Status)
			}
		}
	})
}

func TestRemindersByUser(t *testing.T) {
	store := newSeededStore(t)

	reminders, err := store.RemindersByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("RemindersByUser failed: %v", err)
	}
	if len(reminders) != 1 || reminders[0].Date != "2026-10-22" {
		t.Errorf("Unexpected reminders: %+v", reminders)
	}
}
