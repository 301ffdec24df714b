package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"github.com/mmynk/billpay/internal/storage"
)

const userColumns = `user_id, username, password_hash, email, phone_number, pan, aadhaar, role, created_at`

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *storage.User) error {
	if user.Role == "" {
		user.Role = "user"
	}
	if user.CreatedAt == "" {
		user.CreatedAt = s.timestamp()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, email, phone_number, pan, aadhaar, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.PasswordHash, user.Email, user.Phone,
		nullIfEmpty(user.PAN), nullIfEmpty(user.Aadhaar), user.Role, user.CreatedAt,
	)
	if column, ok := uniqueViolation(err); ok {
		switch column {
		case "users.pan", "users.aadhaar":
			return fmt.Errorf("%w: %s", storage.ErrIdentityTaken, strings.TrimPrefix(column, "users."))
		default:
			return fmt.Errorf("%w: %s", storage.ErrUsernameTaken, user.Username)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id
	return nil
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*storage.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*storage.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// ListUsers returns every user ordered by ID.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]storage.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []storage.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*storage.User, error) {
	user := &storage.User{}
	var pan, aadhaar sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Phone,
		&pan,
		&aadhaar,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.PAN = pan.String
	user.Aadhaar = aadhaar.String
	return user, nil
}

// uniqueViolation reports whether err is a UNIQUE constraint failure and, if so,
// which table.column caused it.
func uniqueViolation(err error) (string, bool) {
	var sqlErr *msqlite.Error
	if !errors.As(err, &sqlErr) || sqlErr.Code() != sqlitelib.SQLITE_CONSTRAINT_UNIQUE {
		return "", false
	}
	msg := sqlErr.Error()
	if i := strings.Index(msg, "UNIQUE constraint failed: "); i >= 0 {
		column := msg[i+len("UNIQUE constraint failed: "):]
		if j := strings.IndexAny(column, " ,("); j >= 0 {
			column = column[:j]
		}
		return column, true
	}
	return "", true
}

// nullIfEmpty stores optional identity numbers as NULL so that UNIQUE only
// applies to values that were actually given.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
