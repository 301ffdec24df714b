package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billpay/internal/api"
)

type fakeBackend struct {
	mu     sync.Mutex
	tables map[string][]map[string]any
	errs   map[string]error
	seen   []api.AdminCredentials
}

func (f *fakeBackend) AdminList(_ context.Context, creds api.AdminCredentials, table string) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, creds)
	if err := f.errs[table]; err != nil {
		return nil, err
	}
	return f.tables[table], nil
}

var creds = api.AdminCredentials{Username: "admin", Password: "admin123"}

func TestLoad(t *testing.T) {
	backend := &fakeBackend{tables: map[string][]map[string]any{
		"users":     {{"user_id": json.Number("1"), "username": "john_doe"}},
		"bills":     {{"bill_id": json.Number("1"), "amount": json.Number("100"), "status": "Pending"}},
		"payments":  {},
		"utilities": {{"utility_id": json.Number("1"), "utility_name": "Electricity"}},
	}}
	v := New(backend, creds, nil)

	tables, err := v.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 4)
	for i, name := range api.AdminTables {
		assert.Equal(t, name, tables[i].Name)
	}
	assert.Equal(t, []string{"user_id", "username"}, tables[0].Columns)
	assert.Equal(t, []string{"bill_id", "amount", "status"}, tables[1].Columns)
	assert.Empty(t, tables[2].Rows)
	require.Len(t, backend.seen, 4)
	for _, c := range backend.seen {
		assert.Equal(t, creds, c)
	}
}

func TestLoad_Subset(t *testing.T) {
	backend := &fakeBackend{tables: map[string][]map[string]any{
		"bills": {{"bill_id": 1}},
	}}
	tables, err := New(backend, creds, nil).Load(context.Background(), "bills")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "bills", tables[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown table", func(t *testing.T) {
		_, err := New(&fakeBackend{}, creds, nil).Load(context.Background(), "secrets")
		assert.ErrorIs(t, err, api.ErrUnknownTable)
	})

	t.Run("backend rejects credentials", func(t *testing.T) {
		backend := &fakeBackend{errs: map[string]error{
			"payments": &api.Error{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"},
		}}
		tables, err := New(backend, creds, nil).Load(context.Background())
		assert.Nil(t, tables)
		assert.ErrorIs(t, err, api.ErrUnauthorized)
	})
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		creds    api.AdminCredentials
		user     string
		password string
		want     bool
	}{
		{"exact pair", creds, "admin", "admin123", true},
		{"wrong password", creds, "admin", "nope", false},
		{"wrong user", creds, "john_doe", "admin123", false},
		{"admin disabled", api.AdminCredentials{}, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.creds, tt.user, tt.password))
		})
	}
}

func TestColumns(t *testing.T) {
	rows := []map[string]any{
		{"status": "Paid", "bill_id": 1, "amount": 10},
		{"due_date": "2025-12-15", "user_id": 2},
	}
	assert.Equal(t, []string{"bill_id", "user_id", "amount", "due_date", "status"}, Columns(rows))
	assert.Empty(t, Columns(nil))
}

func TestHeaderAndCell(t *testing.T) {
	assert.Equal(t, "DUE DATE", Header("due_date"))
	assert.Equal(t, "ID", Header("id"))

	row := map[string]any{
		"n":    json.Number("12.50"),
		"s":    "Pending",
		"b":    true,
		"f":    3.5,
		"null": nil,
	}
	assert.Equal(t, "12.50", Cell(row, "n"))
	assert.Equal(t, "Pending", Cell(row, "s"))
	assert.Equal(t, "yes", Cell(row, "b"))
	assert.Equal(t, "3.5", Cell(row, "f"))
	assert.Equal(t, "", Cell(row, "null"))
	assert.Equal(t, "", Cell(row, "missing"))
}
