package api

import (
	"context"
	"fmt"
	"net/http"
	"slices"
)

// AdminTables are the tables the admin endpoints expose, in display order.
var AdminTables = []string{"users", "bills", "payments", "utilities"}

// AdminCredentials is the fixed username/password pair the admin endpoints expect in the
// X-USERNAME and X-PASSWORD headers. The backend is assumed to enforce them; holding
// them client-side grants nothing by itself.
type AdminCredentials struct {
	Username string
	Password string
}

// AdminList fetches one admin table as raw rows.
func (c *Client) AdminList(ctx context.Context, creds AdminCredentials, table string) ([]map[string]any, error) {
	if !slices.Contains(AdminTables, table) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	h := http.Header{}
	h.Set("X-USERNAME", creds.Username)
	h.Set("X-PASSWORD", creds.Password)

	var resp map[string][]map[string]any
	if err := c.do(ctx, http.MethodGet, "/api/admin/"+table, h, nil, &resp); err != nil {
		return nil, err
	}
	return resp[table], nil
}
