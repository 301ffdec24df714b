// Package admin loads the aggregate tables shown to the administrator.
//
// The admin pair is sent to the backend in the X-USERNAME and X-PASSWORD headers and the
// backend decides. Matches only routes a login to this view; it protects nothing.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/billpay/internal/api"
)

// Backend is the admin subset of the REST API.
type Backend interface {
	AdminList(ctx context.Context, creds api.AdminCredentials, table string) ([]map[string]any, error)
}

var _ Backend = (*api.Client)(nil)

// Table is one admin listing with its columns in display order.
type Table struct {
	Name    string
	Columns []string
	Rows    []map[string]any
}

// View fetches admin tables with a fixed credential pair.
type View struct {
	backend Backend
	creds   api.AdminCredentials
	logger  *slog.Logger
}

// New creates a View. A nil logger falls back to slog.Default.
func New(backend Backend, creds api.AdminCredentials, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	return &View{backend: backend, creds: creds, logger: logger}
}

// Matches reports whether username/password is the configured admin pair.
func Matches(creds api.AdminCredentials, username, password string) bool {
	return creds.Username != "" && username == creds.Username && password == creds.Password
}

// Load fetches the named tables concurrently, or all of api.AdminTables when none are
// named. Tables come back in the order requested. Any failure fails the whole load.
func (v *View) Load(ctx context.Context, tables ...string) ([]Table, error) {
	if len(tables) == 0 {
		tables = api.AdminTables
	}
	for _, name := range tables {
		if !slices.Contains(api.AdminTables, name) {
			return nil, fmt.Errorf("%w: %q", api.ErrUnknownTable, name)
		}
	}

	out := make([]Table, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range tables {
		g.Go(func() error {
			rows, err := v.backend.AdminList(gctx, v.creds, name)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", name, err)
			}
			out[i] = Table{Name: name, Columns: Columns(rows), Rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		v.logger.Error("Admin load failed", "error", err)
		return nil, err
	}

	v.logger.Info("Admin tables loaded", "tables", len(out))
	return out, nil
}

// Columns returns the union of keys across rows, sorted, with id-like keys first.
func Columns(rows []map[string]any) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, row := range rows {
		for k := range row {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	slices.SortFunc(cols, func(a, b string) int {
		ai, bi := isID(a), isID(b)
		switch {
		case ai && !bi:
			return -1
		case bi && !ai:
			return 1
		}
		return strings.Compare(a, b)
	})
	return cols
}

func isID(col string) bool {
	return col == "id" || strings.HasSuffix(col, "_id")
}

// Header renders a column key as a table header: "due_date" becomes "DUE DATE".
func Header(col string) string {
	return strings.ToUpper(strings.ReplaceAll(col, "_", " "))
}

// Cell renders one value for display. Missing values render empty.
func Cell(row map[string]any, col string) string {
	switch v := row[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprint(v)
	}
}
