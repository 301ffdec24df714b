package server

import (
	"net/http"
)

func (s *Server) adminTable(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	ctx := r.Context()

	var (
		rows []map[string]any
		err  error
	)
	switch table {
	case "users":
		users, lerr := s.store.ListUsers(ctx)
		for _, u := range users {
			rows = append(rows, userRow(u))
		}
		err = lerr
	case "bills":
		bills, lerr := s.store.ListBills(ctx)
		for _, b := range bills {
			rows = append(rows, billRow(b))
		}
		err = lerr
	case "payments":
		payments, lerr := s.store.ListPayments(ctx)
		for _, p := range payments {
			rows = append(rows, paymentRow(p))
		}
		err = lerr
	case "utilities":
		utilities, lerr := s.store.ListUtilities(ctx)
		for _, u := range utilities {
			rows = append(rows, map[string]any{
				"utility_id":    u.ID,
				"name":          u.Name,
				"description":   u.Description,
				"provider_name": u.Provider,
				"created_at":    u.CreatedAt,
			})
		}
		err = lerr
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Unknown table"})
		return
	}
	if err != nil {
		s.internalError(w, "Failed to list "+table, err)
		return
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{table: rows})
}
