package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mmynk/billpay/internal/auth"
	"github.com/mmynk/billpay/internal/middleware"
	"github.com/mmynk/billpay/internal/storage"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	username, password := stringField(body, "username"), stringField(body, "password")
	if username == "" || password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := s.auth.Authenticate(r.Context(), username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.logger.Warn("Login rejected", "username", username)
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		s.internalError(w, "Login failed", err)
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		s.internalError(w, "Login failed", err)
		return
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user_id": user.ID,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.Register(r.Context(), auth.Registration{
		Username: stringField(body, "username"),
		Email:    stringField(body, "email"),
		Phone:    stringField(body, "phone_number"),
		Password: stringField(body, "password"),
		PAN:      stringField(body, "pan"),
		Aadhaar:  stringField(body, "aadhaar"),
	})
	switch {
	case errors.Is(err, auth.ErrMissingFields), errors.Is(err, auth.ErrWeakPassword):
		writeMessage(w, http.StatusBadRequest, "Registration failed: "+err.Error())
		return
	case errors.Is(err, auth.ErrInvalidPAN):
		writeMessage(w, http.StatusBadRequest, "Registration failed: Invalid PAN format.")
		return
	case errors.Is(err, auth.ErrInvalidAadhaar):
		writeMessage(w, http.StatusBadRequest, "Registration failed: Invalid Aadhaar format.")
		return
	case errors.Is(err, auth.ErrUsernameExists), errors.Is(err, auth.ErrIdentityExists):
		writeMessage(w, http.StatusConflict, "Registration failed: Username, PAN, or Aadhaar already exists.")
		return
	case err != nil:
		s.internalError(w, "Registration failed", err)
		return
	}

	s.logger.Info("User registered", "user_id", user.ID)
	writeMessage(w, http.StatusCreated, fmt.Sprintf("User %s registered successfully.", user.Username))
}

// logout has nothing to revoke: tokens are stateless and expire on their own.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logout successful.")
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUserByID(r.Context(), pathUserID(r))
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.internalError(w, "Failed to get user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": userRow(*user)})
}

func (s *Server) listBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.store.BillsByUser(r.Context(), pathUserID(r))
	if err != nil {
		s.internalError(w, "Failed to list bills", err)
		return
	}
	rows := make([]map[string]any, len(bills))
	for i, b := range bills {
		rows[i] = billRow(b)
	}
	writeJSON(w, http.StatusOK, map[string]any{"bills": rows})
}

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.store.RemindersByUser(r.Context(), pathUserID(r))
	if err != nil {
		s.internalError(w, "Failed to list reminders", err)
		return
	}
	rows := make([]map[string]any, len(reminders))
	for i, rem := range reminders {
		rows[i] = map[string]any{
			"reminder_id":   rem.ID,
			"user_id":       rem.UserID,
			"message":       rem.Message,
			"reminder_date": rem.Date,
			"created_at":    rem.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reminders": rows})
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	writeMessage(w, http.StatusInternalServerError, msg)
}

// pathUserID is the {userId} wildcard. RequireAuth has already matched it against the
// token, so it is the authenticated user.
func pathUserID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue(middleware.UserIDPathValue), 10, 64)
	return id
}

// tokenUserID is the authenticated user on routes without a {userId} wildcard.
func tokenUserID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(middleware.GetUserID(r.Context()), 10, 64)
	return id
}

// userRow never includes the password hash.
func userRow(u storage.User) map[string]any {
	return map[string]any{
		"user_id":      u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"phone_number": u.Phone,
		"pan":          orNil(u.PAN),
		"aadhaar":      orNil(u.Aadhaar),
		"role":         u.Role,
		"created_at":   u.CreatedAt,
	}
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func billRow(b storage.Bill) map[string]any {
	return map[string]any{
		"bill_id":       b.ID,
		"user_id":       b.UserID,
		"utility_id":    b.UtilityID,
		"amount":        money(b.Amount),
		"due_date":      b.DueDate,
		"status":        b.Status,
		"created_at":    b.CreatedAt,
		"utility_name":  b.UtilityName,
		"provider_name": b.Provider,
	}
}

func paymentRow(p storage.Payment) map[string]any {
	return map[string]any{
		"payment_id":       p.ID,
		"bill_id":          p.BillID,
		"user_id":          p.UserID,
		"amount":           money(p.Amount),
		"payment_method":   p.Method,
		"status":           p.Status,
		"reference":        p.Reference,
		"transaction_date": p.TransactionDate,
	}
}
