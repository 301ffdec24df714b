package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mmynk/billpay/internal/storage"
)

const (
	defaultPaymentMethod = "credit_card"
	// receiptSuccess is the receipt status clients treat as a confirmed payment.
	receiptSuccess = "Success"
)

func (s *Server) processPayment(w http.ResponseWriter, r *http.Request) {
	userID := pathUserID(r)
	body, err := readBody(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if body["bill_id"] == nil || body["amount"] == nil {
		writeMessage(w, http.StatusBadRequest, "Bill ID and amount are required for payment.")
		return
	}
	billID, ok := parseID(body["bill_id"])
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid bill ID.")
		return
	}
	amount, err := parseAmount(body["amount"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid amount format.")
		return
	}
	method := stringField(body, "payment_method")
	if method == "" {
		method = defaultPaymentMethod
	}

	p, err := s.store.PayBill(r.Context(), userID, billID, amount, method)
	if err != nil {
		s.paymentRejected(w, "single", userID, err)
		return
	}

	s.payments.WithLabelValues("single", "paid").Inc()
	s.logger.Info("Bill paid", "user_id", userID, "bill_id", billID, "payment_id", p.ID, "amount", p.Amount.StringFixed(2))
	writeMessage(w, http.StatusOK, fmt.Sprintf("Payment of %s for bill %d successful.", p.Amount.StringFixed(2), billID))
}

func (s *Server) payBills(w http.ResponseWriter, r *http.Request) {
	userID := tokenUserID(r)
	body, err := readBody(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, _ := body["bill_ids"].([]any)
	if len(raw) == 0 {
		writeMessage(w, http.StatusBadRequest, "bill_ids must list at least one bill.")
		return
	}
	ids := make([]int64, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for _, v := range raw {
		id, ok := parseID(v)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid bill ID.")
			return
		}
		if seen[id] {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("Bill %d listed twice.", id))
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	method := stringField(body, "payment_method")
	if method == "" {
		method = defaultPaymentMethod
	}

	payments, err := s.store.PayBills(r.Context(), userID, ids, method)
	if err != nil {
		s.paymentRejected(w, "batch", userID, err)
		return
	}

	receipts := make([]map[string]any, len(payments))
	for i, p := range payments {
		row := paymentRow(p)
		row["status"] = receiptSuccess
		receipts[i] = row
	}
	s.payments.WithLabelValues("batch", "paid").Inc()
	s.logger.Info("Batch paid", "user_id", userID, "bills", len(payments))
	writeJSON(w, http.StatusOK, map[string]any{"receipts": receipts})
}

// paymentRejected maps store errors to 400 responses carrying a reason the client shows.
func (s *Server) paymentRejected(w http.ResponseWriter, kind string, userID int64, err error) {
	var msg string
	switch {
	case errors.Is(err, storage.ErrNotFound):
		msg = "Bill not found"
	case errors.Is(err, storage.ErrAlreadyPaid):
		msg = "Bill already paid"
	case errors.Is(err, storage.ErrAmountMismatch):
		msg = "Payment amount does not match the bill amount"
	default:
		s.payments.WithLabelValues(kind, "error").Inc()
		s.internalError(w, "Payment processing failed", err)
		return
	}
	s.payments.WithLabelValues(kind, "rejected").Inc()
	s.logger.Warn("Payment rejected", "kind", kind, "user_id", userID, "error", err)
	writeMessage(w, http.StatusBadRequest, msg)
}
