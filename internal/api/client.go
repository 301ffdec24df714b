// Package api is the HTTP client for the billpay REST backend.
//
// Response bodies are decoded loosely: records come back as raw maps and are normalized by
// the billing package, and a 2xx body that does not decode is treated as empty rather than
// as an error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billpay/internal/billing"
	"github.com/mmynk/billpay/internal/session"
)

const maxBodyBytes = 4 << 20

// Client talks to the backend over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the backend at baseURL (e.g., "http://localhost:5000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Session session.Session
	Message string
}

// Login exchanges username and password for a session.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var resp map[string]any
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		Session: session.Session{
			UserID: billing.Field(resp, "user_id"),
			Token:  billing.Field(resp, "token"),
		},
		Message: billing.Field(resp, "message"),
	}, nil
}

// RegisterRequest is the body of a registration call.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	PAN         string `json:"pan,omitempty"`
	Aadhaar     string `json:"aadhaar,omitempty"`
}

// Register creates an account and returns the backend's message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout tells the backend the session is over.
func (c *Client) Logout(ctx context.Context, s session.Session) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", bearer(s), nil, nil)
}

// User fetches the raw user record. The canonical response is {"user": {...}};
// an unwrapped record is accepted too.
func (c *Client) User(ctx context.Context, s session.Session) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, userPath("/api/users/", s), bearer(s), nil, &resp); err != nil {
		return nil, err
	}
	if inner, ok := resp["user"].(map[string]any); ok {
		return inner, nil
	}
	return resp, nil
}

// Bills fetches the user's raw bill records.
func (c *Client) Bills(ctx context.Context, s session.Session) ([]map[string]any, error) {
	var resp struct {
		Bills []map[string]any `json:"bills"`
	}
	if err := c.do(ctx, http.MethodGet, userPath("/api/bills/", s), bearer(s), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bills, nil
}

// Reminders fetches the user's raw reminders.
func (c *Client) Reminders(ctx context.Context, s session.Session) ([]map[string]any, error) {
	var resp struct {
		Reminders []map[string]any `json:"reminders"`
	}
	if err := c.do(ctx, http.MethodGet, userPath("/api/reminders/", s), bearer(s), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reminders, nil
}

// ProcessPayment pays a single bill and returns the backend's confirmation message.
func (c *Client) ProcessPayment(ctx context.Context, s session.Session, billID string, amount decimal.Decimal) (string, error) {
	body := map[string]any{
		"bill_id": idValue(billID),
		"amount":  json.Number(amount.String()),
	}
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, userPath("/api/payments/process/", s), bearer(s), body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// PayBills pays several bills in one batch and returns the raw receipts.
func (c *Client) PayBills(ctx context.Context, s session.Session, billIDs []string, method string) ([]map[string]any, error) {
	ids := make([]any, len(billIDs))
	for i, id := range billIDs {
		ids[i] = idValue(id)
	}
	body := map[string]any{
		"bill_ids":       ids,
		"payment_method": method,
	}
	var resp struct {
		Receipts []map[string]any `json:"receipts"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/payments", bearer(s), body, &resp); err != nil {
		return nil, err
	}
	return resp.Receipts, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, header http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn("Request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading %s response: %v", ErrTransport, path, err)
	}

	c.logger.Debug("Request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		// Whatever decoded before the error is kept; the rest is left at zero values.
		c.logger.Warn("Response body only partly decoded", "path", path, "request_id", requestID, "error", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(data, &body)
	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	return &Error{StatusCode: status, Message: msg}
}

func bearer(s session.Session) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+s.Token)
	return h
}

func userPath(prefix string, s session.Session) string {
	return prefix + url.PathEscape(s.UserID)
}

// idValue sends numeric IDs as JSON numbers, since the backend keys rows by integer.
func idValue(id string) any {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return json.Number(id)
	}
	return id
}
