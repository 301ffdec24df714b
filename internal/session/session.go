// Package session decides when authenticated work may run and what happens when the
// backend says the credentials are no longer good.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUnauthenticated is returned when there is no usable session.
	// Callers treat it as "go back to login".
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Session is the identity and bearer credential of the logged-in user.
type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// Valid reports whether both halves are present.
func (s Session) Valid() bool {
	return s.UserID != "" && s.Token != ""
}

// AuthFailure is implemented by errors that carry an authorization outcome.
// api.Error implements it for 401 and 403 responses.
type AuthFailure interface {
	AuthFailure() bool
}

// IsAuthFailure reports whether err (or anything it wraps) is an authorization failure.
func IsAuthFailure(err error) bool {
	var af AuthFailure
	return errors.As(err, &af) && af.AuthFailure()
}

// Gate owns the current session and enforces it uniformly.
// It never reads ambient storage: the session is handed to it explicitly.
type Gate struct {
	mu      sync.Mutex
	session Session
	onReset []func()
	signals chan struct{}
	now     func() time.Time
	logger  *slog.Logger
}

// NewGate creates a gate holding s. s may be empty.
func NewGate(s Session, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		session: s,
		signals: make(chan struct{}, 16),
		now:     time.Now,
		logger:  logger,
	}
}

// OnReset registers a hook run whenever the gate discards the session.
// Hooks run synchronously, outside the gate's lock, in registration order.
func (g *Gate) OnReset(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onReset = append(g.onReset, fn)
}

// Unauthenticated delivers one value per discarded session.
func (g *Gate) Unauthenticated() <-chan struct{} {
	return g.signals
}

// Set installs a new session, as after login.
func (g *Gate) Set(s Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = s
}

// Current returns the held session without validating it.
func (g *Gate) Current() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Require returns the session if work may proceed.
// A missing user ID or token, or a JWT whose exp has passed, yields ErrUnauthenticated.
func (g *Gate) Require() (Session, error) {
	g.mu.Lock()
	s := g.session
	g.mu.Unlock()

	if !s.Valid() {
		return Session{}, ErrUnauthenticated
	}
	if expired(s.Token, g.now()) {
		g.logger.Info("Session token expired", "user_id", s.UserID)
		g.discard()
		return Session{}, ErrUnauthenticated
	}
	return s, nil
}

// Reject inspects the error of an authenticated call. Authorization failures discard the
// session, run the reset hooks, emit one unauthenticated signal and return
// ErrUnauthenticated. Any other error is returned unchanged.
func (g *Gate) Reject(err error) error {
	if err == nil || !IsAuthFailure(err) {
		return err
	}
	g.logger.Warn("Authorization failed, discarding session", "error", err)
	g.discard()
	return ErrUnauthenticated
}

// Logout discards the session without signalling.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.session = Session{}
	hooks := append([]func(){}, g.onReset...)
	g.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func (g *Gate) discard() {
	g.Logout()
	select {
	case g.signals <- struct{}{}:
	default:
		g.logger.Warn("Unauthenticated signal dropped, no reader")
	}
}

// expired reports whether token is a JWT with an exp claim in the past.
// Opaque tokens are never considered expired; the backend is the authority for those.
// The signature is not checked: the client holds no key.
func expired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
