// Package dashboard is the user's home view: it loads bills, reminders and the user's
// identity, and runs single and batch payments against the backend, keeping the
// displayed total due consistent with what the backend confirmed.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/billpay/internal/api"
	"github.com/mmynk/billpay/internal/billing"
	"github.com/mmynk/billpay/internal/models"
	"github.com/mmynk/billpay/internal/session"
)

// DefaultPaymentMethod is used by PayAll when the caller does not pick one.
const DefaultPaymentMethod = "credit_card"

const (
	msgProcessing    = "Processing payment..."
	msgPaid          = "Payment successful!"
	msgPaymentFailed = "Payment failed. Please try again."
	msgLoadFailed    = "Unable to load your bills. Please try again."
	msgUnreachable   = "Unable to reach the server. Please try again."
)

// ErrSuperseded is returned when the session was reset (logout, authorization failure)
// while the operation was in flight. Its results were discarded.
var ErrSuperseded = errors.New("operation superseded by session reset")

// Backend is the subset of the REST API the dashboard needs.
//
//go:generate mockgen -destination=mocks/mock_backend.go -package=mocks -source=page.go Backend
type Backend interface {
	User(ctx context.Context, s session.Session) (map[string]any, error)
	Bills(ctx context.Context, s session.Session) ([]map[string]any, error)
	Reminders(ctx context.Context, s session.Session) ([]map[string]any, error)
	ProcessPayment(ctx context.Context, s session.Session, billID string, amount decimal.Decimal) (string, error)
	PayBills(ctx context.Context, s session.Session, billIDs []string, method string) ([]map[string]any, error)
	Logout(ctx context.Context, s session.Session) error
}

// Ensure the HTTP client satisfies Backend
var _ Backend = (*api.Client)(nil)

// Page owns the ViewState of one session.
//
// User actions (Load, PayOne, PayAll) run one at a time. A session reset bumps the
// generation, and any action that started under an older generation drops its results.
type Page struct {
	backend     Backend
	gate        *session.Gate
	feedback    *billing.Feedback
	feedbackTTL time.Duration
	logger      *slog.Logger

	opMu sync.Mutex

	mu         sync.Mutex
	state      billing.ViewState
	generation uint64
}

// Option configures a Page.
type Option func(*Page)

// WithFeedbackTTL sets how long success and error messages stay visible.
func WithFeedbackTTL(d time.Duration) Option {
	return func(p *Page) { p.feedbackTTL = d }
}

// WithLogger sets the page logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Page) { p.logger = l }
}

// New creates a page bound to gate. The page resets itself whenever the gate
// discards the session.
func New(backend Backend, gate *session.Gate, opts ...Option) *Page {
	p := &Page{
		backend:     backend,
		gate:        gate,
		feedback:    billing.NewFeedback(),
		feedbackTTL: billing.DefaultFeedbackTTL,
		logger:      slog.Default(),
		state:       billing.ViewState{TotalDue: decimal.Zero},
	}
	for _, opt := range opts {
		opt(p)
	}
	gate.OnReset(p.reset)
	return p
}

// Snapshot returns a copy of the current view, including any visible feedback.
func (p *Page) Snapshot() billing.ViewState {
	p.mu.Lock()
	v := p.state.Clone()
	p.mu.Unlock()

	if fb, ok := p.feedback.Current(); ok {
		v.Feedback = &fb
	}
	return v
}

// Load fetches the user, bills and reminders concurrently and rebuilds the view.
// On failure the previous view is kept.
func (p *Page) Load(ctx context.Context) error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	s, err := p.gate.Require()
	if err != nil {
		return err
	}
	gen := p.currentGeneration()

	var (
		rawUser      map[string]any
		rawBills     []map[string]any
		rawReminders []map[string]any
	)
	var userErr, billsErr, remindersErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rawUser, userErr = p.backend.User(gctx, s)
		if userErr != nil {
			userErr = fmt.Errorf("failed to fetch user: %w", userErr)
		}
		return userErr
	})
	g.Go(func() error {
		rawBills, billsErr = p.backend.Bills(gctx, s)
		if billsErr != nil {
			billsErr = fmt.Errorf("failed to fetch bills: %w", billsErr)
		}
		return billsErr
	})
	g.Go(func() error {
		rawReminders, remindersErr = p.backend.Reminders(gctx, s)
		if remindersErr != nil {
			remindersErr = fmt.Errorf("failed to fetch reminders: %w", remindersErr)
		}
		return remindersErr
	})
	if err := g.Wait(); err != nil {
		// The first error may be a cancellation caused by another fetch, so an
		// authorization failure from any of them takes precedence.
		for _, ferr := range []error{userErr, billsErr, remindersErr} {
			if session.IsAuthFailure(ferr) {
				err = ferr
				break
			}
		}
		if rerr := p.gate.Reject(err); errors.Is(rerr, session.ErrUnauthenticated) {
			return rerr
		}
		if ctx.Err() != nil {
			return err
		}
		p.logger.Error("Dashboard load failed", "user_id", s.UserID, "error", err)
		text := msgLoadFailed
		if errors.Is(err, api.ErrTransport) {
			text = msgUnreachable
		}
		p.feedback.Show(models.FeedbackError, text, p.feedbackTTL)
		return err
	}

	next := billing.ViewState{
		User:      billing.NormalizeUser(rawUser),
		Reminders: billing.NormalizeReminders(rawReminders),
	}
	next.SetBills(billing.NormalizeAll(rawBills))

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != gen {
		return ErrSuperseded
	}
	p.state = next

	p.logger.Info("Dashboard loaded",
		"user_id", s.UserID,
		"bills", len(next.Bills),
		"total_due", next.TotalDue.StringFixed(2),
	)
	return nil
}

// PayOne pays a single pending bill. The bill is marked Paid only after the backend
// confirmed the payment; on failure the view is left exactly as it was.
func (p *Page) PayOne(ctx context.Context, billID string, amount decimal.Decimal) error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	s, err := p.gate.Require()
	if err != nil {
		return err
	}

	p.mu.Lock()
	b, ok := p.state.Bill(billID)
	gen := p.generation
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", billing.ErrBillNotFound, billID)
	}
	if !b.IsPending() {
		return fmt.Errorf("%w: %s", billing.ErrAlreadyPaid, billID)
	}
	// Partial payments are not supported; the bill is only ever settled in full.
	if !amount.Equal(b.Amount) {
		return fmt.Errorf("%w: bill %s is %s, got %s", billing.ErrAmountMismatch, billID,
			b.Amount.StringFixed(2), amount.StringFixed(2))
	}

	p.feedback.Show(models.FeedbackInfo, msgProcessing, 0)
	msg, err := p.backend.ProcessPayment(ctx, s, billID, amount)
	if err != nil {
		return p.paymentFailed(ctx, err)
	}

	p.mu.Lock()
	if p.generation != gen {
		p.mu.Unlock()
		return ErrSuperseded
	}
	err = p.state.MarkPaid(billID)
	total := p.state.TotalDue
	p.mu.Unlock()
	if err != nil {
		// Only reachable if the bill changed under us, which opMu rules out.
		return err
	}

	if msg == "" {
		msg = msgPaid
	}
	p.feedback.Show(models.FeedbackSuccess, msg, p.feedbackTTL)
	p.logger.Info("Bill paid", "user_id", s.UserID, "bill_id", billID, "amount", amount.StringFixed(2), "total_due", total.StringFixed(2))
	return nil
}

// PayAll pays the given bills in one batch, or every pending bill if billIDs is nil.
// The batch is all-or-nothing: the view changes only if every receipt came back
// successful. The returned Confirmation is what the post-payment view shows.
func (p *Page) PayAll(ctx context.Context, billIDs []string, method string) (models.Confirmation, error) {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	s, err := p.gate.Require()
	if err != nil {
		return models.Confirmation{}, err
	}
	if method == "" {
		method = DefaultPaymentMethod
	}

	p.mu.Lock()
	ids, err := selectPending(&p.state, billIDs)
	gen := p.generation
	p.mu.Unlock()
	if err != nil {
		return models.Confirmation{}, err
	}

	p.feedback.Show(models.FeedbackInfo, msgProcessing, 0)
	raw, err := p.backend.PayBills(ctx, s, ids, method)
	if err != nil {
		return models.Confirmation{}, p.paymentFailed(ctx, err)
	}

	conf, err := billing.Confirm(billing.NormalizeReceipts(raw))
	if err != nil {
		p.logger.Warn("Batch payment rejected", "user_id", s.UserID, "bills", len(ids), "error", err)
		p.feedback.Show(models.FeedbackError, msgPaymentFailed, p.feedbackTTL)
		return models.Confirmation{}, err
	}

	p.mu.Lock()
	if p.generation != gen {
		p.mu.Unlock()
		return models.Confirmation{}, ErrSuperseded
	}
	err = p.state.ApplyReceipts(conf.Receipts)
	p.mu.Unlock()
	if err != nil {
		p.logger.Error("Receipts do not match the displayed bills", "user_id", s.UserID, "error", err)
		p.feedback.Show(models.FeedbackError, msgPaymentFailed, p.feedbackTTL)
		return models.Confirmation{}, err
	}

	p.feedback.Show(models.FeedbackSuccess, msgPaid, p.feedbackTTL)
	p.logger.Info("Batch paid", "user_id", s.UserID, "bills", len(conf.Receipts), "total_paid", conf.TotalPaid.StringFixed(2))
	return conf, nil
}

// Logout ends the session. The backend is told on a best-effort basis; the local
// session and view are dropped regardless.
func (p *Page) Logout(ctx context.Context) {
	if s := p.gate.Current(); s.Valid() {
		if err := p.backend.Logout(ctx, s); err != nil {
			p.logger.Warn("Backend logout failed", "user_id", s.UserID, "error", err)
		}
	}
	p.gate.Logout()
}

func (p *Page) paymentFailed(ctx context.Context, err error) error {
	if rerr := p.gate.Reject(err); errors.Is(rerr, session.ErrUnauthenticated) {
		return rerr
	}
	if ctx.Err() != nil {
		p.feedback.Clear()
		return err
	}

	text := msgPaymentFailed
	if reason, ok := api.Reason(err); ok {
		text = reason
	} else if errors.Is(err, api.ErrTransport) {
		text = msgUnreachable
	}
	p.logger.Warn("Payment failed", "error", err)
	p.feedback.Show(models.FeedbackError, text, p.feedbackTTL)
	return fmt.Errorf("payment failed: %w", err)
}

func (p *Page) reset() {
	p.mu.Lock()
	p.state.Reset()
	p.generation++
	p.mu.Unlock()
	p.feedback.Clear()
}

func (p *Page) currentGeneration() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// selectPending resolves the IDs to submit. nil means every pending bill; explicit IDs
// must all be pending.
func selectPending(v *billing.ViewState, billIDs []string) ([]string, error) {
	pending := v.PendingIDs()
	if billIDs == nil {
		if len(pending) == 0 {
			return nil, billing.ErrNothingToPay
		}
		return pending, nil
	}

	ids := make([]string, 0, len(billIDs))
	for _, id := range billIDs {
		if slices.Contains(ids, id) {
			continue
		}
		if _, ok := v.Bill(id); !ok {
			return nil, fmt.Errorf("%w: %s", billing.ErrBillNotFound, id)
		}
		if !slices.Contains(pending, id) {
			return nil, fmt.Errorf("%w: %s", billing.ErrAlreadyPaid, id)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, billing.ErrNothingToPay
	}
	return ids, nil
}
