package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billpay/internal/admin"
	"github.com/mmynk/billpay/internal/api"
)

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", a.out)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("login requires -u and -p")
	}

	// Routing only: the backend checks the pair on every admin request.
	if admin.Matches(a.cfg.Admin, *username, *password) {
		return a.showAdmin(ctx, api.AdminCredentials{Username: *username, Password: *password}, nil)
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	res, err := a.client.Login(ctx, *username, *password)
	if err != nil {
		if reason, ok := api.Reason(err); ok {
			return errors.New(reason)
		}
		return err
	}
	if !res.Session.Valid() {
		return errors.New("login response carried no session")
	}
	if err := a.store.Save(res.Session); err != nil {
		return err
	}
	a.gate.Set(res.Session)

	if res.Message != "" {
		fmt.Fprintln(a.out, res.Message)
	}
	return a.dashboard(ctx)
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register", a.out)
	var req api.RegisterRequest
	fs.StringVar(&req.Username, "u", "", "username")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&req.Password, "p", "", "password")
	fs.StringVar(&req.PAN, "pan", "", "PAN number, e.g. ABCDE1234F (optional)")
	fs.StringVar(&req.Aadhaar, "aadhaar", "", "12-digit Aadhaar number (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	msg, err := a.client.Register(ctx, req)
	if err != nil {
		if reason, ok := api.Reason(err); ok {
			return errors.New(reason)
		}
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	a.page.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) dashboard(ctx context.Context) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.page.Load(ctx); err != nil {
		return a.withFeedback(err)
	}
	renderDashboard(a.out, a.page.Snapshot())
	return nil
}

func (a *app) pay(ctx context.Context, args []string) error {
	fs := newFlagSet("pay", a.out)
	amountFlag := fs.String("amount", "", "amount to pay (default: the bill amount)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("pay takes exactly one bill ID")
	}
	billID := fs.Arg(0)

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.page.Load(ctx); err != nil {
		return a.withFeedback(err)
	}

	var amount decimal.Decimal
	if *amountFlag != "" {
		d, err := decimal.NewFromString(*amountFlag)
		if err != nil {
			return fmt.Errorf("invalid -amount %q: %w", *amountFlag, err)
		}
		amount = d
	} else {
		snap := a.page.Snapshot()
		b, ok := snap.Bill(billID)
		if !ok {
			return fmt.Errorf("no bill %s", billID)
		}
		amount = b.Amount
	}

	if err := a.page.PayOne(ctx, billID, amount); err != nil {
		return a.withFeedback(err)
	}
	renderDashboard(a.out, a.page.Snapshot())
	return nil
}

func (a *app) payAll(ctx context.Context, args []string) error {
	fs := newFlagSet("pay-all", a.out)
	method := fs.String("method", "", "payment method (default credit_card)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var ids []string
	if fs.NArg() > 0 {
		ids = fs.Args()
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.page.Load(ctx); err != nil {
		return a.withFeedback(err)
	}
	conf, err := a.page.PayAll(ctx, ids, *method)
	if err != nil {
		return a.withFeedback(err)
	}
	renderConfirmation(a.out, conf)
	return nil
}

func (a *app) admin(ctx context.Context, args []string) error {
	fs := newFlagSet("admin", a.out)
	table := fs.String("table", "", "show only this table (users, bills, payments, utilities)")
	creds := a.cfg.Admin
	fs.StringVar(&creds.Username, "u", creds.Username, "admin username")
	fs.StringVar(&creds.Password, "p", creds.Password, "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var tables []string
	if *table != "" {
		tables = []string{*table}
	}
	return a.showAdmin(ctx, creds, tables)
}

func (a *app) showAdmin(ctx context.Context, creds api.AdminCredentials, tables []string) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	loaded, err := admin.New(a.client, creds, nil).Load(ctx, tables...)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("admin credentials rejected")
		}
		return err
	}
	renderTables(a.out, loaded)
	return nil
}

// withFeedback prefers the message the page is showing over the raw error.
func (a *app) withFeedback(err error) error {
	if fb := a.page.Snapshot().Feedback; fb != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s (%w)", fb.Text, err)
	}
	return err
}
