// Command billpay is the terminal client for the billpay API.
//
// Usage:
//
//	billpay [global flags] <command> [flags] [args]
//
// Commands: login, register, logout, dashboard, pay, pay-all, admin.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/mmynk/billpay/internal/api"
	"github.com/mmynk/billpay/internal/config"
	"github.com/mmynk/billpay/internal/dashboard"
	"github.com/mmynk/billpay/internal/session"
	"github.com/mmynk/billpay/pkg/logging"
)

const usage = `Usage: billpay [flags] <command> [command flags]

Commands:
  login      log in (the admin pair opens the admin view)
  register   create an account
  logout     end the session
  dashboard  show bills, total due and reminders
  pay        pay one bill: pay [-amount N] <bill-id>
  pay-all    pay pending bills in one batch: pay-all [-method M] [bill-id...]
  admin      show admin tables: admin [-table T]

Flags:
`

func main() {
	level := slog.LevelWarn
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = logging.ParseLevel(v)
	}
	logging.SetupWithLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case errors.Is(err, session.ErrUnauthenticated):
		fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app wires the client packages for one invocation.
type app struct {
	cfg    config.Client
	client *api.Client
	store  *session.FileStore
	gate   *session.Gate
	page   *dashboard.Page
	out    io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("billpay", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.SessionFile, "session", cfg.SessionFile, "session file")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	a, err := newApp(cfg, out)
	if err != nil {
		return err
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "dashboard":
		return a.dashboard(ctx)
	case "pay":
		return a.pay(ctx, rest)
	case "pay-all":
		return a.payAll(ctx, rest)
	case "admin":
		return a.admin(ctx, rest)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newApp(cfg config.Client, out io.Writer) (*app, error) {
	store := session.NewFileStore(cfg.SessionFile)
	saved, err := store.Load()
	if err != nil {
		slog.Warn("Ignoring unreadable session file", "path", cfg.SessionFile, "error", err)
		saved = session.Session{}
	}

	client := api.New(cfg.APIURL, api.WithTimeout(cfg.Timeout), api.WithLogger(slog.Default()))
	gate := session.NewGate(saved, slog.Default())
	// A discarded session is gone for later invocations too.
	gate.OnReset(func() {
		if err := store.Clear(); err != nil {
			slog.Warn("Failed to clear session file", "error", err)
		}
	})

	return &app{
		cfg:    cfg,
		client: client,
		store:  store,
		gate:   gate,
		page:   dashboard.New(client, gate, dashboard.WithFeedbackTTL(cfg.FeedbackTTL)),
		out:    out,
	}, nil
}

// requestContext bounds a whole command, which may issue several requests.
func (a *app) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 3*a.cfg.Timeout+time.Second)
}
