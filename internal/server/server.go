// Package server is the development backend: the REST/JSON API the billpay client talks
// to, backed by a storage.Store.
package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/billpay/internal/api"
	"github.com/mmynk/billpay/internal/auth"
	"github.com/mmynk/billpay/internal/middleware"
	"github.com/mmynk/billpay/internal/storage"
)

// Server holds the backend's collaborators.
type Server struct {
	store    storage.Store
	auth     auth.Authenticator
	jwt      *auth.JWTManager
	admin    api.AdminCredentials
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *middleware.Metrics
	payments *prometheus.CounterVec
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRegistry sets the Prometheus registry served at /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// New creates a Server. Admin endpoints accept only the admin pair.
func New(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager, admin api.AdminCredentials, opts ...Option) *Server {
	s := &Server{
		store:  store,
		auth:   authenticator,
		jwt:    jwtManager,
		admin:  admin,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	s.metrics = middleware.NewMetrics(s.registry)
	s.payments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billpay",
		Name:      "payments_total",
		Help:      "Payment requests by kind (single, batch) and outcome.",
	}, []string{"kind", "outcome"})
	s.registry.MustRegister(s.payments)
	return s
}

// Handler returns the full HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	user := middleware.RequireAuth(s.jwt)
	admin := middleware.RequireAdmin(s.admin)

	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/logout", s.logout)

	mux.Handle("GET /api/users/{userId}", user(http.HandlerFunc(s.getUser)))
	mux.Handle("GET /api/bills/{userId}", user(http.HandlerFunc(s.listBills)))
	mux.Handle("GET /api/reminders/{userId}", user(http.HandlerFunc(s.listReminders)))
	mux.Handle("POST /api/payments/process/{userId}", user(http.HandlerFunc(s.processPayment)))
	mux.Handle("POST /api/payments", user(http.HandlerFunc(s.payBills)))

	mux.Handle("GET /api/admin/{table}", admin(http.HandlerFunc(s.adminTable)))

	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return s.metrics.Handler(middleware.Logging(s.logger)(middleware.CORS(mux)))
}
