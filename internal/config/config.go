// Package config reads billpay settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mmynk/billpay/internal/api"
)

// Client configures the billpay CLI.
type Client struct {
	APIURL      string
	SessionFile string
	Timeout     time.Duration
	FeedbackTTL time.Duration
	Admin       api.AdminCredentials
}

// Server configures the development backend.
type Server struct {
	Port      int
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	Seed      bool
	Admin     api.AdminCredentials
}

const devJWTSecret = "billpay-dev-secret"

// LoadClient reads the CLI configuration.
func LoadClient() (Client, error) {
	timeout, err := getDuration("BILLPAY_TIMEOUT", 10*time.Second)
	if err != nil {
		return Client{}, err
	}
	ttl, err := getDuration("BILLPAY_FEEDBACK_TTL", 5*time.Second)
	if err != nil {
		return Client{}, err
	}
	return Client{
		APIURL:      getEnv("BILLPAY_API_URL", "http://localhost:5000"),
		SessionFile: getEnv("BILLPAY_SESSION_FILE", defaultSessionFile()),
		Timeout:     timeout,
		FeedbackTTL: ttl,
		Admin:       adminFromEnv(),
	}, nil
}

// LoadServer reads the backend configuration.
func LoadServer() (Server, error) {
	port, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil || port <= 0 || port > 65535 {
		return Server{}, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	ttl, err := getDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return Server{}, err
	}
	seed, err := strconv.ParseBool(getEnv("SEED", "true"))
	if err != nil {
		return Server{}, fmt.Errorf("invalid SEED %q: %w", os.Getenv("SEED"), err)
	}
	return Server{
		Port:      port,
		DBPath:    getEnv("DB_PATH", "./data/billpay.db"),
		JWTSecret: getEnv("JWT_SECRET", devJWTSecret),
		TokenTTL:  ttl,
		Seed:      seed,
		Admin:     adminFromEnv(),
	}, nil
}

// DevSecret reports whether the server runs with the built-in signing secret.
func (s Server) DevSecret() bool {
	return s.JWTSecret == devJWTSecret
}

func adminFromEnv() api.AdminCredentials {
	return api.AdminCredentials{
		Username: getEnv("BILLPAY_ADMIN_USERNAME", "admin"),
		Password: getEnv("BILLPAY_ADMIN_PASSWORD", "admin123"),
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".billpay", "session.json")
	}
	return filepath.Join(dir, "billpay", "session.json")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}
