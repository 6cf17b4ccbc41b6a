package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = "8080"
	defaultBackendURL     = "http://localhost:8001/api"
	defaultPushPath       = "/ws/orders"
	defaultPollInterval   = 2 * time.Second
	defaultPollAttempts   = 5
	defaultStylistPerMin  = 6
	defaultRequestTimeout = 8 * time.Second
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
	Payment PaymentConfig
	Stylist StylistConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr    string
	Env     string
	DevMode bool
}

// BackendConfig locates the external commerce backend.
type BackendConfig struct {
	BaseURL        string
	PushPath       string
	RequestTimeout time.Duration
}

// SessionConfig holds the durable client-store cookie parameters.
type SessionConfig struct {
	SigningKey []byte
	Secure     bool
}

// PaymentConfig bounds the checkout-status poll.
type PaymentConfig struct {
	PollInterval time.Duration
	PollAttempts int
}

// StylistConfig throttles AI recommendation submissions.
type StylistConfig struct {
	PerMinute int
}

// Load reads configuration from the environment, applying defaults for
// anything unset. It returns an error only for values that are present but
// unparseable.
func Load() (Config, error) {
	cfg := Config{}

	// Port resolution: prefer OUTFITS_WEB_PORT, then Cloud Run's PORT, else 8080.
	port := os.Getenv("OUTFITS_WEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}
	cfg.Server.Addr = ":" + port
	cfg.Server.Env = strings.ToLower(strings.TrimSpace(os.Getenv("OUTFITS_WEB_ENV")))
	cfg.Server.DevMode = os.Getenv("OUTFITS_WEB_DEV") != "" || os.Getenv("DEV") != ""

	cfg.Backend.BaseURL = strings.TrimRight(envOr("OUTFITS_BACKEND_URL", defaultBackendURL), "/")
	cfg.Backend.PushPath = envOr("OUTFITS_BACKEND_PUSH_PATH", defaultPushPath)
	timeout, err := envDuration("OUTFITS_BACKEND_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.Backend.RequestTimeout = timeout

	cfg.Session.SigningKey = []byte(os.Getenv("OUTFITS_WEB_SESSION_SIGNING_KEY"))
	cfg.Session.Secure = cfg.Server.Env == "prod"

	interval, err := envDuration("OUTFITS_PAYMENT_POLL_INTERVAL", defaultPollInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.Payment.PollInterval = interval
	attempts, err := envInt("OUTFITS_PAYMENT_POLL_ATTEMPTS", defaultPollAttempts)
	if err != nil {
		return Config{}, err
	}
	cfg.Payment.PollAttempts = attempts

	perMin, err := envInt("OUTFITS_STYLIST_PER_MINUTE", defaultStylistPerMin)
	if err != nil {
		return Config{}, err
	}
	cfg.Stylist.PerMinute = perMin

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
