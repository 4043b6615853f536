// Package bootstrap wires configuration, logging and shared clients for
// every binary in this repo.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/firestore"

	storage "github.com/lapwise/server/pkg/storage/firestore"
)

// Config holds standard configuration for all services, read from the
// environment.
type Config struct {
	ProjectID          string
	ListenAddr         string
	Environment        string
	SentryDSN          string
	StravaClientID     string
	StravaClientSecret string
	StravaVerifyToken  string
	GeminiAPIKey       string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() *Config {
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return &Config{
		ProjectID:          os.Getenv("GOOGLE_CLOUD_PROJECT"),
		ListenAddr:         addr,
		Environment:        env,
		SentryDSN:          os.Getenv("SENTRY_DSN"),
		StravaClientID:     os.Getenv("STRAVA_CLIENT_ID"),
		StravaClientSecret: os.Getenv("STRAVA_CLIENT_SECRET"),
		StravaVerifyToken:  os.Getenv("STRAVA_VERIFY_TOKEN"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
	}
}

// Service holds initialized dependencies shared by handlers.
type Service struct {
	DB     *storage.Client
	Config *Config
}

// NewService initializes the shared dependency container. The Firestore
// client is optional: when no project is configured (local CLI use) the
// service runs without a DB and athlete tokens must come from elsewhere.
func NewService(ctx context.Context) (*Service, error) {
	cfg := LoadConfig()
	svc := &Service{Config: cfg}

	if cfg.ProjectID != "" {
		fs, err := firestore.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("firestore client: %w", err)
		}
		svc.DB = storage.NewClient(fs)
	}

	return svc, nil
}

// Close releases held clients.
func (s *Service) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// GetSlogHandlerOptions returns standard handler options, mapping slog keys
// to the names Cloud Logging expects.
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// NewLogger builds the standard JSON logger for a service, honouring
// LOG_LEVEL.
func NewLogger(serviceName string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := GetSlogHandlerOptions(level)
	return slog.New(slog.NewJSONHandler(os.Stdout, opts)).With("service", serviceName)
}
