// classifyd is the webhook service: it receives Strava activity events,
// classifies each run, and writes the workout summary back to Strava.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lapwise/server/pkg/ai"
	"github.com/lapwise/server/pkg/analyzer"
	"github.com/lapwise/server/pkg/bootstrap"
	"github.com/lapwise/server/pkg/domain/workout"
	"github.com/lapwise/server/pkg/infrastructure/sentry"
	"github.com/lapwise/server/pkg/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := bootstrap.NewLogger("classifyd")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		logger.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer svc.Close()

	cfg := svc.Config
	if svc.DB == nil {
		logger.Error("GOOGLE_CLOUD_PROJECT not set; the webhook service needs Firestore")
		os.Exit(1)
	}

	if err := sentry.Init(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		ServerName:  "classifyd",
	}, logger); err != nil {
		logger.Error("sentry init failed", "error", err)
		os.Exit(1)
	}
	defer sentry.Flush(2 * time.Second)

	var fallback workout.Classifier
	if cfg.GeminiAPIKey != "" {
		fallback = ai.NewGeminiClassifier(cfg.GeminiAPIKey, logger)
	} else {
		logger.Warn("GEMINI_API_KEY not set - model fallback disabled")
	}

	processor := analyzer.NewService(svc.DB, cfg.StravaClientID, cfg.StravaClientSecret, fallback, logger)
	handler := server.New(processor, cfg.StravaVerifyToken, logger)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr, "environment", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
