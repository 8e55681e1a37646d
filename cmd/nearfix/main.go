// cmd/nearfix/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/config"
	"nearfix-client/internal/common/httpclient"
	"nearfix-client/internal/common/logger"
	"nearfix-client/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zapBoot := logger.New("info", "console")
		zapBoot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting nearfix client",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("apiBaseUrl", cfg.API.BaseURL),
	)

	// --- Session store ---
	statePath := cfg.Session.StatePath
	if statePath == "" {
		statePath, err = session.DefaultStatePath()
		if err != nil {
			zapLog.Fatal("session state path", zap.Error(err))
		}
	}
	sess := session.New(statePath, log)
	if exp := sess.TokenExpiry(); !exp.IsZero() && time.Now().After(exp) {
		zapLog.Warn("stored session token has expired, expect re-authentication",
			zap.Time("expiredAt", exp))
	}

	// --- API client ---
	httpClient := httpclient.New(cfg.API.BaseURL, cfg.API.RequestTimeout(), sess, log)
	client := api.NewClient(httpClient)

	// --- Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "healthy",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			mux.Handle("/metrics", promhttp.Handler())
			zapLog.Info("metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful Shutdown ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	app := newApp(cfg, client, sess, log, os.Stdin, os.Stdout)
	app.run(ctx)

	zapLog.Info("nearfix client stopped")
}
