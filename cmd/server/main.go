package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicost-dashboard/internal/api"
	"medicost-dashboard/internal/config"
	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
	"medicost-dashboard/internal/predictor"
	"medicost-dashboard/internal/prefs"
	"medicost-dashboard/internal/session"
	"medicost-dashboard/internal/ttl"
	"medicost-dashboard/internal/upstream"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}

	// Root context, cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger
	logger := logs.NewLogger(cfg.LogBufSize, logs.ParseLevel(cfg.LogLevel)).Mirror(log.Default())

	// Metrics
	metricsRegistry := metrics.NewRegistry()

	// Prediction service
	client := predictor.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger, metricsRegistry)

	monitorConfig := upstream.DefaultMonitorConfig()
	monitorConfig.Interval = cfg.HealthInterval
	monitorConfig.Health = upstream.HealthPolicy{
		FailureThreshold: cfg.FailureThreshold,
		SuccessThreshold: cfg.SuccessThreshold,
	}
	monitor := upstream.NewMonitor(client, monitorConfig, logger, metricsRegistry)
	go monitor.Start(ctx)

	// Sessions + TTL sweeper
	sessions := session.NewStore(cfg.SessionTTL, metricsRegistry)
	sweeper := ttl.NewCleaner(sessions, cfg.SweepInterval, logger, metricsRegistry)
	go sweeper.Start(ctx)

	// Preferences
	var kv prefs.KV = prefs.NewMemoryKV()
	if cfg.PrefsDB != "" {
		db, err := prefs.OpenSQLiteKV(cfg.PrefsDB)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		kv = db
	}
	prefsManager := prefs.NewManager(kv, cfg.DefaultTheme, logger, metricsRegistry).
		ExpireAfter(cfg.SessionTTL, cfg.PrefsRetention)
	prefsSweeper := ttl.NewCleaner(prefsManager, cfg.SweepInterval, logger, metricsRegistry)
	go prefsSweeper.Start(ctx)

	// API
	handler := api.NewHandler(
		client,
		monitor,
		sessions,
		prefsManager,
		metricsRegistry,
		logger,
	)
	mux := http.NewServeMux()
	httpHandler := api.RegisterRoutes(mux, handler, logger, metricsRegistry)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("shutdown: %v", err)
		}
	}()

	logger.Infof("server started on :%s (prediction API %s)", cfg.Port, client.BaseURL())

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	logger.Info("server stopped")
}
