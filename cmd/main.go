package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veloforge/paceline/internal/adapters/repository"
	service "github.com/veloforge/paceline/internal/app"
	"github.com/veloforge/paceline/internal/config"
	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/pkg/logger"
	"github.com/veloforge/paceline/pkg/metrics"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// usage: paceline <event-number> <results-file.json>
func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if len(os.Args) != 3 {
		os.Stderr.WriteString("usage: paceline <event-number> <results-file.json>\n")
		os.Exit(2)
	}

	eventNumber, err := strconv.Atoi(os.Args[1])
	if err != nil {
		os.Stderr.WriteString("invalid event number: " + os.Args[1] + "\n")
		os.Exit(2)
	}

	rows, err := readRows(os.Args[2])
	if err != nil {
		log.Error(ctx, "failed to read results file",
			logger.String("path", os.Args[2]), logger.Error(err))
		os.Exit(1)
	}

	store, err := repository.Open(cfg.DataPath)
	if err != nil {
		log.Error(ctx, "failed to open career store",
			logger.String("path", cfg.DataPath), logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	mgr := metrics.New()

	// Metrics endpoint stays up for the lifetime of the run so scrapers can
	// observe long batches.
	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		log.Info(ctx, "metrics endpoint listening", logger.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(ctx, "metrics endpoint failed", logger.Error(err))
		}
	}()

	svc := service.New(store,
		service.WithLogger(log),
		service.WithMetrics(mgr),
		service.WithSeason(cfg.Season),
		service.WithBotLimit(cfg.BotLimit),
		service.WithDefaultBotRating(cfg.DefaultBotRating),
	)

	report, err := svc.ProcessBatch(ctx, eventNumber, rows)
	if err != nil {
		log.Error(ctx, "batch failed",
			logger.Int("event", eventNumber), logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "batch complete",
		logger.Int("event", report.EventNumber),
		logger.Int("processed", report.Processed),
		logger.Int("skipped", report.Skipped),
		logger.Int("failed", report.Failed),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// readRows loads the normalized result rows handed over by the ingestion
// collaborator.
func readRows(path string) ([]model.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []model.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
