package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/pinely/internal/cli"
	"github.com/alexanderramin/pinely/internal/db"
	"github.com/alexanderramin/pinely/internal/httpapi"
	"github.com/alexanderramin/pinely/internal/intelligence"
	"github.com/alexanderramin/pinely/internal/llm"
	"github.com/alexanderramin/pinely/internal/repository"
	"github.com/alexanderramin/pinely/internal/service"
	"github.com/alexanderramin/pinely/internal/session"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricsNamespace = "pinely"

func main() {
	if err := run(); err != nil {
		// cli.Execute has already printed the error.
		os.Exit(1)
	}
}

func run() error {
	logger := newLogger()
	slog.SetDefault(logger)

	ctx := context.Background()

	// Session storage: SQLite when available, memory otherwise so the flow
	// still works for this run.
	var storage session.Storage
	dbPath, err := db.DefaultPath()
	if err == nil {
		database, openErr := db.OpenDB(dbPath)
		if openErr == nil {
			defer database.Close()
			storage = session.NewRepoStorage(repository.NewSQLiteKVRepo(database))
		}
		err = openErr
	}
	if storage == nil {
		logger.Warn("session_storage_unavailable", "path", dbPath, "error", err)
		storage = session.NewMemoryStorage()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client, err := newLLMClient(logger, reg)
	if err != nil {
		return reportErr(err)
	}

	httpMetrics, err := httpapi.NewHTTPMetrics(metricsNamespace, reg)
	if err != nil {
		return reportErr(fmt.Errorf("registering http metrics: %w", err))
	}
	flowMetrics, err := service.NewMetricsUseCaseObserver(metricsNamespace, reg)
	if err != nil {
		return reportErr(fmt.Errorf("registering flow metrics: %w", err))
	}

	organizer := intelligence.NewOrganizeService(client, logger)
	actions := intelligence.NewActionService(client, intelligence.WithActionLogger(logger))

	app := &cli.App{
		Flow: service.NewFlowService(storage, organizer, actions, nil,
			service.NewLogUseCaseObserver(logger),
			flowMetrics,
		),
		Organizer:   organizer,
		Actions:     actions,
		Client:      client,
		Logger:      logger,
		Registry:    reg,
		HTTPMetrics: httpMetrics,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	return cli.Execute(ctx, app)
}

// newLLMClient returns nil when no model is configured; every request then
// takes the offline path.
func newLLMClient(logger *slog.Logger, reg prometheus.Registerer) (llm.LLMClient, error) {
	cfg, err := llm.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading llm config: %w", err)
	}

	metrics, err := llm.NewMetricsObserver(metricsNamespace, reg)
	if err != nil {
		return nil, fmt.Errorf("registering llm metrics: %w", err)
	}
	observers := llm.MultiObserver{metrics}
	if cfg.LogCalls {
		observers = append(observers, llm.NewLogObserver(os.Stderr))
	}

	client, err := llm.NewClient(cfg, observers)
	if errors.Is(err, llm.ErrNotConfigured) {
		logger.Info("llm_disabled", "provider", string(cfg.Provider))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// newLogger writes text logs to stderr at PINELY_LOG_LEVEL (default warn)
// so they never mix with command output.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if v := os.Getenv("PINELY_LOG_LEVEL"); v != "" {
		_ = level.UnmarshalText([]byte(v))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func reportErr(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}
