package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/pinely/internal/intelligence"
	"github.com/alexanderramin/pinely/internal/llm"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr           string
	AllowedOrigins []string
	// RequestTimeout bounds each request, including the model call.
	RequestTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:           "127.0.0.1:3000",
		AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		RequestTimeout: 30 * time.Second,
	}
}

// Deps are the collaborators the router needs.
type Deps struct {
	Organizer intelligence.OrganizeService
	Actions   intelligence.ActionService
	// Client is probed by /health; nil reports the model as disabled.
	Client   llm.LLMClient
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *HTTPMetrics
}

// NewRouter builds the chi router with middleware and routes.
func NewRouter(cfg Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := NewHandlers(deps.Organizer, deps.Actions, logger)

	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
	}
	if cfg.RequestTimeout > 0 {
		router.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	router.Get("/health", healthHandler(deps.Client))
	if deps.Registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	router.Route("/api", func(r chi.Router) {
		r.Post("/organize", h.Organize)
		r.Post("/action", h.Action)
	})

	return router
}

type healthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

func healthHandler(client llm.LLMClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model := "disabled"
		if client != nil {
			model = "unreachable"
			if client.Available(r.Context()) {
				model = "ok"
			}
		}
		// The service degrades to fallbacks, so a missing model is not unhealthy.
		respondJSON(w, http.StatusOK, healthResponse{Status: "ok", Model: model})
	}
}

// Serve runs the server until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg Config, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_server_start", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("http_server_stop")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
