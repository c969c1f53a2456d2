// Package internal provides the main application initialization and
// runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/lilianada/braindump/internal/api"
	"github.com/lilianada/braindump/internal/corpus"
	"github.com/lilianada/braindump/internal/gardenservice"
	"github.com/lilianada/braindump/internal/mcpserver"
	"github.com/lilianada/braindump/internal/search"
	"github.com/lilianada/braindump/internal/source"
	"github.com/lilianada/braindump/internal/sse"
)

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(cfg)
	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("source_mode", cfg.Source.Mode),
		slog.String("search_path", cfg.Search.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, store, db, watchRoot, err := buildService(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// Initial load and search index build. A failed first load is not
	// fatal: the next query or watcher event retries.
	if err := svc.Reindex(ctx, true); err != nil {
		logger.Warn("initial load failed", slog.String("error", err.Error()))
	}

	// SSE broker for corpus reload notifications.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Content watcher (fs mode only): a change invalidates the corpus,
	// reloads it, rebuilds the search index, and notifies SSE clients.
	if watchRoot != "" {
		g.Go(func() error {
			return corpus.Watch(gCtx, store, watchRoot, logger, func(fingerprint string) {
				if err := svc.Reindex(gCtx, false); err != nil {
					logger.Warn("reindex after reload failed", slog.String("error", err.Error()))
				}
				broker.PublishReload(fingerprint)
			})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the garden over MCP stdio instead of HTTP. Logs go to
// stderr so stdout stays clean for the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	svc, _, db, _, err := buildService(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := svc.Reindex(ctx, true); err != nil {
		logger.Warn("initial load failed", slog.String("error", err.Error()))
	}

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}

func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// buildService wires provider, store, search index, and the query
// facade. watchRoot is non-empty when the fs backend should be watched.
func buildService(cfg *Config, logger *slog.Logger) (*gardenservice.Service, *corpus.Store, *search.DB, string, error) {
	var provider source.Provider
	watchRoot := ""

	switch cfg.Source.Mode {
	case SourceModeRemote:
		provider = source.NewRemote(cfg.Source.Endpoint, cfg.Source.Token, logger)
	default:
		if err := os.MkdirAll(cfg.Source.Path, 0o755); err != nil {
			return nil, nil, nil, "", fmt.Errorf("create content dir: %w", err)
		}
		fsProvider, err := source.NewFS(cfg.Source.Path, logger)
		if err != nil {
			return nil, nil, nil, "", fmt.Errorf("init source: %w", err)
		}
		provider = fsProvider
		if cfg.Source.Watch {
			watchRoot = fsProvider.Root()
		}
	}

	store := corpus.NewStore(provider, logger)

	db, err := search.Open(cfg.Search.Path)
	if err != nil {
		return nil, nil, nil, "", fmt.Errorf("init search index: %w", err)
	}

	svc := gardenservice.NewService(store, db, cfg.Graph.Columns, logger)
	return svc, store, db, watchRoot, nil
}
