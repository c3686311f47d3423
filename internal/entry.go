// Package internal provides the main application initialization and runtime logic.
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

	"github.com/PzNot2ndPlace/hints-service/internal/api"
	"github.com/PzNot2ndPlace/hints-service/internal/hintlog"
	"github.com/PzNot2ndPlace/hints-service/internal/hintservice"
	"github.com/PzNot2ndPlace/hints-service/internal/reload"
	"github.com/PzNot2ndPlace/hints-service/internal/rewrite"
	"github.com/PzNot2ndPlace/hints-service/internal/sse"
	"github.com/PzNot2ndPlace/hints-service/internal/synthesizer"
	pkgconfig "github.com/PzNot2ndPlace/hints-service/pkg/config"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.Bool("rewrite_enabled", cfg.Rewrite.Enabled),
		slog.Bool("hint_log_enabled", cfg.HintLog.Enabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, logDB, broker, err := buildService(app)
	if err != nil {
		return err
	}
	if logDB != nil {
		defer logDB.Close()
	}
	defer broker.Close()

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
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

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the config file for heuristic changes.
	if app.configPath != "" {
		configPath := app.configPath
		g.Go(func() error {
			return reload.Watch(gCtx, configPath, logger, func() {
				ncfg := NewDefaultConfig()
				if err := pkgconfig.Load(configPath, ncfg); err != nil {
					logger.Warn("config reload failed, keeping current parameters",
						slog.String("error", err.Error()))
					return
				}
				svc.SetParams(engineParams(ncfg))
				logger.Info("engine parameters reloaded",
					slog.Float64("similarity_threshold", ncfg.Engine.SimilarityThreshold),
					slog.Float64("decay_window_hours", ncfg.Engine.DecayWindowHours),
					slog.Int("saturation_count", ncfg.Engine.SaturationCount))
			})
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
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

// buildService wires the engine facade with its optional
// collaborators: the hint audit log, the SSE broker, and the rewriter.
func buildService(app *application) (*hintservice.Service, *hintlog.DB, *sse.Broker, error) {
	cfg := app.config

	var logDB *hintlog.DB
	if cfg.HintLog.Enabled() {
		db, err := hintlog.Open(cfg.HintLog.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init hint log: %w", err)
		}
		logDB = db
	}

	rewriter := app.rewriter
	if rewriter == nil && cfg.Rewrite.Enabled {
		rewriter = rewrite.NewOpenAI(cfg.Rewrite.APIKey, cfg.Rewrite.Model, cfg.Rewrite.BaseURL)
	}
	synth := synthesizer.New(rewriter, time.Duration(cfg.Rewrite.TimeoutSeconds)*time.Second)

	broker := sse.NewBroker()
	svc := hintservice.NewService(engineParams(cfg), synth, logDB, broker)
	return svc, logDB, broker, nil
}

// engineParams converts the engine config section to engine parameters.
func engineParams(cfg *Config) hintservice.Params {
	return hintservice.Params{
		SimilarityThreshold: cfg.Engine.SimilarityThreshold,
		MinDF:               cfg.Engine.MinDF,
		MaxDF:               cfg.Engine.MaxDF,
		DecayWindowHours:    cfg.Engine.DecayWindowHours,
		SaturationCount:     cfg.Engine.SaturationCount,
		CircularMean:        cfg.Engine.CircularMean,
	}
}
