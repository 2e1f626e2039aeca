package main

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
	"github.com/icco/sunburst/handlers"
	"github.com/icco/sunburst/lib/config"
	"github.com/icco/sunburst/lib/dataset"
	"github.com/icco/sunburst/lib/db"
	"github.com/icco/sunburst/lib/health"
	"github.com/icco/sunburst/lib/lock"
	"github.com/icco/sunburst/lib/logging"
	"github.com/icco/sunburst/lib/plays"
	"github.com/icco/sunburst/lib/validation"
	"gorm.io/gorm"
)

const seedLockKey = "seed"

type App struct {
	cfg    *config.Config
	db     *gorm.DB
	store  *plays.Store
	logger *slog.Logger
	router *chi.Mux
}

func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	gormDB, err := db.Open(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		db:     gormDB,
		store:  plays.New(gormDB, logger),
		logger: logger,
		router: chi.NewRouter(),
	}

	app.setupRoutes()
	return app, nil
}

func (a *App) setupRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	opts := a.cfg.ChartOptions()
	a.router.Get("/", handlers.HandleHome(a.store, opts))
	a.router.Get("/season/{season}", handlers.HandleSeason(a.store, opts))
	a.router.Get("/chart.svg", handlers.HandleSVG(a.store, opts))
	a.router.Get("/api/tree", handlers.HandleTree(a.store))
	a.router.Get("/api/stats", handlers.HandleStats(a.store))
	a.router.Get("/health", health.Check(a.db))
	a.router.Handle("/static/*", http.StripPrefix("/static", handlers.Static()))
}

// Close releases the database connection.
func (a *App) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Seed loads the configured records into an empty database. Concurrent
// processes sharing the database serialize on a file lock.
func (a *App) Seed(ctx context.Context, replace bool) (bool, error) {
	records, err := loadRecords(a.cfg)
	if err != nil {
		return false, err
	}

	fl := lock.NewFileLock(a.cfg.Database.LockDir, a.logger)
	defer fl.Close()

	ok, err := fl.TryLock(ctx, seedLockKey, 30*time.Second)
	if err != nil {
		return false, fmt.Errorf("failed to acquire seed lock: %w", err)
	}
	if !ok {
		return false, errors.New("timed out waiting for seed lock")
	}
	defer func() {
		if err := fl.Unlock(ctx, seedLockKey); err != nil {
			a.logger.Warn("Failed to release seed lock", slog.Any("error", err))
		}
	}()

	if replace {
		if err := a.store.Replace(ctx, records); err != nil {
			return false, err
		}
		return true, nil
	}
	return a.store.Seed(ctx, records)
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(a.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(a.cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func loadRecords(cfg *config.Config) ([]dataset.Record, error) {
	if cfg.Data.File == "" {
		return dataset.Records(), nil
	}
	return validation.LoadRecords(cfg.Data.File)
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
