// Package main implements the entry point for the Retain API server,
// which schedules spaced repetition reviews and reports study
// progress for users' flashcard decks.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mnemosyne-app/retain-api/internal/api"
	"github.com/mnemosyne-app/retain-api/internal/config"
	"github.com/mnemosyne-app/retain-api/internal/domain/srs"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
	"github.com/mnemosyne-app/retain-api/internal/platform/postgres"
	"github.com/mnemosyne-app/retain-api/internal/service/progress"
	"github.com/mnemosyne-app/retain-api/internal/service/review"
	"github.com/mnemosyne-app/retain-api/internal/service/study"
	"github.com/mnemosyne-app/retain-api/migrations"
)

const (
	dbPingTimeout   = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run wires configuration, storage, services, and the HTTP server,
// then blocks until shutdown. Split from main so initialization
// errors flow back as values instead of os.Exit calls.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	deckStore := postgres.NewPostgresDeckStore(db)
	cardStore := postgres.NewPostgresCardStore(db)
	progressStore := postgres.NewPostgresProgressStore(db, appLogger)

	scheduler := srs.NewSchedulerWithParams(srs.NewParams(cfg.SRS))

	reviewService := review.NewService(cardStore, progressStore, scheduler, appLogger)
	selector := study.NewSelector(deckStore, cardStore, progressStore, appLogger)
	aggregator := progress.NewAggregator(deckStore, cardStore, progressStore, appLogger)

	router := newRouter(routerDeps{
		review:   api.NewReviewHandler(reviewService, appLogger),
		study:    api.NewStudyHandler(selector, appLogger),
		progress: api.NewProgressHandler(aggregator, appLogger),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return serve(server, appLogger)
}

// runMigrations applies the embedded goose migrations. Goose is
// idempotent, so a restart against an up-to-date schema is a no-op.
func runMigrations(db *sql.DB, log *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	log.Info("database migrations applied")
	return nil
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests within shutdownTimeout.
func serve(server *http.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received, draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return <-errCh
}
