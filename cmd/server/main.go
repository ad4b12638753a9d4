// Package main is the entry point of the tutoring API server. It loads
// configuration, wires the engine components and their persistence
// pipeline, and serves the HTTP surface.
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

	"github.com/quillmind/tutor-api/internal/adaptation"
	"github.com/quillmind/tutor-api/internal/analyzer"
	"github.com/quillmind/tutor-api/internal/config"
	"github.com/quillmind/tutor-api/internal/domain"
	"github.com/quillmind/tutor-api/internal/events"
	"github.com/quillmind/tutor-api/internal/generation"
	"github.com/quillmind/tutor-api/internal/knowledge"
	"github.com/quillmind/tutor-api/internal/platform/gemini"
	"github.com/quillmind/tutor-api/internal/platform/logger"
	"github.com/quillmind/tutor-api/internal/platform/postgres"
	"github.com/quillmind/tutor-api/internal/profile"
	"github.com/quillmind/tutor-api/internal/respcache"
	"github.com/quillmind/tutor-api/internal/sessionctx"
	"github.com/quillmind/tutor-api/internal/service/tutor"
	"github.com/quillmind/tutor-api/internal/store"
	"github.com/quillmind/tutor-api/internal/task"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	appLogger := logger.Setup(cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional persistence gateway. Without a database URL the engine
	// runs on in-memory state only.
	var (
		profiles store.ProfileStore
		messages store.MessageStore
		sessions store.SessionStore
	)
	if cfg.Database.URL != "" {
		db, err := openDatabase(ctx, cfg.Database.URL, appLogger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		profiles = postgres.NewPostgresProfileStore(db, appLogger)
		messages = postgres.NewPostgresMessageStore(db, appLogger)
		sessions = postgres.NewPostgresSessionStore(db, appLogger)
	} else {
		appLogger.Warn("no database configured, running with in-memory persistence")
		profiles = store.NewMemoryProfileStore()
		messages = store.NewMemoryMessageStore()
		sessions = store.NewMemorySessionStore()
	}

	generator, err := buildGenerator(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	// Background persistence pipeline: service -> emitter -> runner -> stores.
	runner := task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, appLogger)
	runner.Start()
	defer runner.Stop()

	emitter := events.NewInMemoryEventEmitter(appLogger)
	emitter.RegisterHandler(task.NewPersistEventHandler(runner, profiles, messages, sessions, appLogger))

	// A missing stored profile is not an error: a default is created.
	profileLoader := func(userID string) (*domain.LearningProfile, error) {
		p, err := profiles.GetByUserID(context.Background(), userID)
		if store.IsNotFoundError(err) {
			return nil, nil
		}
		return p, err
	}

	service := tutor.NewService(
		appLogger,
		analyzer.New(),
		knowledge.Default(),
		profile.NewStore(profileLoader, appLogger),
		sessionctx.NewManager(),
		adaptation.NewEngine(),
		respcache.New(respcache.DefaultCapacity),
		generator,
		emitter,
		sessions,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           newRouter(service),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openDatabase connects to PostgreSQL through the pgx stdlib driver and
// applies pending migrations.
func openDatabase(ctx context.Context, url string, appLogger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	goose.SetLogger(gooseLogger{appLogger})
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	appLogger.Info("database ready")
	return db, nil
}

// buildGenerator returns the Gemini generator when an API key is
// configured, and an always-apologizing fallback otherwise.
func buildGenerator(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) (generation.Generator, error) {
	if cfg.LLM.GeminiAPIKey == "" {
		appLogger.Warn("no LLM API key configured, generated answers are disabled")
		return generation.GeneratorFunc(func(context.Context, string) (string, error) {
			return "", generation.ErrGenerationFailed
		}), nil
	}
	g, err := gemini.NewGeminiGenerator(ctx, appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("initialize generator: %w", err)
	}
	return g, nil
}

// gooseLogger adapts slog to goose's logger interface.
type gooseLogger struct {
	logger *slog.Logger
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.logger.Info(fmt.Sprintf(format, v...))
}
