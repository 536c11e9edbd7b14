// @title        Hotel Admin API
// @version      1.0
// @description  Staff accounts, generic content CRUD and form submissions for hotel operations.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/innsight/hotel-admin/internal/api"
	"github.com/innsight/hotel-admin/internal/api/handler"
	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/content"
	"github.com/innsight/hotel-admin/internal/core/forms"
	"github.com/innsight/hotel-admin/internal/core/ports"
	"github.com/innsight/hotel-admin/internal/core/service"
	mongostore "github.com/innsight/hotel-admin/internal/infrastructure/db/mongo"
	pgstore "github.com/innsight/hotel-admin/internal/infrastructure/db/postgres"
	redisstore "github.com/innsight/hotel-admin/internal/infrastructure/db/redis"
	"github.com/innsight/hotel-admin/internal/infrastructure/queue"
	"github.com/innsight/hotel-admin/internal/infrastructure/security"
	"github.com/innsight/hotel-admin/internal/pkg/config"
	"github.com/innsight/hotel-admin/pkg/logger"
)

const (
	serviceName     = "hotel-admin"
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: serviceName,
		Version: version,
	})

	repo, checks, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()
	checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

	// --- Revalidation fan-out ---
	signals := redisstore.NewRevalidator(rdb)
	dispatcher := queue.NewDispatcher(cfg.Redis.Workers, signals, logger.With("revalidate"))
	dispatcher.Start(ctx)

	// --- Core ---
	gate := auth.NewGate(auth.ContextProvider{})
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	users := service.NewUserService(repo, gate, hasher, dispatcher, logger.With("users"))
	setup := service.NewSetupService(repo, hasher, dispatcher, cfg.Setup.Secret, logger.With("setup"))
	authService := service.NewAuthService(repo, hasher, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, logger.With("auth"))

	entries := append(service.UserFormEntries(users, repo, gate), setup.FormEntry())
	formRegistry, err := forms.NewRegistry(logger.With("forms"), service.DeclaredForms, entries...)
	if err != nil {
		return err
	}
	contentRegistry, err := content.NewRegistry(content.Declared, map[string]content.Handler{
		content.Users: service.NewUsersContent(users, gate),
	})
	if err != nil {
		return err
	}

	e := api.NewRouter(log, api.Options{
		JWTSecret:     cfg.Auth.JWTSecret,
		SessionTTL:    cfg.Auth.SessionTTL,
		SecureCookies: cfg.Auth.SecureCookies,
		SignInRate:    cfg.Auth.SignInRate,
		SignInBurst:   cfg.Auth.SignInBurst,
		SetupEnabled:  setup.Configured(),
	}, api.Dependencies{
		Gate:     gate,
		Auth:     authService,
		Setup:    setup,
		Forms:    formRegistry,
		Content:  contentRegistry,
		Versions: signals,
		Checks:   checks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStore connects the configured user store, prepares its indexes and
// returns its readiness check.
func openStore(ctx context.Context, cfg *config.Config) (ports.UserRepository, map[string]handler.Check, func(), error) {
	log := logger.With("store")

	if strings.EqualFold(cfg.Store.Driver, config.DriverPostgres) {
		db, err := pgstore.Connect(ctx, pgstore.Config{URL: cfg.Store.PostgresURL})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := pgstore.NewUserRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		checks := map[string]handler.Check{"postgres": db.PingContext}
		return repo, checks, func() { closeWith(log, "postgres", db.Close) }, nil
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, nil, err
	}
	repo := mongostore.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, nil, err
	}
	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}
	return repo, checks, func() {
		closeWith(log, "mongodb", func() error { return client.Disconnect(context.Background()) })
	}, nil
}

func closeWith(log zerolog.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		log.Error().Err(err).Str("dependency", name).Msg("close failed")
	}
}
