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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/garage-sale/internal/auth"
	"github.com/nikolayk812/garage-sale/internal/cache"
	"github.com/nikolayk812/garage-sale/internal/catalog"
	"github.com/nikolayk812/garage-sale/internal/config"
	"github.com/nikolayk812/garage-sale/internal/httpx"
	"github.com/nikolayk812/garage-sale/internal/migrations"
	"github.com/nikolayk812/garage-sale/internal/port"
	"github.com/nikolayk812/garage-sale/internal/repository"
	"github.com/nikolayk812/garage-sale/internal/telemetry"
)

const cacheNamespace = "garage-sale"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry.InitLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint, cfg.Server.Env)
	if err != nil {
		return fmt.Errorf("telemetry.SetupTracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	if cfg.Database.MigrateOnBoot {
		applied, err := migrations.Apply(ctx, pool)
		if err != nil {
			return fmt.Errorf("migrations.Apply: %w", err)
		}
		slog.Info("migrations done", "applied", applied)
	}

	handler, err := newHandler(ctx, cfg, pool)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpx.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("garage sale http server running", "addr", cfg.Server.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}

func newHandler(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*httpx.Handler, error) {
	items, err := repository.NewItem(pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewItem: %w", err)
	}

	carts, err := repository.NewCart(pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewCart: %w", err)
	}

	orders, err := repository.NewOrder(pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewOrder: %w", err)
	}

	users, err := repository.NewUser(pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewUser: %w", err)
	}

	shop, err := catalog.New(items, cfg.Catalog.PageSize)
	if err != nil {
		return nil, fmt.Errorf("catalog.New: %w", err)
	}

	store := auth.NewCookieStore([]byte(cfg.Session.Secret), cfg.Session.Secure, cfg.Session.MaxAge)

	authenticator, err := auth.NewAuthenticator(store, users)
	if err != nil {
		return nil, fmt.Errorf("auth.NewAuthenticator: %w", err)
	}

	var idempotency port.Cache
	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, fmt.Errorf("cache.Connect: %w", err)
		}

		idempotency, err = cache.NewRedis(client, cacheNamespace)
		if err != nil {
			return nil, fmt.Errorf("cache.NewRedis: %w", err)
		}
	} else {
		slog.Warn("REDIS_ADDR is empty, checkout idempotency keys are ignored")
	}

	h, err := httpx.NewHandler(httpx.Dependencies{
		Items:          items,
		Carts:          carts,
		Orders:         orders,
		Catalog:        shop,
		Auth:           authenticator,
		Cache:          idempotency,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		DB:             pool,
	})
	if err != nil {
		return nil, fmt.Errorf("httpx.NewHandler: %w", err)
	}

	return h, nil
}
