// Command create-user adds a shop account that can log in and check out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/garage-sale/internal/auth"
	"github.com/nikolayk812/garage-sale/internal/config"
	"github.com/nikolayk812/garage-sale/internal/repository"
	"github.com/nikolayk812/garage-sale/internal/telemetry"
)

func main() {
	username := flag.String("username", "", "login name of the new user")
	password := flag.String("password", "", "password of the new user")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry.InitLogger(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := createUser(ctx, cfg.Database.URL, *username, *password); err != nil {
		slog.Error("failed to create user", "username", *username, "error", err)
		os.Exit(1)
	}
}

func createUser(ctx context.Context, dbURL, username, password string) error {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	users, err := repository.NewUser(pool)
	if err != nil {
		return fmt.Errorf("repository.NewUser: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth.HashPassword: %w", err)
	}

	user, err := users.CreateUser(ctx, username, hash)
	if err != nil {
		return fmt.Errorf("users.CreateUser: %w", err)
	}

	slog.Info("user created", "user_id", user.ID, "username", user.Username)

	return nil
}
