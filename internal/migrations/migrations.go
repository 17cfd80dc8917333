// Package migrations embeds the schema and applies pending up-migrations in version order.
package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.up.sql
var files embed.FS

const upSuffix = ".up.sql"

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Load returns the embedded up-migrations sorted by version.
// File names follow the <version>_<name>.up.sql pattern.
func Load() ([]Migration, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("files.ReadDir: %w", err)
	}

	var migrations []Migration

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), upSuffix) {
			continue
		}

		rawVersion, name, ok := strings.Cut(strings.TrimSuffix(entry.Name(), upSuffix), "_")
		if !ok {
			return nil, fmt.Errorf("migration[%s]: missing version prefix", entry.Name())
		}

		version, err := strconv.Atoi(rawVersion)
		if err != nil {
			return nil, fmt.Errorf("migration[%s]: bad version: %w", entry.Name(), err)
		}

		content, err := files.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("files.ReadFile: %w", err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			SQL:     string(content),
		})
	}

	slices.SortFunc(migrations, func(a, b Migration) int {
		return a.Version - b.Version
	})

	return migrations, nil
}

// Apply runs every migration not yet recorded in schema_migrations, each in its own transaction.
// It returns the versions it applied.
func Apply(ctx context.Context, pool *pgxpool.Pool) ([]int, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations
		(
			version    INTEGER PRIMARY KEY,
			name       TEXT        NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	migrations, err := Load()
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	rows, err := pool.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("select versions: %w", err)
	}
	applied, err := pgx.CollectRows(rows, pgx.RowTo[int32])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	var done []int

	for _, m := range migrations {
		if slices.Contains(applied, int32(m.Version)) {
			continue
		}

		if err := applyOne(ctx, pool, m); err != nil {
			return done, fmt.Errorf("migration[%d_%s]: %w", m.Version, m.Name, err)
		}

		slog.InfoContext(ctx, "migration applied", "version", m.Version, "name", m.Name)
		done = append(done, m.Version)
	}

	return done, nil
}

func applyOne(ctx context.Context, pool *pgxpool.Pool, m Migration) (txErr error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return fmt.Errorf("tx.Exec: %w", err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", m.Version, m.Name); err != nil {
		return fmt.Errorf("record version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}
