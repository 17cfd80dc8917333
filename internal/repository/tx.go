package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/garage-sale/internal/db"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/nikolayk812/garage-sale/internal/repository")

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// SQLSTATE codes for which the whole transaction was aborted by the server and may be retried.
var abortCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
}

func withTx[T any](ctx context.Context, pool *pgxpool.Pool, q *db.Queries, opts pgx.TxOptions, fn func(q *db.Queries) (T, error)) (_ T, txErr error) {
	var zero T

	// If we're already in a transaction (pool is nil), just use the existing queries
	if pool == nil {
		return fn(q)
	}

	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return zero, fmt.Errorf("pool.BeginTx: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(q.WithTx(tx))
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}

// classifyTxErr turns server-side transaction aborts into *domain.TransactionError.
func classifyTxErr(op string, err error) error {
	if err == nil {
		return nil
	}

	if _, ok := abortCodes[pgErrorCode(err)]; ok {
		return &domain.TransactionError{Op: op, Err: err}
	}

	return err
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
