package pgstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"libreserve/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTxRetriesExceeded = errs.New("transaction failed after max retries")

// RunInTxWithRetry runs fn inside a transaction, retrying serialization
// failures and deadlocks up to maxRetries times with linear backoff. Any
// other error aborts immediately.
func RunInTxWithRetry[T any](ctx context.Context, db *pgxpool.Pool, maxRetries int, fn func(tx pgx.Tx) (T, error)) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		result, err := runInTx(ctx, db, fn)
		if err == nil {
			return result, nil
		}
		if !isRetryableError(err) {
			return zero, err
		}
		if attempt >= maxRetries {
			return zero, errs.Mark(err, ErrTxRetriesExceeded)
		}

		wait := time.Duration(attempt+1) * 100 * time.Millisecond
		slog.Warn("retrying transaction",
			"attempt", attempt+1,
			"wait", wait,
			"error", err)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func runInTx[T any](ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := db.Begin(ctx)
	if err != nil {
		return zero, errs.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rbErr)
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, errs.Wrap(err, "failed to commit transaction")
	}
	return result, nil
}

// 40001 serialization_failure, 40P01 deadlock_detected
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
