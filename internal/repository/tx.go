package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/metrics"
)

const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213

	maxTxAttempts = 3
)

// WithRetryTx runs fn in a transaction and re-runs it when the store reports a
// transient serialization failure (deadlock, lock wait timeout, busy database).
// fn must be safe to re-run: everything it wrote is rolled back before a retry.
func WithRetryTx(ctx context.Context, database *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = database.WithContext(ctx).Transaction(fn)
		if err == nil || !IsRetryable(err) || attempt == maxTxAttempts {
			return err
		}

		metrics.TxRetries.Inc()
		backoff := time.Duration(attempt*attempt) * 10 * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}

// IsRetryable reports whether err is a transient conflict between concurrent transactions.
func IsRetryable(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrDeadlock || myErr.Number == mysqlErrLockWaitTimeout
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}
