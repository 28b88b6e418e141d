// Package repository handles all interactions with the database.
//
// It contains the SQL for each operation, runs it under a per-query
// timeout, and converts driver failures into *errs.Error values with
// sqlerr.HandleError.
package repository

import (
	"context"
	"time"

	"github.com/deppfellow/lightbnb/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// DBTX is the subset of *pgxpool.Pool the repositories use. pgx.Tx and
// pgxmock pools satisfy it as well.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Options tune how statements run.
type Options struct {
	// QueryTimeout bounds each statement. Zero means no client deadline.
	QueryTimeout time.Duration

	// SlowQueryThreshold logs statements slower than this at warn.
	// Zero disables it.
	SlowQueryThreshold time.Duration

	Logger *zerolog.Logger
}

// executor runs one statement per call.
type executor struct {
	db   DBTX
	opts Options
}

func newExecutor(db DBTX, opts Options) executor {
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	return executor{db: db, opts: opts}
}

// run calls fn under the query timeout and maps its error.
func (e executor) run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	if e.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.QueryTimeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	if t := e.opts.SlowQueryThreshold; t > 0 && elapsed > t {
		e.opts.Logger.Warn().
			Str("operation", operation).
			Dur("duration", elapsed).
			Dur("threshold", t).
			Msg("slow query")
	}

	return sqlerr.HandleError(err)
}
