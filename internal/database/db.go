// Package database provides typed PostgreSQL queries for users, sessions,
// channels and messages, plus the transaction helper every mutation runs
// under.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx used by Queries. Both *pgxpool.Pool and pgx.Tx
// satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// DB wraps the connection pool and hands out transactional query handles.
type DB struct {
	pool *pgxpool.Pool
}

func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// WithTx begins a transaction, runs fn with a transactional Querier, commits
// on success and rolls back on error or panic. Panics are rethrown.
func (d *DB) WithTx(ctx context.Context, fn func(q Querier) error) error {
	return d.runTx(ctx, pgx.TxOptions{}, fn)
}

// ReadTx is WithTx with a read-only transaction. Relation resolution uses it
// so each lookup runs in its own short transaction.
func (d *DB) ReadTx(ctx context.Context, fn func(q Querier) error) error {
	return d.runTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (d *DB) runTx(ctx context.Context, opts pgx.TxOptions, fn func(q Querier) error) (err error) {
	tx, err := d.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("internal/database: begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(New(tx))
	return err
}
