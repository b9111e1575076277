// Package database holds the query layer over PostgreSQL.

package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Query surface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBTX plus the ability to open a transaction.
type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Queries struct {
	db DBTX
}

// Returns a copy of the queries bound to the given transaction
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

type Database struct {
	*Queries
	conn DB
}

// Wraps an existing connection (or mock) in a Database
func New(conn DB) *Database {
	return &Database{
		Queries: &Queries{db: conn},
		conn:    conn,
	}
}

// Opens a connection pool against the given URL and pings it
func NewDatabase(ctx context.Context, url string) (*Database, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return New(pool), nil
}

func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	if closer, ok := d.conn.(interface{ Close() }); ok {
		closer.Close()
	}
	return nil
}
