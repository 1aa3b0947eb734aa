// Package rdb stores repositories and synchronized data in SQLite or PostgreSQL.
package rdb

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Client struct {
	db *sqlx.DB
}

var _ interfaces.Repository = (*Client)(nil)

// New opens the database and creates missing tables.
func New(ctx context.Context, driver, dsn string) (*Client, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "unsupported database driver", goerr.V("driver", driver))
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect database", goerr.V("driver", driver))
	}

	// SQLite allows one writer. A single connection also keeps ":memory:" databases alive.
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	client := NewWithDB(db)
	if err := client.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.From(ctx).Info("database connected", slog.String("driver", driver))
	return client, nil
}

// NewWithDB wraps an opened database without migration.
func NewWithDB(db *sqlx.DB) *Client {
	return &Client{db: db}
}

func (x *Client) Close() error {
	if err := x.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS repositories (
		id TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		repo_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		kind TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (repo_id, number)
	)`,
	`CREATE TABLE IF NOT EXISTS sync_jobs (
		id TEXT PRIMARY KEY,
		repo_id TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at BIGINT NOT NULL,
		data TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sync_jobs_repo_started ON sync_jobs (repo_id, started_at)`,
	`CREATE INDEX IF NOT EXISTS sync_jobs_status ON sync_jobs (status)`,
	`CREATE TABLE IF NOT EXISTS sentiments (
		repo_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (repo_id, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS metrics (
		repo_id TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`,
}

// Migrate creates tables and indexes that do not exist yet.
func (x *Client) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := x.db.ExecContext(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to migrate database", goerr.V("statement", stmt))
		}
	}
	return nil
}
