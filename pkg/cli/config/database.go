package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository/memory"
	"github.com/m-mizutani/ghpulse/pkg/repository/rdb"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

const DriverMemory = "memory"

type Database struct {
	driver string
	dsn    string `masq:"secret"`
}

func (x *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-driver",
			Usage:       "Database driver [memory|sqlite3|postgres]",
			Category:    "Database",
			Value:       DriverMemory,
			Destination: &x.driver,
			Sources:     cli.EnvVars("GHPULSE_DB_DRIVER"),
		},
		&cli.StringFlag{
			Name:        "db-dsn",
			Usage:       "Data source name, e.g. file path of SQLite or URL of PostgreSQL",
			Category:    "Database",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("GHPULSE_DB_DSN"),
		},
	}
}

// NewRepository opens the store. The returned function closes it.
func (x *Database) NewRepository(ctx context.Context) (interfaces.Repository, func(), error) {
	switch x.driver {
	case "", DriverMemory:
		logging.From(ctx).Warn("in-memory database is used, data is lost on exit")
		return memory.New(), func() {}, nil

	case rdb.DriverSQLite, rdb.DriverPostgres:
		if x.dsn == "" {
			return nil, nil, goerr.Wrap(types.ErrInvalidOption, "db-dsn is required", goerr.V("driver", x.driver))
		}
		client, err := rdb.New(ctx, x.driver, x.dsn)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {
			if err := client.Close(); err != nil {
				logging.From(ctx).Error("failed to close database", slog.Any("error", err))
			}
		}, nil

	default:
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "unsupported database driver", goerr.V("driver", x.driver))
	}
}

func (x *Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", x.driver),
		slog.Int("dsn.len", len(x.dsn)),
	)
}
