package rdb_test

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository"
	"github.com/m-mizutani/ghpulse/pkg/repository/rdb"
	"github.com/m-mizutani/ghpulse/pkg/repository/testhelper"
)

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	client, err := rdb.New(ctx, rdb.DriverSQLite, ":memory:")
	gt.NoError(t, err)
	t.Cleanup(func() { gt.NoError(t, client.Close()) })

	testhelper.TestAll(t, client)

	// migration is idempotent
	gt.NoError(t, client.Migrate(ctx))
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	client, err := rdb.New(context.Background(), rdb.DriverPostgres, dsn)
	gt.NoError(t, err)
	t.Cleanup(func() { gt.NoError(t, client.Close()) })

	testhelper.TestAll(t, client)
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := rdb.New(context.Background(), "mysql", "dsn")
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}

func newMock(t *testing.T) (*rdb.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	gt.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return rdb.NewWithDB(sqlx.NewDb(db, rdb.DriverPostgres)), mock
}

func issue(number int) *model.Item {
	return &model.Item{
		ID:        "node",
		RepoID:    "acme/app",
		Kind:      types.ItemKindIssue,
		Number:    number,
		State:     types.ItemStateOpen,
		UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPutItemsPostgres(t *testing.T) {
	countQuery := regexp.QuoteMeta(`SELECT COUNT(*) FROM repositories WHERE id = $1`)
	insertQuery := regexp.QuoteMeta(`INSERT INTO items (repo_id, number, kind, data) VALUES ($1, $2, $3, $4)`)

	t.Run("writes every item in one transaction", func(t *testing.T) {
		client, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(countQuery).WithArgs("acme/app").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(insertQuery).WithArgs("acme/app", 1, "issue", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertQuery).WithArgs("acme/app", 2, "issue", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := client.PutItems(context.Background(), "acme/app", []*model.Item{issue(1), issue(2)})
		gt.NoError(t, err)
		gt.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a write fails", func(t *testing.T) {
		client, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(countQuery).WithArgs("acme/app").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(insertQuery).WithArgs("acme/app", 1, "issue", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertQuery).WithArgs("acme/app", 2, "issue", sqlmock.AnyArg()).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := client.PutItems(context.Background(), "acme/app", []*model.Item{issue(1), issue(2)})
		gt.Error(t, err)
		gt.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown repository", func(t *testing.T) {
		client, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(countQuery).WithArgs("acme/app").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectRollback()

		err := client.PutItems(context.Background(), "acme/app", []*model.Item{issue(1)})
		gt.True(t, errors.Is(err, repository.ErrNotFound))
		gt.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetLatestSyncJobPostgres(t *testing.T) {
	client, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM repositories WHERE id = $1`)).WithArgs("acme/app").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM sync_jobs WHERE repo_id = $1 ORDER BY started_at DESC LIMIT 1`)).
		WithArgs("acme/app").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	job, err := client.GetLatestSyncJob(context.Background(), "acme/app")
	gt.NoError(t, err)
	gt.True(t, job == nil)
	gt.NoError(t, mock.ExpectationsWereMet())
}
