package rdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository"
	"github.com/m-mizutani/ghpulse/pkg/utils/safe"
)

func encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode record")
	}
	return string(raw), nil
}

func decode[T any](data string) (*T, error) {
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, goerr.Wrap(err, "failed to decode record")
	}
	return &v, nil
}

func decodeAll[T any](rows []string) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for _, data := range rows {
		v, err := decode[T](data)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (x *Client) exec(ctx context.Context, q sqlx.ExecerContext, query string, args ...any) (sql.Result, error) {
	res, err := q.ExecContext(ctx, x.db.Rebind(query), args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to execute query", goerr.V("query", query))
	}
	return res, nil
}

func (x *Client) requireRepository(ctx context.Context, q sqlx.QueryerContext, repoID types.RepoID) error {
	var n int
	err := sqlx.GetContext(ctx, q, &n, x.db.Rebind(`SELECT COUNT(*) FROM repositories WHERE id = ?`), repoID.String())
	if err != nil {
		return goerr.Wrap(err, "failed to look up repository", goerr.V("repo_id", repoID))
	}
	if n == 0 {
		return goerr.Wrap(repository.ErrNotFound, "repository not found", goerr.V("repo_id", repoID))
	}
	return nil
}

// Repository operations

func (x *Client) PutRepository(ctx context.Context, repo *model.Repository) error {
	if repo == nil || repo.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "repository ID is required")
	}

	data, err := encode(repo)
	if err != nil {
		return err
	}

	_, err = x.exec(ctx, x.db, `INSERT INTO repositories (id, data) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data`, repo.ID.String(), data)
	return err
}

func (x *Client) GetRepository(ctx context.Context, repoID types.RepoID) (*model.Repository, error) {
	var data string
	err := x.db.GetContext(ctx, &data, x.db.Rebind(`SELECT data FROM repositories WHERE id = ?`), repoID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(repository.ErrNotFound, "repository not found", goerr.V("repo_id", repoID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get repository", goerr.V("repo_id", repoID))
	}

	return decode[model.Repository](data)
}

func (x *Client) ListRepositories(ctx context.Context) ([]*model.Repository, error) {
	var rows []string
	if err := x.db.SelectContext(ctx, &rows, `SELECT data FROM repositories ORDER BY id`); err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories")
	}
	return decodeAll[model.Repository](rows)
}

func (x *Client) DeleteRepository(ctx context.Context, repoID types.RepoID) error {
	tx, err := x.db.BeginTxx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(tx.Tx)

	res, err := x.exec(ctx, tx, `DELETE FROM repositories WHERE id = ?`, repoID.String())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return goerr.Wrap(err, "failed to get affected rows")
	} else if n == 0 {
		return goerr.Wrap(repository.ErrNotFound, "repository not found", goerr.V("repo_id", repoID))
	}

	for _, table := range []string{"items", "sync_jobs", "sentiments", "metrics"} {
		if _, err := x.exec(ctx, tx, `DELETE FROM `+table+` WHERE repo_id = ?`, repoID.String()); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit deletion", goerr.V("repo_id", repoID))
	}
	return nil
}

// Item operations

func (x *Client) PutItems(ctx context.Context, repoID types.RepoID, items []*model.Item) error {
	rows := make([]string, len(items))
	for i, item := range items {
		if item == nil || item.Number <= 0 {
			return goerr.Wrap(repository.ErrInvalidInput, "item number is required", goerr.V("repo_id", repoID))
		}
		if item.RepoID != repoID {
			return goerr.Wrap(repository.ErrInvalidInput, "item belongs to another repository",
				goerr.V("repo_id", repoID), goerr.V("item_repo_id", item.RepoID))
		}
		data, err := encode(item)
		if err != nil {
			return err
		}
		rows[i] = data
	}

	tx, err := x.db.BeginTxx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(tx.Tx)

	if err := x.requireRepository(ctx, tx, repoID); err != nil {
		return err
	}

	for i, item := range items {
		if _, err := x.exec(ctx, tx, `INSERT INTO items (repo_id, number, kind, data) VALUES (?, ?, ?, ?)
			ON CONFLICT (repo_id, number) DO UPDATE SET kind = excluded.kind, data = excluded.data`,
			repoID.String(), item.Number, string(item.Kind), rows[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit items", goerr.V("repo_id", repoID), goerr.V("count", len(items)))
	}
	return nil
}

func (x *Client) GetItem(ctx context.Context, repoID types.RepoID, number int) (*model.Item, error) {
	var data string
	err := x.db.GetContext(ctx, &data,
		x.db.Rebind(`SELECT data FROM items WHERE repo_id = ? AND number = ?`), repoID.String(), number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(repository.ErrNotFound, "item not found",
			goerr.V("repo_id", repoID), goerr.V("number", number))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get item", goerr.V("repo_id", repoID), goerr.V("number", number))
	}

	return decode[model.Item](data)
}

func (x *Client) ListItems(ctx context.Context, repoID types.RepoID, kind types.ItemKind) ([]*model.Item, error) {
	if err := x.requireRepository(ctx, x.db, repoID); err != nil {
		return nil, err
	}

	query := `SELECT data FROM items WHERE repo_id = ?`
	args := []any{repoID.String()}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY number`

	var rows []string
	if err := x.db.SelectContext(ctx, &rows, x.db.Rebind(query), args...); err != nil {
		return nil, goerr.Wrap(err, "failed to list items", goerr.V("repo_id", repoID))
	}
	return decodeAll[model.Item](rows)
}

// Sync job operations

func (x *Client) PutSyncJob(ctx context.Context, job *model.SyncJob) error {
	if job == nil || job.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "job ID is required")
	}
	if err := x.requireRepository(ctx, x.db, job.RepoID); err != nil {
		return err
	}

	data, err := encode(job)
	if err != nil {
		return err
	}

	_, err = x.exec(ctx, x.db, `INSERT INTO sync_jobs (id, repo_id, status, started_at, data) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET status = excluded.status, data = excluded.data`,
		string(job.ID), job.RepoID.String(), string(job.Status), job.StartedAt.UnixNano(), data)
	return err
}

func (x *Client) GetLatestSyncJob(ctx context.Context, repoID types.RepoID) (*model.SyncJob, error) {
	if err := x.requireRepository(ctx, x.db, repoID); err != nil {
		return nil, err
	}

	var data string
	err := x.db.GetContext(ctx, &data,
		x.db.Rebind(`SELECT data FROM sync_jobs WHERE repo_id = ? ORDER BY started_at DESC LIMIT 1`), repoID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest sync job", goerr.V("repo_id", repoID))
	}

	return decode[model.SyncJob](data)
}

func (x *Client) ListSyncJobsByStatus(ctx context.Context, status types.JobStatus) ([]*model.SyncJob, error) {
	var rows []string
	err := x.db.SelectContext(ctx, &rows,
		x.db.Rebind(`SELECT data FROM sync_jobs WHERE status = ? ORDER BY started_at`), string(status))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sync jobs", goerr.V("status", status))
	}
	return decodeAll[model.SyncJob](rows)
}

// Sentiment operations

func (x *Client) PutSentiment(ctx context.Context, record *model.SentimentRecord) error {
	if record == nil || record.ItemID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "item ID is required")
	}
	if err := x.requireRepository(ctx, x.db, record.RepoID); err != nil {
		return err
	}

	data, err := encode(record)
	if err != nil {
		return err
	}

	_, err = x.exec(ctx, x.db, `INSERT INTO sentiments (repo_id, item_id, data) VALUES (?, ?, ?)
		ON CONFLICT (repo_id, item_id) DO UPDATE SET data = excluded.data`,
		record.RepoID.String(), record.ItemID, data)
	return err
}

func (x *Client) ListSentiments(ctx context.Context, repoID types.RepoID) ([]*model.SentimentRecord, error) {
	if err := x.requireRepository(ctx, x.db, repoID); err != nil {
		return nil, err
	}

	var rows []string
	err := x.db.SelectContext(ctx, &rows,
		x.db.Rebind(`SELECT data FROM sentiments WHERE repo_id = ? ORDER BY item_id`), repoID.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sentiments", goerr.V("repo_id", repoID))
	}
	return decodeAll[model.SentimentRecord](rows)
}

// Metrics operations

func (x *Client) PutMetrics(ctx context.Context, metrics *model.RepositoryMetrics) error {
	if metrics == nil {
		return goerr.Wrap(repository.ErrInvalidInput, "metrics is required")
	}
	if err := x.requireRepository(ctx, x.db, metrics.RepoID); err != nil {
		return err
	}

	data, err := encode(metrics)
	if err != nil {
		return err
	}

	_, err = x.exec(ctx, x.db, `INSERT INTO metrics (repo_id, data) VALUES (?, ?)
		ON CONFLICT (repo_id) DO UPDATE SET data = excluded.data`, metrics.RepoID.String(), data)
	return err
}

func (x *Client) GetMetrics(ctx context.Context, repoID types.RepoID) (*model.RepositoryMetrics, error) {
	var data string
	err := x.db.GetContext(ctx, &data, x.db.Rebind(`SELECT data FROM metrics WHERE repo_id = ?`), repoID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(repository.ErrNotFound, "metrics not found", goerr.V("repo_id", repoID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get metrics", goerr.V("repo_id", repoID))
	}

	return decode[model.RepositoryMetrics](data)
}
