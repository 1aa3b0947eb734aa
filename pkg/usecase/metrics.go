package usecase

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/scoring"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

func (x *UseCase) GetMetrics(ctx context.Context, repoID types.RepoID) (*model.RepositoryMetrics, error) {
	repo, err := x.GetRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}

	metrics, err := x.clients.Repository().GetMetrics(ctx, repo.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get metrics", goerr.V("repo_id", repoID))
	}
	return metrics, nil
}

// recordMetrics stores a scored summary of the cached items and exports it to BigQuery when configured.
func (x *UseCase) recordMetrics(ctx context.Context, repo *model.Repository, jobID types.JobID) error {
	items, err := x.clients.Repository().ListItems(ctx, repo.ID, "")
	if err != nil {
		return goerr.Wrap(err, "failed to list items")
	}
	records, err := x.freshSentiments(ctx, repo.ID, items)
	if err != nil {
		return err
	}

	cfg := scoringConfig(ctx, repo, records)
	metrics := buildMetrics(repo.ID, jobID, cfg.Now, items, cfg)
	if err := x.clients.Repository().PutMetrics(ctx, metrics); err != nil {
		return goerr.Wrap(err, "failed to save metrics")
	}

	if bq := x.clients.BigQuery(); bq != nil {
		if err := exportMetrics(ctx, bq, metrics); err != nil {
			return err
		}
		logging.From(ctx).Info("metrics exported to BigQuery", slog.String("repo_id", repo.ID.String()))
	}
	return nil
}

func buildMetrics(repoID types.RepoID, jobID types.JobID, now time.Time, items []*model.Item, cfg scoring.Config) *model.RepositoryMetrics {
	metrics := &model.RepositoryMetrics{
		RepoID:    repoID,
		JobID:     jobID,
		Timestamp: now,
		PRStats:   scoring.PRStats(items),
	}

	for _, item := range items {
		if item.State != types.ItemStateOpen {
			continue
		}
		if item.Kind == types.ItemKindPullRequest {
			metrics.OpenPRs++
			continue
		}

		metrics.OpenIssues++
		metrics.Bugs.Add(scoring.Score(types.ScoreFamilyBugs, item, cfg).Level)
		metrics.Stale.Add(scoring.Score(types.ScoreFamilyStale, item, cfg).Level)
		metrics.Community.Add(scoring.Score(types.ScoreFamilyCommunity, item, cfg).Level)
	}
	return metrics
}

func exportMetrics(ctx context.Context, bq interfaces.BigQuery, metrics *model.RepositoryMetrics) error {
	schema, schemaUpdated, err := createOrUpdateBigQueryTable(ctx, bq, metrics)
	if err != nil {
		return err
	}

	raw := &model.MetricsRawRecord{
		RepositoryMetrics: *metrics,
		Timestamp:         metrics.Timestamp.UnixMicro(),
	}
	if err := bq.Insert(ctx, schema, raw, interfaces.WithRetry(schemaUpdated)); err != nil {
		return goerr.Wrap(err, "failed to insert metrics to BigQuery", goerr.V("repo_id", metrics.RepoID))
	}
	return nil
}

// createOrUpdateBigQueryTable creates the table or widens its schema to fit the metrics. schemaUpdated is true when
// an existing table was changed.
func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, metrics *model.RepositoryMetrics) (schema bigquery.Schema, schemaUpdated bool, err error) {
	schema, err = bqs.Infer(metrics)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to infer metrics schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, false, goerr.Wrap(err, "failed to create BigQuery table")
		}

		return schema, false, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, false, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, false, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, true, nil
}
