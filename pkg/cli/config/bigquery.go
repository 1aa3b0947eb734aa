package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/infra/bq"
)

type BigQuery struct {
	projectID       types.GoogleProjectID
	datasetID       types.BQDatasetID
	tableID         types.BQTableID
	credentialsFile string
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID of the metrics export (optional)",
			Category:    "BigQuery",
			Destination: (*string)(&x.projectID),
			Sources:     cli.EnvVars("GHPULSE_BIGQUERY_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Destination: (*string)(&x.datasetID),
			Sources:     cli.EnvVars("GHPULSE_BIGQUERY_DATASET_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID",
			Category:    "BigQuery",
			Value:       "repository_metrics",
			Destination: (*string)(&x.tableID),
			Sources:     cli.EnvVars("GHPULSE_BIGQUERY_TABLE_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-credentials",
			Usage:       "Service account key file. Application default credentials are used when empty",
			Category:    "BigQuery",
			Destination: &x.credentialsFile,
			Sources:     cli.EnvVars("GHPULSE_BIGQUERY_CREDENTIALS"),
		},
	}
}

// NewClient returns nil when the export is not configured.
func (x *BigQuery) NewClient(ctx context.Context) (interfaces.BigQuery, error) {
	if x.projectID == "" {
		return nil, nil
	}
	if x.datasetID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bigquery-dataset-id is required with bigquery-project-id")
	}

	var options []option.ClientOption
	if x.credentialsFile != "" {
		options = append(options, option.WithCredentialsFile(x.credentialsFile))
	}

	client, err := bq.New(ctx, x.projectID, x.datasetID, x.tableID, options...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("datasetID", x.datasetID),
		slog.Any("tableID", x.tableID),
		slog.String("credentialsFile", x.credentialsFile),
	)
}
