package bq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/infra/bq"
	"github.com/m-mizutani/ghpulse/pkg/utils/testutil"
)

func newClient(t *testing.T, prefix string) (*bq.Client, types.BQTableID) {
	t.Helper()
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")

	tblName := types.BQTableID(time.Now().Format(prefix + "_20060102_150405"))
	client, err := bq.New(context.Background(), types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)
	gt.NoError(t, err)
	return client, tblName
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	client, tblName := newClient(t, "metrics_test")

	metrics := model.RepositoryMetrics{
		RepoID:     "acme/app",
		JobID:      types.NewJobID(),
		Timestamp:  time.Now(),
		OpenIssues: 12,
		OpenPRs:    3,
		Bugs:       model.LevelCounts{Critical: 1, High: 2, Medium: 3, None: 6},
		PRStats:    model.PRStats{Total: 5, Open: 3, Draft: 1},
	}
	record := model.MetricsRawRecord{
		RepositoryMetrics: metrics,
		Timestamp:         metrics.Timestamp.UnixMicro(),
	}
	schema := gt.R1(bqs.Infer(record)).NoError(t)

	t.Run("create table", func(t *testing.T) {
		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))
		md := gt.R1(client.GetMetadata(ctx)).NoError(t)
		gt.True(t, bqs.Equal(md.Schema, schema))
	})

	t.Run("insert record", func(t *testing.T) {
		gt.NoError(t, client.Insert(ctx, schema, record))
	})
}

func TestGetMetadataNotFound(t *testing.T) {
	client, _ := newClient(t, "non_existent")

	md, err := client.GetMetadata(context.Background())
	gt.NoError(t, err)
	gt.True(t, md == nil)
}

func TestSchemaUpdateAndRetry(t *testing.T) {
	ctx := context.Background()
	client, tblName := newClient(t, "schema_retry_test")

	initialSchema := bigquery.Schema{
		{Name: "repo_id", Type: bigquery.StringFieldType},
		{Name: "open_issues", Type: bigquery.IntegerFieldType},
	}
	gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
		Name:   tblName.String(),
		Schema: initialSchema,
	}))

	md := gt.R1(client.GetMetadata(ctx)).NoError(t)
	updatedSchema := append(initialSchema, &bigquery.FieldSchema{Name: "open_prs", Type: bigquery.IntegerFieldType})
	gt.NoError(t, client.UpdateTable(ctx, bigquery.TableMetadataToUpdate{Schema: updatedSchema}, md.ETag))

	row := struct {
		RepoID     string `json:"repo_id"`
		OpenIssues int    `json:"open_issues"`
		OpenPRs    int    `json:"open_prs"`
	}{RepoID: "acme/app", OpenIssues: 4, OpenPRs: 2}

	gt.NoError(t, client.Insert(ctx, updatedSchema, row, interfaces.WithRetry(true)))
}

func TestProtoFieldJSONName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "keeps valid names",
			input: "open_issues",
			want:  "open_issues",
		},
		{
			name:  "renames invalid names",
			input: "good-first-issue",
			want:  "col_Z29vZC1maXJzdC1pc3N1ZQ",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gt.V(t, bq.ProtoFieldJSONName(tc.input)).Equal(tc.want)
		})
	}
}

func TestSanitizeProtoJSON(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"labels":{"good-first-issue":3,"bug":2}}`)
	sanitized := gt.R1(bq.SanitizeProtoJSON(raw)).NoError(t)

	dec := json.NewDecoder(bytes.NewReader(sanitized))
	dec.UseNumber()
	payload := map[string]any{}
	gt.NoError(t, dec.Decode(&payload))

	labels, ok := payload["labels"].(map[string]any)
	gt.True(t, ok)

	_, renamed := labels[bq.ProtoFieldJSONName("good-first-issue")]
	gt.True(t, renamed)
	_, original := labels["good-first-issue"]
	gt.False(t, original)
	_, kept := labels["bug"]
	gt.True(t, kept)
}

func TestIsSchemaNotFoundError(t *testing.T) {
	schemaMsg := "Input schema has more fields than BigQuery schema, extra fields: 'open_prs'"

	t.Run("detects gRPC InvalidArgument with schema mismatch message", func(t *testing.T) {
		err := status.Error(codes.InvalidArgument, schemaMsg)
		gt.True(t, bq.IsSchemaNotFoundError(err))
	})

	t.Run("detects error wrapped by goerr", func(t *testing.T) {
		err := goerr.Wrap(goerr.Wrap(status.Error(codes.InvalidArgument, schemaMsg), "level 1"), "level 2")
		gt.True(t, bq.IsSchemaNotFoundError(err))
	})

	t.Run("ignores InvalidArgument with another message", func(t *testing.T) {
		err := status.Error(codes.InvalidArgument, "Invalid request parameters")
		gt.False(t, bq.IsSchemaNotFoundError(err))
	})

	t.Run("ignores another gRPC code", func(t *testing.T) {
		err := status.Error(codes.PermissionDenied, schemaMsg)
		gt.False(t, bq.IsSchemaNotFoundError(err))
	})

	t.Run("ignores non-gRPC error", func(t *testing.T) {
		gt.False(t, bq.IsSchemaNotFoundError(errors.New("some other error")))
	})
}
