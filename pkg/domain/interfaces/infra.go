package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery GitHub LLMProvider LLMFactory

import (
	"context"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
)

type BigQueryInsertOption func(*BigQueryInsertConfig)

type BigQueryInsertConfig struct {
	EnableRetry bool
}

func WithRetry(retry bool) BigQueryInsertOption {
	return func(c *BigQueryInsertConfig) {
		c.EnableRetry = retry
	}
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any, opts ...BigQueryInsertOption) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// GitHub reads issues and pull requests. Every call goes through the shared fetch client.
type GitHub interface {
	GetRepositoryID(ctx context.Context, owner, name string) (int64, error)
	CountItems(ctx context.Context, owner, name string, since *time.Time) (*model.ItemCount, error)
	ListIssues(ctx context.Context, owner, name string, input *ListItemsInput) (*model.ItemPage, error)
	ListPullRequests(ctx context.Context, owner, name string, input *ListItemsInput) (*model.ItemPage, error)
	GetItem(ctx context.Context, owner, name string, number int) (*model.Item, error)
}

type ListItemsInput struct {
	Cursor string
	// Since limits the listing to items updated at or after the time
	Since *time.Time
}

type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type LLMFactory interface {
	NewProvider(cfg model.SentimentConfig) (LLMProvider, error)
}
