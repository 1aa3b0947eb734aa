package interfaces

import (
	"context"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

// Repository stores tracked repositories and everything synchronized for them. Writes replace whole rows.
type Repository interface {
	PutRepository(ctx context.Context, repo *model.Repository) error
	GetRepository(ctx context.Context, repoID types.RepoID) (*model.Repository, error)
	ListRepositories(ctx context.Context) ([]*model.Repository, error)
	// DeleteRepository removes the repository with its items, jobs, sentiment records and metrics
	DeleteRepository(ctx context.Context, repoID types.RepoID) error

	// PutItems writes all items or none of them
	PutItems(ctx context.Context, repoID types.RepoID, items []*model.Item) error
	GetItem(ctx context.Context, repoID types.RepoID, number int) (*model.Item, error)
	ListItems(ctx context.Context, repoID types.RepoID, kind types.ItemKind) ([]*model.Item, error)

	PutSyncJob(ctx context.Context, job *model.SyncJob) error
	// GetLatestSyncJob returns nil without error when the repository has never been synchronized
	GetLatestSyncJob(ctx context.Context, repoID types.RepoID) (*model.SyncJob, error)
	ListSyncJobsByStatus(ctx context.Context, status types.JobStatus) ([]*model.SyncJob, error)

	PutSentiment(ctx context.Context, record *model.SentimentRecord) error
	ListSentiments(ctx context.Context, repoID types.RepoID) ([]*model.SentimentRecord, error)

	PutMetrics(ctx context.Context, metrics *model.RepositoryMetrics) error
	GetMetrics(ctx context.Context, repoID types.RepoID) (*model.RepositoryMetrics, error)
}
