package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

type UseCase interface {
	AddRepository(ctx context.Context, input *model.AddRepositoryInput) (*model.Repository, error)
	ListRepositories(ctx context.Context) ([]*model.Repository, error)
	GetRepository(ctx context.Context, repoID types.RepoID) (*model.Repository, error)
	DeleteRepository(ctx context.Context, repoID types.RepoID) error
	UpdateSettings(ctx context.Context, repoID types.RepoID, settings *model.RepositorySettings) (*model.Repository, error)

	StartFetch(ctx context.Context, repoID types.RepoID) (*model.SyncJob, error)
	Refresh(ctx context.Context, repoID types.RepoID) (*model.SyncJob, error)
	RefreshItem(ctx context.Context, repoID types.RepoID, number int) (*model.Item, error)
	GetStatus(ctx context.Context, repoID types.RepoID) (*model.SyncStatus, error)
	// RecoverInterruptedJobs fails persisted in-progress jobs that no runner owns anymore
	RecoverInterruptedJobs(ctx context.Context) error

	ListIssues(ctx context.Context, input *model.ListIssuesInput) (*model.ListIssuesOutput, error)
	ListPullRequests(ctx context.Context, input *model.ListPullRequestsInput) (*model.ListPullRequestsOutput, error)
	GetMetrics(ctx context.Context, repoID types.RepoID) (*model.RepositoryMetrics, error)

	StartSentimentAnalysis(ctx context.Context, repoID types.RepoID) (*model.SyncJob, error)
	TestAPIKey(ctx context.Context, cfg *model.SentimentConfig) *model.APIKeyTestResult
}
