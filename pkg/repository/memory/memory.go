package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository"
)

type repoData struct {
	repo       *model.Repository
	items      map[int]*model.Item
	jobs       []*model.SyncJob
	sentiments map[string]*model.SentimentRecord
	metrics    *model.RepositoryMetrics
}

type store struct {
	mu    sync.RWMutex
	repos map[types.RepoID]*repoData
}

var _ interfaces.Repository = (*store)(nil)

// New creates a new in-memory repository
func New() interfaces.Repository {
	return &store{
		repos: make(map[types.RepoID]*repoData),
	}
}

func notFound(repoID types.RepoID) error {
	return goerr.Wrap(repository.ErrNotFound, "repository not found", goerr.V("repo_id", repoID))
}

// Repository operations

func (r *store) PutRepository(ctx context.Context, repo *model.Repository) error {
	if repo == nil || repo.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "repository ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if data, exists := r.repos[repo.ID]; exists {
		data.repo = repo.Clone()
		return nil
	}

	r.repos[repo.ID] = &repoData{
		repo:       repo.Clone(),
		items:      make(map[int]*model.Item),
		sentiments: make(map[string]*model.SentimentRecord),
	}
	return nil
}

func (r *store) GetRepository(ctx context.Context, repoID types.RepoID) (*model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.repos[repoID]
	if !exists {
		return nil, notFound(repoID)
	}
	return data.repo.Clone(), nil
}

func (r *store) ListRepositories(ctx context.Context) ([]*model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	repos := make([]*model.Repository, 0, len(r.repos))
	for _, data := range r.repos {
		repos = append(repos, data.repo.Clone())
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].ID < repos[j].ID })

	return repos, nil
}

func (r *store) DeleteRepository(ctx context.Context, repoID types.RepoID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.repos[repoID]; !exists {
		return notFound(repoID)
	}
	delete(r.repos, repoID)
	return nil
}

// Item operations

func (r *store) PutItems(ctx context.Context, repoID types.RepoID, items []*model.Item) error {
	for _, item := range items {
		if item == nil || item.Number <= 0 {
			return goerr.Wrap(repository.ErrInvalidInput, "item number is required", goerr.V("repo_id", repoID))
		}
		if item.RepoID != repoID {
			return goerr.Wrap(repository.ErrInvalidInput, "item belongs to another repository",
				goerr.V("repo_id", repoID), goerr.V("item_repo_id", item.RepoID))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.repos[repoID]
	if !exists {
		return notFound(repoID)
	}
	for _, item := range items {
		data.items[item.Number] = item.Clone()
	}
	return nil
}

func (r *store) GetItem(ctx context.Context, repoID types.RepoID, number int) (*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.repos[repoID]
	if !exists {
		return nil, notFound(repoID)
	}
	item, exists := data.items[number]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "item not found",
			goerr.V("repo_id", repoID), goerr.V("number", number))
	}
	return item.Clone(), nil
}

func (r *store) ListItems(ctx context.Context, repoID types.RepoID, kind types.ItemKind) ([]*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.repos[repoID]
	if !exists {
		return nil, notFound(repoID)
	}

	items := make([]*model.Item, 0, len(data.items))
	for _, item := range data.items {
		if kind != "" && item.Kind != kind {
			continue
		}
		items = append(items, item.Clone())
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })

	return items, nil
}

// Sync job operations

func (r *store) PutSyncJob(ctx context.Context, job *model.SyncJob) error {
	if job == nil || job.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "job ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.repos[job.RepoID]
	if !exists {
		return notFound(job.RepoID)
	}
	for i, j := range data.jobs {
		if j.ID == job.ID {
			data.jobs[i] = job.Clone()
			return nil
		}
	}
	data.jobs = append(data.jobs, job.Clone())
	return nil
}

func (r *store) GetLatestSyncJob(ctx context.Context, repoID types.RepoID) (*model.SyncJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.repos[repoID]
	if !exists {
		return nil, notFound(repoID)
	}

	var latest *model.SyncJob
	for _, job := range data.jobs {
		if latest == nil || !job.StartedAt.Before(latest.StartedAt) {
			latest = job
		}
	}
	return latest.Clone(), nil
}

func (r *store) ListSyncJobsByStatus(ctx context.Context, status types.JobStatus) ([]*model.SyncJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var jobs []*model.SyncJob
	for _, data := range r.repos {
		for _, job := range data.jobs {
			if job.Status == status {
				jobs = append(jobs, job.Clone())
			}
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].StartedAt.Before(jobs[j].StartedAt) })

	return jobs, nil
}

// Sentiment operations

func (r *store) PutSentiment(ctx context.Context, record *model.SentimentRecord) error {
	if record == nil || record.ItemID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "item ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.repos[record.RepoID]
	if !exists {
		return notFound(record.RepoID)
	}
	cpy := *record
	data.sentiments[record.ItemID] = &cpy
	return nil
}

func (r *store) ListSentiments(ctx context.Context, repoID types.RepoID) ([]*model.SentimentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.repos[repoID]
	if !exists {
		return nil, notFound(repoID)
	}

	records := make([]*model.SentimentRecord, 0, len(data.sentiments))
	for _, record := range data.sentiments {
		cpy := *record
		records = append(records, &cpy)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ItemID < records[j].ItemID })

	return records, nil
}

// Metrics operations

func (r *store) PutMetrics(ctx context.Context, metrics *model.RepositoryMetrics) error {
	if metrics == nil {
		return goerr.Wrap(repository.ErrInvalidInput, "metrics is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.repos[metrics.RepoID]
	if !exists {
		return notFound(metrics.RepoID)
	}
	cpy := *metrics
	data.metrics = &cpy
	return nil
}

func (r *store) GetMetrics(ctx context.Context, repoID types.RepoID) (*model.RepositoryMetrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.repos[repoID]
	if !exists {
		return nil, notFound(repoID)
	}
	if data.metrics == nil {
		return nil, goerr.Wrap(repository.ErrNotFound, "metrics not found", goerr.V("repo_id", repoID))
	}
	cpy := *data.metrics
	return &cpy, nil
}
