package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository"
)

// TestAll runs all test cases for Repository
// This is the main entry point for testing any Repository implementation
func TestAll(t *testing.T, repo interfaces.Repository) {
	t.Run("RepositoryCRUD", func(t *testing.T) {
		TestRepositoryCRUD(t, repo)
	})
	t.Run("DeleteCascade", func(t *testing.T) {
		TestDeleteCascade(t, repo)
	})
	t.Run("Items", func(t *testing.T) {
		TestItems(t, repo)
	})
	t.Run("ItemsAllOrNothing", func(t *testing.T) {
		TestItemsAllOrNothing(t, repo)
	})
	t.Run("SyncJobs", func(t *testing.T) {
		TestSyncJobs(t, repo)
	})
	t.Run("Sentiments", func(t *testing.T) {
		TestSentiments(t, repo)
	})
	t.Run("Metrics", func(t *testing.T) {
		TestMetrics(t, repo)
	})
}

// newRepository stores a repository with a unique ID so that cases can share one store
func newRepository(t *testing.T, repo interfaces.Repository) *model.Repository {
	t.Helper()

	owner := fmt.Sprintf("owner-%s", uuid.New().String()[:8])
	name := fmt.Sprintf("repo-%s", uuid.New().String()[:8])
	now := time.Now().UTC().Truncate(time.Microsecond)

	r := &model.Repository{
		ID:       types.NewRepoID(owner, name),
		Owner:    owner,
		Name:     name,
		GitHubID: 1234,
		IsGitHub: true,
		Settings: model.RepositorySettings{
			BugLabels:   []string{"bug"},
			Maintainers: []string{"alice"},
			Thresholds: model.ThresholdSet{
				Bugs: model.Thresholds{Critical: 40, High: 20, Medium: 5},
			},
			Sentiment: model.SentimentConfig{
				Provider: types.SentimentProviderOpenAI,
				APIKey:   "sk-test",
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	gt.NoError(t, repo.PutRepository(context.Background(), r))
	return r
}

func newItem(repoID types.RepoID, number int, kind types.ItemKind, updatedAt time.Time) *model.Item {
	item := &model.Item{
		ID:           fmt.Sprintf("node-%s-%d", repoID, number),
		RepoID:       repoID,
		Kind:         kind,
		Number:       number,
		Title:        fmt.Sprintf("item %d", number),
		Body:         "body",
		URL:          fmt.Sprintf("https://github.com/%s/issues/%d", repoID, number),
		State:        types.ItemStateOpen,
		Author:       "bob",
		CreatedAt:    updatedAt.Add(-48 * time.Hour),
		UpdatedAt:    updatedAt,
		CommentCount: 2,
		Labels:       []string{"bug", "p1"},
		Assignees:    []string{"carol"},
		Reactions:    model.Reactions{ThumbsUp: 3, Eyes: 1},
		Comments: []model.Comment{
			{Author: "alice", CreatedAt: updatedAt.Add(-time.Hour)},
		},
		SyncedAt: updatedAt,
	}
	if kind == types.ItemKindPullRequest {
		item.PullRequest = &model.PullRequestInfo{
			IsDraft:        true,
			Mergeable:      model.MergeableConflicting,
			ReviewDecision: model.ReviewRequired,
			Reviewers:      []string{"dave"},
			Additions:      10,
		}
	}
	return item
}

// TestRepositoryCRUD tests basic CRUD operations for Repository
func TestRepositoryCRUD(t *testing.T, repo interfaces.Repository) {
	ctx := context.Background()
	r := newRepository(t, repo)

	retrieved, err := repo.GetRepository(ctx, r.ID)
	gt.NoError(t, err)
	gt.V(t, retrieved.ID).Equal(r.ID)
	gt.V(t, retrieved.Owner).Equal(r.Owner)
	gt.V(t, retrieved.Name).Equal(r.Name)
	gt.V(t, retrieved.GitHubID).Equal(int64(1234))
	gt.V(t, retrieved.IsGitHub).Equal(true)
	gt.V(t, retrieved.Settings.BugLabels).Equal([]string{"bug"})
	gt.V(t, retrieved.Settings.Thresholds.Bugs.Critical).Equal(40)
	gt.V(t, retrieved.Settings.Sentiment.APIKey).Equal(types.APIKey("sk-test"))
	gt.True(t, retrieved.CreatedAt.Equal(r.CreatedAt))
	gt.True(t, retrieved.LastSyncedAt == nil)

	// Update the repository
	synced := time.Now().UTC().Truncate(time.Microsecond)
	r.LastSyncedAt = &synced
	r.Settings.Maintainers = []string{"alice", "erin"}
	gt.NoError(t, repo.PutRepository(ctx, r))

	retrieved, err = repo.GetRepository(ctx, r.ID)
	gt.NoError(t, err)
	gt.True(t, retrieved.LastSyncedAt != nil)
	gt.True(t, retrieved.LastSyncedAt.Equal(synced))
	gt.V(t, retrieved.Settings.Maintainers).Equal([]string{"alice", "erin"})

	// Returned values are copies
	retrieved.Settings.Maintainers[0] = "mallory"
	again, err := repo.GetRepository(ctx, r.ID)
	gt.NoError(t, err)
	gt.V(t, again.Settings.Maintainers[0]).Equal("alice")

	repos, err := repo.ListRepositories(ctx)
	gt.NoError(t, err)
	var found bool
	for _, x := range repos {
		if x.ID == r.ID {
			found = true
		}
	}
	gt.True(t, found)

	// Test not found
	nonExistentID := types.NewRepoID("nonexistent-"+uuid.New().String()[:8], "repo")
	_, err = repo.GetRepository(ctx, nonExistentID)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	err = repo.DeleteRepository(ctx, nonExistentID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestDeleteCascade tests that deleting a repository removes every dependent record
func TestDeleteCascade(t *testing.T, repo interfaces.Repository) {
	ctx := context.Background()
	r := newRepository(t, repo)
	now := time.Now().UTC().Truncate(time.Microsecond)

	item := newItem(r.ID, 1, types.ItemKindIssue, now)
	gt.NoError(t, repo.PutItems(ctx, r.ID, []*model.Item{item}))
	job := model.NewSyncJob(r.ID, types.JobKindIssueFetch, types.JobModeFull, now)
	gt.NoError(t, repo.PutSyncJob(ctx, job))
	gt.NoError(t, repo.PutSentiment(ctx, &model.SentimentRecord{
		RepoID: r.ID, ItemID: item.ID, ContentHash: item.ContentHash(), Score: 10,
		Status: types.SentimentStatusOK, AnalyzedAt: now,
	}))
	gt.NoError(t, repo.PutMetrics(ctx, &model.RepositoryMetrics{RepoID: r.ID, JobID: job.ID, Timestamp: now}))

	gt.NoError(t, repo.DeleteRepository(ctx, r.ID))

	_, err := repo.GetRepository(ctx, r.ID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	// Re-adding the same repository starts from scratch
	gt.NoError(t, repo.PutRepository(ctx, r))

	items, err := repo.ListItems(ctx, r.ID, "")
	gt.NoError(t, err)
	gt.V(t, len(items)).Equal(0)

	latest, err := repo.GetLatestSyncJob(ctx, r.ID)
	gt.NoError(t, err)
	gt.True(t, latest == nil)

	records, err := repo.ListSentiments(ctx, r.ID)
	gt.NoError(t, err)
	gt.V(t, len(records)).Equal(0)

	_, err = repo.GetMetrics(ctx, r.ID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestItems tests item write and read including pull request details
func TestItems(t *testing.T, repo interfaces.Repository) {
	ctx := context.Background()
	r := newRepository(t, repo)
	now := time.Now().UTC().Truncate(time.Microsecond)

	issue := newItem(r.ID, 1, types.ItemKindIssue, now)
	pr := newItem(r.ID, 2, types.ItemKindPullRequest, now)
	gt.NoError(t, repo.PutItems(ctx, r.ID, []*model.Item{issue, pr}))

	got, err := repo.GetItem(ctx, r.ID, 1)
	gt.NoError(t, err)
	gt.V(t, got.ID).Equal(issue.ID)
	gt.V(t, got.Kind).Equal(types.ItemKindIssue)
	gt.V(t, got.Title).Equal("item 1")
	gt.V(t, got.Labels).Equal([]string{"bug", "p1"})
	gt.V(t, got.Reactions.ThumbsUp).Equal(3)
	gt.V(t, len(got.Comments)).Equal(1)
	gt.V(t, got.Comments[0].Author).Equal("alice")
	gt.True(t, got.UpdatedAt.Equal(now))
	gt.True(t, got.PullRequest == nil)

	gotPR, err := repo.GetItem(ctx, r.ID, 2)
	gt.NoError(t, err)
	gt.True(t, gotPR.PullRequest != nil)
	gt.V(t, gotPR.PullRequest.IsDraft).Equal(true)
	gt.V(t, gotPR.PullRequest.Reviewers).Equal([]string{"dave"})

	issues, err := repo.ListItems(ctx, r.ID, types.ItemKindIssue)
	gt.NoError(t, err)
	gt.V(t, len(issues)).Equal(1)
	gt.V(t, issues[0].Number).Equal(1)

	all, err := repo.ListItems(ctx, r.ID, "")
	gt.NoError(t, err)
	gt.V(t, len(all)).Equal(2)

	// Whole row replacement
	issue.Title = "renamed"
	issue.Labels = []string{"feature"}
	issue.State = types.ItemStateClosed
	gt.NoError(t, repo.PutItems(ctx, r.ID, []*model.Item{issue}))

	got, err = repo.GetItem(ctx, r.ID, 1)
	gt.NoError(t, err)
	gt.V(t, got.Title).Equal("renamed")
	gt.V(t, got.Labels).Equal([]string{"feature"})
	gt.V(t, got.State).Equal(types.ItemStateClosed)

	_, err = repo.GetItem(ctx, r.ID, 999)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestItemsAllOrNothing tests that an invalid item rejects the whole batch
func TestItemsAllOrNothing(t *testing.T, repo interfaces.Repository) {
	ctx := context.Background()
	r := newRepository(t, repo)
	now := time.Now().UTC().Truncate(time.Microsecond)

	good := newItem(r.ID, 1, types.ItemKindIssue, now)
	bad := newItem(r.ID, 0, types.ItemKindIssue, now)
	err := repo.PutItems(ctx, r.ID, []*model.Item{good, bad})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))

	items, err := repo.ListItems(ctx, r.ID, "")
	gt.NoError(t, err)
	gt.V(t, len(items)).Equal(0)

	// Items of unknown repositories are rejected
	unknown := types.NewRepoID("nobody-"+uuid.New().String()[:8], "none")
	err = repo.PutItems(ctx, unknown, []*model.Item{newItem(unknown, 1, types.ItemKindIssue, now)})
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestSyncJobs tests job updates, the latest job lookup and listing by status
func TestSyncJobs(t *testing.T, repo interfaces.Repository) {
	ctx := context.Background()
	r := newRepository(t, repo)
	now := time.Now().UTC().Truncate(time.Microsecond)

	latest, err := repo.GetLatestSyncJob(ctx, r.ID)
	gt.NoError(t, err)
	gt.True(t, latest == nil)

	first := model.NewSyncJob(r.ID, types.JobKindIssueFetch, types.JobModeFull, now.Add(-time.Hour))
	first.Complete(now.Add(-30 * time.Minute))
	gt.NoError(t, repo.PutSyncJob(ctx, first))

	second := model.NewSyncJob(r.ID, types.JobKindIssueFetch, types.JobModeRefresh, now)
	second.Progress = model.Progress{Current: 5, Total: 10}
	gt.NoError(t, repo.PutSyncJob(ctx, second))

	latest, err = repo.GetLatestSyncJob(ctx, r.ID)
	gt.NoError(t, err)
	gt.V(t, latest.ID).Equal(second.ID)
	gt.V(t, latest.Status).Equal(types.JobStatusInProgress)
	gt.V(t, latest.Progress).Equal(model.Progress{Current: 5, Total: 10})
	gt.True(t, latest.FinishedAt == nil)

	running, err := repo.ListSyncJobsByStatus(ctx, types.JobStatusInProgress)
	gt.NoError(t, err)
	var found bool
	for _, job := range running {
		gt.V(t, job.Status).Equal(types.JobStatusInProgress)
		if job.ID == second.ID {
			found = true
		}
	}
	gt.True(t, found)

	// Update in place
	second.Kind = types.JobKindPRFetch
	second.Fail(now.Add(time.Minute), "boom")
	gt.NoError(t, repo.PutSyncJob(ctx, second))

	latest, err = repo.GetLatestSyncJob(ctx, r.ID)
	gt.NoError(t, err)
	gt.V(t, latest.ID).Equal(second.ID)
	gt.V(t, latest.Kind).Equal(types.JobKindPRFetch)
	gt.V(t, latest.Status).Equal(types.JobStatusFailed)
	gt.V(t, latest.Message).Equal("boom")
	gt.True(t, latest.FinishedAt != nil)
}

// TestSentiments tests that one record is kept per item
func TestSentiments(t *testing.T, repo interfaces.Repository) {
	ctx := context.Background()
	r := newRepository(t, repo)
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := &model.SentimentRecord{
		RepoID:      r.ID,
		ItemID:      "node-1",
		ContentHash: "abc",
		Status:      types.SentimentStatusFailed,
		Error:       "timeout",
		Provider:    types.SentimentProviderOpenAI,
		AnalyzedAt:  now,
	}
	gt.NoError(t, repo.PutSentiment(ctx, record))

	record.Status = types.SentimentStatusOK
	record.Error = ""
	record.Score = 21
	gt.NoError(t, repo.PutSentiment(ctx, record))

	records, err := repo.ListSentiments(ctx, r.ID)
	gt.NoError(t, err)
	gt.V(t, len(records)).Equal(1)
	gt.V(t, records[0].ItemID).Equal("node-1")
	gt.V(t, records[0].Score).Equal(21)
	gt.V(t, records[0].Status).Equal(types.SentimentStatusOK)
	gt.V(t, records[0].ContentHash).Equal("abc")
	gt.True(t, records[0].AnalyzedAt.Equal(now))
}

// TestMetrics tests that the latest snapshot replaces the previous one
func TestMetrics(t *testing.T, repo interfaces.Repository) {
	ctx := context.Background()
	r := newRepository(t, repo)
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := repo.GetMetrics(ctx, r.ID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	gt.NoError(t, repo.PutMetrics(ctx, &model.RepositoryMetrics{
		RepoID: r.ID, JobID: "job-1", Timestamp: now.Add(-time.Hour), OpenIssues: 3,
	}))
	gt.NoError(t, repo.PutMetrics(ctx, &model.RepositoryMetrics{
		RepoID:     r.ID,
		JobID:      "job-2",
		Timestamp:  now,
		OpenIssues: 5,
		OpenPRs:    2,
		Bugs:       model.LevelCounts{Critical: 1, None: 4},
		PRStats:    model.PRStats{Total: 2, Open: 2, Draft: 1},
	}))

	got, err := repo.GetMetrics(ctx, r.ID)
	gt.NoError(t, err)
	gt.V(t, got.JobID).Equal(types.JobID("job-2"))
	gt.V(t, got.OpenIssues).Equal(5)
	gt.V(t, got.Bugs).Equal(model.LevelCounts{Critical: 1, None: 4})
	gt.V(t, got.PRStats.Draft).Equal(1)
	gt.True(t, got.Timestamp.Equal(now))
}
