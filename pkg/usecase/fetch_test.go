package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

// pagedIssues serves one issue per page. Pages are addressed by cursors "c1", "c2", ...
func pagedIssues(repoID types.RepoID, pages int, failAt int) func(ctx context.Context, owner, name string, input *interfaces.ListItemsInput) (*model.ItemPage, error) {
	return func(ctx context.Context, owner, name string, input *interfaces.ListItemsInput) (*model.ItemPage, error) {
		idx := 0
		if input.Cursor != "" {
			_, _ = fmt.Sscanf(input.Cursor, "c%d", &idx)
		}
		if idx+1 == failAt {
			return nil, errors.New("upstream exploded")
		}
		return &model.ItemPage{
			Items:       []*model.Item{newIssue(repoID, idx+1)},
			EndCursor:   fmt.Sprintf("c%d", idx+1),
			HasNextPage: idx+1 < pages,
		}, nil
	}
}

func setupFetch(env *testEnv, repoID types.RepoID) {
	env.gh.CountItemsFunc = func(ctx context.Context, owner, name string, since *time.Time) (*model.ItemCount, error) {
		return &model.ItemCount{Issues: 3, PullRequests: 1}, nil
	}
	env.gh.ListIssuesFunc = pagedIssues(repoID, 3, 0)
	env.gh.ListPullRequestsFunc = func(ctx context.Context, owner, name string, input *interfaces.ListItemsInput) (*model.ItemPage, error) {
		return &model.ItemPage{Items: []*model.Item{newPullRequest(repoID, 10)}}, nil
	}
}

func TestStartFetch(t *testing.T) {
	env := newTestEnv(t)
	env.addRepository(t, "acme", "app")
	setupFetch(env, "acme/app")
	ctx := testContext()

	job, err := env.uc.StartFetch(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, job.Status).Equal(types.JobStatusInProgress)
	gt.V(t, job.Mode).Equal(types.JobModeFull)
	env.uc.Wait()

	status, err := env.uc.GetStatus(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, status.Status).Equal(types.JobStatusCompleted)
	gt.V(t, *status.Progress).Equal(model.Progress{Current: 4, Total: 4})
	gt.True(t, status.CurrentJob == nil)
	gt.True(t, status.LastSyncedAt.Equal(testNow))

	issues, err := env.repo.ListItems(ctx, "acme/app", types.ItemKindIssue)
	gt.NoError(t, err)
	gt.V(t, len(issues)).Equal(3)
	gt.True(t, issues[0].SyncedAt.Equal(testNow))

	prs, err := env.repo.ListItems(ctx, "acme/app", types.ItemKindPullRequest)
	gt.NoError(t, err)
	gt.V(t, len(prs)).Equal(1)

	latest, err := env.repo.GetLatestSyncJob(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, latest.ID).Equal(job.ID)
	gt.V(t, latest.Kind).Equal(types.JobKindPRFetch)

	metrics, err := env.uc.GetMetrics(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, metrics.JobID).Equal(job.ID)
	gt.V(t, metrics.OpenIssues).Equal(3)
	gt.V(t, metrics.OpenPRs).Equal(1)
	gt.V(t, metrics.PRStats.Open).Equal(1)

	// the cursor of each page is passed to the next request
	calls := env.gh.ListIssuesCalls()
	gt.V(t, len(calls)).Equal(3)
	gt.V(t, calls[0].Input.Cursor).Equal("")
	gt.V(t, calls[2].Input.Cursor).Equal("c2")
	gt.True(t, calls[0].Input.Since == nil)
}

func TestStartFetchDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.addRepository(t, "acme", "app")
	setupFetch(env, "acme/app")
	ctx := testContext()

	release := make(chan struct{})
	serve := pagedIssues("acme/app", 1, 0)
	env.gh.ListIssuesFunc = func(ctx context.Context, owner, name string, input *interfaces.ListItemsInput) (*model.ItemPage, error) {
		<-release
		return serve(ctx, owner, name, input)
	}

	first, err := env.uc.StartFetch(ctx, "acme/app")
	gt.NoError(t, err)
	second, err := env.uc.StartFetch(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, second.ID).Equal(first.ID)

	refresh, err := env.uc.Refresh(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, refresh.ID).Equal(first.ID)

	close(release)
	env.uc.Wait()

	gt.V(t, len(env.gh.CountItemsCalls())).Equal(1)
	status, err := env.uc.GetStatus(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, status.Status).Equal(types.JobStatusCompleted)

	// a new request after completion starts another job
	third, err := env.uc.StartFetch(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, third.ID).NotEqual(first.ID)
}

func TestStartFetchPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	env.addRepository(t, "acme", "app")
	setupFetch(env, "acme/app")
	env.gh.ListIssuesFunc = pagedIssues("acme/app", 5, 4)
	ctx := testContext()

	_, err := env.uc.StartFetch(ctx, "acme/app")
	gt.NoError(t, err)
	env.uc.Wait()

	status, err := env.uc.GetStatus(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, status.Status).Equal(types.JobStatusFailed)
	gt.True(t, strings.Contains(status.Message, "upstream exploded"))
	gt.V(t, status.Progress.Current).Equal(3)
	gt.True(t, status.LastSyncedAt == nil)

	out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app"})
	gt.NoError(t, err)
	gt.V(t, out.TotalItems).Equal(3)
	gt.V(t, out.FetchStatus.Status).Equal(types.JobStatusFailed)

	_, err = env.uc.GetMetrics(ctx, "acme/app")
	gt.Error(t, err)
	gt.V(t, len(env.gh.ListPullRequestsCalls())).Equal(0)
}

func TestRefresh(t *testing.T) {
	t.Run("without previous sync pulls everything", func(t *testing.T) {
		env := newTestEnv(t)
		env.addRepository(t, "acme", "app")
		setupFetch(env, "acme/app")

		job, err := env.uc.Refresh(testContext(), "acme/app")
		gt.NoError(t, err)
		gt.V(t, job.Mode).Equal(types.JobModeFull)
		env.uc.Wait()

		gt.True(t, env.gh.CountItemsCalls()[0].Since == nil)
	})

	t.Run("after a sync only pulls updated items", func(t *testing.T) {
		env := newTestEnv(t)
		env.addRepository(t, "acme", "app")
		setupFetch(env, "acme/app")

		_, err := env.uc.StartFetch(testContext(), "acme/app")
		gt.NoError(t, err)
		env.uc.Wait()

		later := testNow.Add(time.Hour)
		ctx := logging.CtxWithTime(context.Background(), func() time.Time { return later })
		job, err := env.uc.Refresh(ctx, "acme/app")
		gt.NoError(t, err)
		gt.V(t, job.Mode).Equal(types.JobModeRefresh)
		env.uc.Wait()

		counts := env.gh.CountItemsCalls()
		gt.V(t, len(counts)).Equal(2)
		gt.True(t, counts[1].Since.Equal(testNow))

		issueCalls := env.gh.ListIssuesCalls()
		gt.True(t, issueCalls[len(issueCalls)-1].Input.Since.Equal(testNow))

		repo, err := env.uc.GetRepository(ctx, "acme/app")
		gt.NoError(t, err)
		gt.True(t, repo.LastSyncedAt.Equal(later))
	})
}

func TestFetchLocalRepository(t *testing.T) {
	env := newTestEnv(t)
	local := false
	_, err := env.uc.AddRepository(testContext(), &model.AddRepositoryInput{Owner: "acme", Name: "local", IsGitHub: &local})
	gt.NoError(t, err)
	ctx := testContext()

	_, err = env.uc.StartFetch(ctx, "acme/local")
	gt.True(t, errors.Is(err, types.ErrNotGitHubRepository))
	_, err = env.uc.Refresh(ctx, "acme/local")
	gt.True(t, errors.Is(err, types.ErrNotGitHubRepository))
	_, err = env.uc.RefreshItem(ctx, "acme/local", 1)
	gt.True(t, errors.Is(err, types.ErrNotGitHubRepository))

	status, err := env.uc.GetStatus(ctx, "acme/local")
	gt.NoError(t, err)
	gt.V(t, status.Status).Equal(types.JobStatusNotStarted)
}

func TestRefreshItem(t *testing.T) {
	env := newTestEnv(t)
	env.addRepository(t, "acme", "app")
	ctx := testContext()

	env.gh.GetItemFunc = func(ctx context.Context, owner, name string, number int) (*model.Item, error) {
		item := newIssue("acme/app", number)
		item.Title = "updated title"
		return item, nil
	}
	gt.NoError(t, env.repo.PutItems(ctx, "acme/app", []*model.Item{newIssue("acme/app", 7)}))

	item, err := env.uc.RefreshItem(ctx, "acme/app", 7)
	gt.NoError(t, err)
	gt.V(t, item.Title).Equal("updated title")

	stored, err := env.repo.GetItem(ctx, "acme/app", 7)
	gt.NoError(t, err)
	gt.V(t, stored.Title).Equal("updated title")
	gt.True(t, stored.SyncedAt.Equal(testNow))

	job, err := env.repo.GetLatestSyncJob(ctx, "acme/app")
	gt.NoError(t, err)
	gt.True(t, job == nil)

	_, err = env.uc.RefreshItem(ctx, "acme/app", 0)
	gt.True(t, errors.Is(err, types.ErrValidationFailed))
}

func TestRecoverInterruptedJobs(t *testing.T) {
	env := newTestEnv(t)
	env.addRepository(t, "acme", "app")
	ctx := testContext()

	stale := model.NewSyncJob("acme/app", types.JobKindIssueFetch, types.JobModeFull, testNow.Add(-time.Hour))
	gt.NoError(t, env.repo.PutSyncJob(ctx, stale))

	gt.NoError(t, env.uc.RecoverInterruptedJobs(ctx))

	status, err := env.uc.GetStatus(ctx, "acme/app")
	gt.NoError(t, err)
	gt.V(t, status.Status).Equal(types.JobStatusFailed)
	gt.V(t, status.Message).Equal("interrupted by restart")

	// a failed job can be restarted
	setupFetch(env, "acme/app")
	_, err = env.uc.StartFetch(ctx, "acme/app")
	gt.NoError(t, err)
}
