package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/errutil"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

// StartFetch pulls every issue and pull request of the repository in the background.
func (x *UseCase) StartFetch(ctx context.Context, repoID types.RepoID) (*model.SyncJob, error) {
	repo, err := x.fetchableRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}

	return x.launch(ctx, repo.ID, types.JobKindIssueFetch, types.JobModeFull, func(ctx context.Context, job *model.SyncJob) error {
		return x.syncItems(ctx, repo, job, nil)
	})
}

// Refresh pulls items updated since the last completed sync. Without a previous sync, it pulls everything.
func (x *UseCase) Refresh(ctx context.Context, repoID types.RepoID) (*model.SyncJob, error) {
	repo, err := x.fetchableRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}

	mode := types.JobModeRefresh
	var since *time.Time
	if repo.LastSyncedAt != nil {
		t := *repo.LastSyncedAt
		since = &t
	} else {
		mode = types.JobModeFull
	}

	return x.launch(ctx, repo.ID, types.JobKindIssueFetch, mode, func(ctx context.Context, job *model.SyncJob) error {
		return x.syncItems(ctx, repo, job, since)
	})
}

type listPageFunc func(ctx context.Context, owner, name string, input *interfaces.ListItemsInput) (*model.ItemPage, error)

func (x *UseCase) syncItems(ctx context.Context, repo *model.Repository, job *model.SyncJob, since *time.Time) error {
	gh := x.clients.GitHub()

	count, err := gh.CountItems(ctx, repo.Owner, repo.Name, since)
	if err != nil {
		return goerr.Wrap(err, "failed to count items")
	}
	job.Progress.Total = count.Issues + count.PullRequests
	if err := x.saveProgress(ctx, job); err != nil {
		return err
	}

	if err := x.syncPages(ctx, repo, job, since, gh.ListIssues); err != nil {
		return err
	}

	job.Kind = types.JobKindPRFetch
	if err := x.saveProgress(ctx, job); err != nil {
		return err
	}
	if err := x.syncPages(ctx, repo, job, since, gh.ListPullRequests); err != nil {
		return err
	}

	return x.finishSync(ctx, repo.ID, job)
}

// syncPages stores each page before it requests the next one.
func (x *UseCase) syncPages(ctx context.Context, repo *model.Repository, job *model.SyncJob, since *time.Time, list listPageFunc) error {
	input := &interfaces.ListItemsInput{Since: since}

	for {
		page, err := list(ctx, repo.Owner, repo.Name, input)
		if err != nil {
			return goerr.Wrap(err, "failed to fetch items", goerr.V("kind", job.Kind), goerr.V("cursor", input.Cursor))
		}

		if len(page.Items) > 0 {
			now := logging.CtxTime(ctx)
			for _, item := range page.Items {
				item.RepoID = repo.ID
				item.SyncedAt = now
			}
			if err := x.clients.Repository().PutItems(ctx, repo.ID, page.Items); err != nil {
				return goerr.Wrap(err, "failed to save items", goerr.V("kind", job.Kind), goerr.V("cursor", input.Cursor))
			}
		}

		job.Progress.Advance(len(page.Items))
		if err := x.saveProgress(ctx, job); err != nil {
			return err
		}
		logging.From(ctx).Debug("page synchronized",
			slog.Any("kind", job.Kind),
			slog.Int("items", len(page.Items)),
			slog.Int("current", job.Progress.Current),
			slog.Int("total", job.Progress.Total),
		)

		if !page.HasNextPage || page.EndCursor == "" {
			return nil
		}
		input.Cursor = page.EndCursor
	}
}

// finishSync records the sync time and takes a metrics snapshot. Only the sync time is required for the job to
// complete.
func (x *UseCase) finishSync(ctx context.Context, repoID types.RepoID, job *model.SyncJob) error {
	// settings may have changed while the job was running
	repo, err := x.clients.Repository().GetRepository(ctx, repoID)
	if err != nil {
		return goerr.Wrap(err, "failed to reload repository")
	}

	syncedAt := job.StartedAt
	repo.LastSyncedAt = &syncedAt
	if err := x.clients.Repository().PutRepository(ctx, repo); err != nil {
		return goerr.Wrap(err, "failed to save last sync time")
	}

	if err := x.recordMetrics(ctx, repo, job.ID); err != nil {
		errutil.HandleError(ctx, "failed to record metrics", err)
	}
	return nil
}

// RefreshItem fetches one issue or pull request and overwrites the cached row. It does not touch job state.
func (x *UseCase) RefreshItem(ctx context.Context, repoID types.RepoID, number int) (*model.Item, error) {
	if number <= 0 {
		return nil, goerr.Wrap(types.ErrValidationFailed, "item number must be positive", goerr.V("number", number))
	}

	repo, err := x.fetchableRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}

	item, err := x.clients.GitHub().GetItem(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch item", goerr.V("repo_id", repoID), goerr.V("number", number))
	}
	item.RepoID = repo.ID
	item.SyncedAt = logging.CtxTime(ctx)

	if err := x.clients.Repository().PutItems(ctx, repo.ID, []*model.Item{item}); err != nil {
		return nil, goerr.Wrap(err, "failed to save item", goerr.V("repo_id", repoID), goerr.V("number", number))
	}

	logging.From(ctx).Info("item refreshed",
		slog.String("repo_id", repoID.String()),
		slog.Int("number", number),
		slog.Any("kind", item.Kind),
	)
	return item, nil
}
