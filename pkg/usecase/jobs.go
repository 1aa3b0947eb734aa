package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/errutil"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

const interruptedMessage = "interrupted by restart"

// jobRunner allows one running job per repository and keeps a snapshot of it.
type jobRunner struct {
	mu      sync.Mutex
	running map[types.RepoID]*model.SyncJob
	wg      sync.WaitGroup
}

func newJobRunner() *jobRunner {
	return &jobRunner{
		running: make(map[types.RepoID]*model.SyncJob),
	}
}

// acquire registers the job. When another job of the repository is running, it returns that job and false.
func (x *jobRunner) acquire(job *model.SyncJob) (*model.SyncJob, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if current, ok := x.running[job.RepoID]; ok {
		return current.Clone(), false
	}
	x.running[job.RepoID] = job.Clone()
	return nil, true
}

func (x *jobRunner) update(job *model.SyncJob) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if current, ok := x.running[job.RepoID]; ok && current.ID == job.ID {
		x.running[job.RepoID] = job.Clone()
	}
}

func (x *jobRunner) release(job *model.SyncJob) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if current, ok := x.running[job.RepoID]; ok && current.ID == job.ID {
		delete(x.running, job.RepoID)
	}
}

func (x *jobRunner) isRunning(jobID types.JobID) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, job := range x.running {
		if job.ID == jobID {
			return true
		}
	}
	return false
}

func (x *jobRunner) wait() {
	x.wg.Wait()
}

type jobFunc func(ctx context.Context, job *model.SyncJob) error

// launch persists a new job and runs it in the background. A start while another job of the repository is in
// progress does nothing and returns the running job.
func (x *UseCase) launch(ctx context.Context, repoID types.RepoID, kind types.JobKind, mode types.JobMode, run jobFunc) (*model.SyncJob, error) {
	job := model.NewSyncJob(repoID, kind, mode, logging.CtxTime(ctx))

	if current, ok := x.jobs.acquire(job); !ok {
		logging.From(ctx).Info("sync job is already in progress",
			slog.String("repo_id", repoID.String()),
			slog.String("job_id", string(current.ID)),
		)
		return current, nil
	}

	if err := x.clients.Repository().PutSyncJob(ctx, job); err != nil {
		x.jobs.release(job)
		return nil, goerr.Wrap(err, "failed to save sync job", goerr.V("repo_id", repoID))
	}

	logger := logging.From(ctx).With(
		slog.String("repo_id", repoID.String()),
		slog.String("job_id", string(job.ID)),
	)
	bgCtx := logging.With(logging.Detach(ctx), logger)
	snapshot := job.Clone()

	x.jobs.wg.Add(1)
	go func() {
		defer x.jobs.wg.Done()
		defer x.jobs.release(job)
		x.runJob(bgCtx, job, run)
	}()

	return snapshot, nil
}

func (x *UseCase) runJob(ctx context.Context, job *model.SyncJob, run jobFunc) {
	logger := logging.From(ctx)
	logger.Info("sync job started", slog.Any("kind", job.Kind), slog.Any("mode", job.Mode))

	defer func() {
		if r := recover(); r != nil {
			err := goerr.New("sync job panicked", goerr.V("recover", r))
			job.Fail(logging.CtxTime(ctx), err.Error())
			x.saveJob(ctx, job)
			errutil.HandleError(ctx, "sync job panicked", err)
		}
	}()

	if err := run(ctx, job); err != nil {
		job.Fail(logging.CtxTime(ctx), err.Error())
		x.saveJob(ctx, job)
		errutil.HandleError(ctx, "sync job failed", err)
		return
	}

	job.Complete(logging.CtxTime(ctx))
	x.saveJob(ctx, job)
	logger.Info("sync job completed",
		slog.Any("kind", job.Kind),
		slog.Int("current", job.Progress.Current),
		slog.Int("total", job.Progress.Total),
	)
}

// saveProgress persists a running job. A failed write is fatal for the job.
func (x *UseCase) saveProgress(ctx context.Context, job *model.SyncJob) error {
	job.UpdatedAt = logging.CtxTime(ctx)
	if err := x.clients.Repository().PutSyncJob(ctx, job); err != nil {
		return goerr.Wrap(err, "failed to save job progress")
	}
	x.jobs.update(job)
	return nil
}

func (x *UseCase) saveJob(ctx context.Context, job *model.SyncJob) {
	if err := x.clients.Repository().PutSyncJob(ctx, job); err != nil {
		errutil.HandleError(ctx, "failed to save sync job", err)
	}
}

func (x *UseCase) RecoverInterruptedJobs(ctx context.Context) error {
	jobs, err := x.clients.Repository().ListSyncJobsByStatus(ctx, types.JobStatusInProgress)
	if err != nil {
		return goerr.Wrap(err, "failed to list in-progress jobs")
	}

	for _, job := range jobs {
		if x.jobs.isRunning(job.ID) {
			continue
		}

		job.Fail(logging.CtxTime(ctx), interruptedMessage)
		if err := x.clients.Repository().PutSyncJob(ctx, job); err != nil {
			return goerr.Wrap(err, "failed to mark job as interrupted", goerr.V("job_id", job.ID))
		}
		logging.From(ctx).Warn("marked interrupted sync job as failed",
			slog.String("repo_id", job.RepoID.String()),
			slog.String("job_id", string(job.ID)),
		)
	}
	return nil
}

func (x *UseCase) GetStatus(ctx context.Context, repoID types.RepoID) (*model.SyncStatus, error) {
	repo, err := x.GetRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}
	return x.syncStatus(ctx, repo)
}

func (x *UseCase) syncStatus(ctx context.Context, repo *model.Repository) (*model.SyncStatus, error) {
	job, err := x.clients.Repository().GetLatestSyncJob(ctx, repo.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest sync job", goerr.V("repo_id", repo.ID))
	}

	status := &model.SyncStatus{
		Status:       types.JobStatusNotStarted,
		LastSyncedAt: repo.LastSyncedAt,
	}
	if job == nil {
		return status, nil
	}

	progress := job.Progress
	status.Status = job.Status
	status.Progress = &progress
	status.Message = job.Message
	if !job.Status.IsTerminal() {
		status.CurrentJob = job
	}
	return status, nil
}
