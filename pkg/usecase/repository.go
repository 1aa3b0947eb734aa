package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

func (x *UseCase) AddRepository(ctx context.Context, input *model.AddRepositoryInput) (*model.Repository, error) {
	if input == nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	repoID := types.NewRepoID(input.Owner, input.Name)
	if _, err := x.clients.Repository().GetRepository(ctx, repoID); err == nil {
		return nil, goerr.Wrap(repository.ErrAlreadyExists, "repository is already tracked", goerr.V("repo_id", repoID))
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to look up repository", goerr.V("repo_id", repoID))
	}

	now := logging.CtxTime(ctx)
	repo := &model.Repository{
		ID:        repoID,
		Owner:     input.Owner,
		Name:      input.Name,
		IsGitHub:  input.GitHubHosted(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if repo.IsGitHub {
		if gh := x.clients.GitHub(); gh != nil {
			id, err := gh.GetRepositoryID(ctx, repo.Owner, repo.Name)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to look up repository on GitHub", goerr.V("repo_id", repoID))
			}
			repo.GitHubID = id
		} else {
			logging.From(ctx).Warn("GitHub client is not configured, repository can not be fetched yet",
				slog.String("repo_id", repoID.String()))
		}
	}

	if err := x.clients.Repository().PutRepository(ctx, repo); err != nil {
		return nil, goerr.Wrap(err, "failed to save repository", goerr.V("repo_id", repoID))
	}

	logging.From(ctx).Info("repository added", slog.String("repo_id", repoID.String()), slog.Bool("github", repo.IsGitHub))
	return repo, nil
}

func (x *UseCase) ListRepositories(ctx context.Context) ([]*model.Repository, error) {
	repos, err := x.clients.Repository().ListRepositories(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories")
	}
	return repos, nil
}

func (x *UseCase) GetRepository(ctx context.Context, repoID types.RepoID) (*model.Repository, error) {
	if err := repoID.Validate(); err != nil {
		return nil, err
	}

	repo, err := x.clients.Repository().GetRepository(ctx, repoID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get repository", goerr.V("repo_id", repoID))
	}
	return repo, nil
}

// DeleteRepository removes the repository and everything synchronized for it. A job still running for the
// repository fails on its next write.
func (x *UseCase) DeleteRepository(ctx context.Context, repoID types.RepoID) error {
	if err := repoID.Validate(); err != nil {
		return err
	}

	if err := x.clients.Repository().DeleteRepository(ctx, repoID); err != nil {
		return goerr.Wrap(err, "failed to delete repository", goerr.V("repo_id", repoID))
	}

	logging.From(ctx).Info("repository deleted", slog.String("repo_id", repoID.String()))
	return nil
}

func (x *UseCase) UpdateSettings(ctx context.Context, repoID types.RepoID, settings *model.RepositorySettings) (*model.Repository, error) {
	if settings == nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "settings is required")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	repo, err := x.GetRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}

	repo.Settings = settings.Clone()
	repo.Settings.BugLabels = model.NormalizeLabels(repo.Settings.BugLabels)
	repo.Settings.FeatureLabels = model.NormalizeLabels(repo.Settings.FeatureLabels)
	repo.UpdatedAt = logging.CtxTime(ctx)

	if err := x.clients.Repository().PutRepository(ctx, repo); err != nil {
		return nil, goerr.Wrap(err, "failed to save settings", goerr.V("repo_id", repoID))
	}

	logging.From(ctx).Info("repository settings updated",
		slog.String("repo_id", repoID.String()),
		slog.Any("settings", repo.Settings),
	)
	return repo, nil
}

// fetchableRepository returns the repository if it can be synchronized from GitHub.
func (x *UseCase) fetchableRepository(ctx context.Context, repoID types.RepoID) (*model.Repository, error) {
	repo, err := x.GetRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}
	if !repo.IsGitHub {
		return nil, goerr.Wrap(types.ErrNotGitHubRepository, "repository can not be fetched", goerr.V("repo_id", repoID))
	}
	if x.clients.GitHub() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub client is not configured", goerr.V("repo_id", repoID))
	}
	return repo, nil
}
