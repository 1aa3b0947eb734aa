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

// ApplyRegistry adds missing repositories and overwrites settings of every listed repository.
func (x *UseCase) ApplyRegistry(ctx context.Context, entries []*model.RegistryEntry) error {
	for _, entry := range entries {
		input := &model.AddRepositoryInput{
			Owner:    entry.Owner,
			Name:     entry.Name,
			IsGitHub: entry.IsGitHub,
		}
		if _, err := x.AddRepository(ctx, input); err != nil && !errors.Is(err, repository.ErrAlreadyExists) {
			return goerr.Wrap(err, "failed to add registered repository",
				goerr.V("owner", entry.Owner), goerr.V("name", entry.Name))
		}

		settings := entry.Settings
		if _, err := x.UpdateSettings(ctx, types.NewRepoID(input.Owner, input.Name), &settings); err != nil {
			return goerr.Wrap(err, "failed to apply registered settings",
				goerr.V("owner", entry.Owner), goerr.V("name", entry.Name))
		}
	}

	logging.From(ctx).Info("registry applied", slog.Int("repositories", len(entries)))
	return nil
}
