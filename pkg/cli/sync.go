package cli

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

func syncCommand() *cli.Command {
	var (
		owner     string
		name      string
		refresh   bool
		sentiment bool

		app appConfig
	)
	syncFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Repository owner",
			Required:    true,
			Destination: &owner,
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository name",
			Required:    true,
			Destination: &name,
		},
		&cli.BoolFlag{
			Name:        "refresh",
			Usage:       "Fetch only items updated since the last sync",
			Destination: &refresh,
		},
		&cli.BoolFlag{
			Name:        "sentiment",
			Usage:       "Analyze sentiment of open items after the sync",
			Destination: &sentiment,
		},
	}

	return &cli.Command{
		Name:  "sync",
		Usage: "Synchronize one repository and print the final status",
		Flags: slice.Flatten(syncFlags, app.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting sync",
				slog.String("owner", owner),
				slog.String("repo", name),
				slog.Bool("refresh", refresh),
				slog.Any("App", &app),
			)

			uc, closeRepo, err := app.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			repo, err := uc.AddRepository(ctx, &model.AddRepositoryInput{Owner: owner, Name: name})
			if err != nil && !errors.Is(err, repository.ErrAlreadyExists) {
				return err
			}
			repoID := types.NewRepoID(owner, name)
			if repo != nil {
				logging.From(ctx).Info("repository registered", slog.String("repo_id", repoID.String()))
			}

			run := uc.StartFetch
			if refresh {
				run = uc.Refresh
			}
			if _, err := run(ctx, repoID); err != nil {
				return err
			}
			uc.Wait()

			if sentiment {
				if _, err := uc.StartSentimentAnalysis(ctx, repoID); err != nil {
					return err
				}
				uc.Wait()
			}

			status, err := uc.GetStatus(ctx, repoID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(status); err != nil {
				return goerr.Wrap(err, "failed to print status")
			}

			if status.Status == types.JobStatusFailed {
				return goerr.New("sync failed", goerr.V("repo_id", repoID), goerr.V("message", status.Message))
			}
			return nil
		},
	}
}
