package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func repoCommand() *cli.Command {
	return &cli.Command{
		Name:  "repo",
		Usage: "Manage tracked repositories",
		Commands: []*cli.Command{
			repoListCommand(),
		},
	}
}

func repoListCommand() *cli.Command {
	var app appConfig

	return &cli.Command{
		Name:  "list",
		Usage: "Print tracked repositories",
		Flags: app.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closeRepo, err := app.newUseCase(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			repos, err := uc.ListRepositories(ctx)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			for _, repo := range repos {
				synced := "never"
				if repo.LastSyncedAt != nil {
					synced = repo.LastSyncedAt.Format("2006-01-02T15:04:05Z07:00")
				}
				source := "github"
				if !repo.IsGitHub {
					source = "local"
				}
				if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", repo.ID, source, synced); err != nil {
					return goerr.Wrap(err, "failed to print repository")
				}
			}
			return nil
		},
	}
}
