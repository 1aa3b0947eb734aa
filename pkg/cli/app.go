package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghpulse/pkg/cli/config"
	"github.com/m-mizutani/ghpulse/pkg/infra"
	"github.com/m-mizutani/ghpulse/pkg/usecase"
)

// appConfig holds the config groups shared by every command that works on tracked repositories.
type appConfig struct {
	github    config.GitHub
	fetcher   config.Fetcher
	database  config.Database
	bigQuery  config.BigQuery
	sentiment config.Sentiment
	registry  config.Registry
}

func (x *appConfig) Flags() []cli.Flag {
	return slice.Flatten(
		x.github.Flags(),
		x.fetcher.Flags(),
		x.database.Flags(),
		x.bigQuery.Flags(),
		x.sentiment.Flags(),
		x.registry.Flags(),
	)
}

func (x *appConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("GitHub", x.github),
		slog.Any("Fetcher", &x.fetcher),
		slog.Any("Database", &x.database),
		slog.Any("BigQuery", &x.bigQuery),
		slog.Any("Sentiment", &x.sentiment),
		slog.Any("Registry", &x.registry),
	)
}

// newUseCase builds the use case and applies the registry file. The returned function releases the store.
func (x *appConfig) newUseCase(ctx context.Context) (*usecase.UseCase, func(), error) {
	repo, closeRepo, err := x.database.NewRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	infraOptions := []infra.Option{
		infra.WithRepository(repo),
		infra.WithLLM(x.sentiment.NewFactory()),
	}

	if gh, err := x.github.NewClient(ctx, &x.fetcher); err != nil {
		closeRepo()
		return nil, nil, err
	} else if gh != nil {
		infraOptions = append(infraOptions, infra.WithGitHub(gh))
	}

	if bqClient, err := x.bigQuery.NewClient(ctx); err != nil {
		closeRepo()
		return nil, nil, err
	} else if bqClient != nil {
		infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
	}

	uc := usecase.New(infra.New(infraOptions...), x.sentiment.UseCaseOptions()...)

	entries, err := x.registry.Load()
	if err != nil {
		closeRepo()
		return nil, nil, err
	}
	if len(entries) > 0 {
		if err := uc.ApplyRegistry(ctx, entries); err != nil {
			closeRepo()
			return nil, nil, err
		}
	}

	return uc, closeRepo, nil
}
