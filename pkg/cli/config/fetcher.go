package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghpulse/pkg/infra/fetcher"
	"github.com/m-mizutani/ghpulse/pkg/infra/github"
)

type Fetcher struct {
	minInterval    time.Duration
	maxAttempts    int
	cooldown       time.Duration
	requestTimeout time.Duration
	pageSize       int
}

func (x *Fetcher) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "fetch-min-interval",
			Usage:       "Minimum interval between GitHub API requests",
			Category:    "Fetcher",
			Value:       fetcher.DefaultMinInterval,
			Destination: &x.minInterval,
			Sources:     cli.EnvVars("GHPULSE_FETCH_MIN_INTERVAL"),
		},
		&cli.IntFlag{
			Name:        "fetch-max-attempts",
			Usage:       "Maximum attempts of a request failing with a transient error",
			Category:    "Fetcher",
			Value:       fetcher.DefaultMaxAttempts,
			Destination: &x.maxAttempts,
			Sources:     cli.EnvVars("GHPULSE_FETCH_MAX_ATTEMPTS"),
		},
		&cli.DurationFlag{
			Name:        "fetch-cooldown",
			Usage:       "Wait after a rate limit response without a reset time",
			Category:    "Fetcher",
			Value:       fetcher.DefaultCooldown,
			Destination: &x.cooldown,
			Sources:     cli.EnvVars("GHPULSE_FETCH_COOLDOWN"),
		},
		&cli.DurationFlag{
			Name:        "fetch-request-timeout",
			Usage:       "Timeout of one GitHub API request",
			Category:    "Fetcher",
			Value:       fetcher.DefaultRequestTimeout,
			Destination: &x.requestTimeout,
			Sources:     cli.EnvVars("GHPULSE_FETCH_REQUEST_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        "fetch-page-size",
			Usage:       "Number of items per GraphQL page [1-100]",
			Category:    "Fetcher",
			Value:       github.DefaultPageSize,
			Destination: &x.pageSize,
			Sources:     cli.EnvVars("GHPULSE_FETCH_PAGE_SIZE"),
		},
	}
}

func (x *Fetcher) New() *fetcher.Client {
	return fetcher.New(
		fetcher.WithMinInterval(x.minInterval),
		fetcher.WithMaxAttempts(x.maxAttempts),
		fetcher.WithCooldown(x.cooldown),
		fetcher.WithRequestTimeout(x.requestTimeout),
	)
}

func (x *Fetcher) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("minInterval", x.minInterval),
		slog.Int("maxAttempts", x.maxAttempts),
		slog.Duration("cooldown", x.cooldown),
		slog.Duration("requestTimeout", x.requestTimeout),
		slog.Int("pageSize", x.pageSize),
	)
}
