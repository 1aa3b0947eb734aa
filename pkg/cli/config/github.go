package config

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/infra/fetcher"
	"github.com/m-mizutani/ghpulse/pkg/infra/ghapp"
	"github.com/m-mizutani/ghpulse/pkg/infra/github"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

// GitHub is the process-level credential. A personal token takes precedence over a GitHub App.
type GitHub struct {
	token types.GitHubToken `masq:"secret"`

	appID      types.GitHubAppID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
	installID  types.GitHubAppInstallID
	appOwner   string

	webhookSecret types.GitHubWebhookSecret `masq:"secret"`

	endpoint string
	apiURL   string
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("GHPULSE_GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub",
			Destination: (*int64)(&x.appID),
			Sources:     cli.EnvVars("GHPULSE_GITHUB_APP_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App Private Key",
			Category:    "GitHub",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("GHPULSE_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App installation ID",
			Category:    "GitHub",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("GHPULSE_GITHUB_APP_INSTALL_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-owner",
			Usage:       "Look up the installation ID of this organization or user when it is not given",
			Category:    "GitHub",
			Destination: &x.appOwner,
			Sources:     cli.EnvVars("GHPULSE_GITHUB_APP_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Category:    "GitHub",
			Destination: (*string)(&x.webhookSecret),
			Sources:     cli.EnvVars("GHPULSE_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-endpoint",
			Usage:       "GraphQL endpoint of GitHub Enterprise Server",
			Category:    "GitHub",
			Destination: &x.endpoint,
			Sources:     cli.EnvVars("GHPULSE_GITHUB_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "REST API base URL of GitHub Enterprise Server, used for GitHub App authentication",
			Category:    "GitHub",
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("GHPULSE_GITHUB_API_URL"),
		},
	}
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
		slog.Int64("appID", int64(x.appID)),
		slog.Int("privateKey.len", len(x.privateKey)),
		slog.Int64("installID", int64(x.installID)),
		slog.String("appOwner", x.appOwner),
		slog.Int("webhookSecret.len", len(x.webhookSecret)),
		slog.String("endpoint", x.endpoint),
		slog.String("apiURL", x.apiURL),
	)
}

func (x GitHub) WebhookSecret() types.GitHubWebhookSecret {
	return x.webhookSecret
}

// Configured reports whether any credential is given.
func (x GitHub) Configured() bool {
	return x.token != "" || x.appID != 0
}

// HTTPClient returns an authenticated client whose requests pass through the fetch client transport.
func (x GitHub) HTTPClient(ctx context.Context, f *fetcher.Client) (*http.Client, error) {
	base := f.Transport(http.DefaultTransport)

	if x.token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(x.token)})
		return &http.Client{
			Transport: &oauth2.Transport{Source: src, Base: base},
		}, nil
	}

	if x.appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "github-token or github-app-id is required")
	}

	options := []ghapp.Option{ghapp.WithBaseTransport(base)}
	if x.apiURL != "" {
		options = append(options, ghapp.WithBaseURL(x.apiURL))
	}
	app, err := ghapp.New(x.appID, x.privateKey, options...)
	if err != nil {
		return nil, err
	}

	installID := x.installID
	if installID == 0 {
		if x.appOwner == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "github-app-install-id or github-app-owner is required")
		}
		installID, err = app.GetInstallationIDForOwner(ctx, x.appOwner)
		if err != nil {
			return nil, err
		}
		logging.From(ctx).Info("GitHub App installation found",
			slog.String("owner", x.appOwner),
			slog.Int64("installID", int64(installID)),
		)
	}

	return app.HTTPClient(installID)
}

// NewClient returns nil without a credential. Only local repositories can be tracked then.
func (x GitHub) NewClient(ctx context.Context, fetcherCfg *Fetcher) (interfaces.GitHub, error) {
	if !x.Configured() {
		logging.From(ctx).Warn("GitHub credential is not configured")
		return nil, nil
	}

	f := fetcherCfg.New()
	httpClient, err := x.HTTPClient(ctx, f)
	if err != nil {
		return nil, err
	}

	options := []github.Option{github.WithPageSize(fetcherCfg.pageSize)}
	if x.endpoint != "" {
		options = append(options, github.WithEndpoint(x.endpoint))
	}
	client, err := github.New(httpClient, f, options...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
