// Package ghapp authenticates GitHub API calls as a GitHub App installation.
package ghapp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

type Client struct {
	appID   types.GitHubAppID
	pem     types.GitHubAppPrivateKey
	baseURL string
	base    http.RoundTripper
}

type Option func(*Client)

// WithBaseURL points the installation token exchange to a GitHub Enterprise REST endpoint, e.g.
// "https://github.example.com/api/v3".
func WithBaseURL(baseURL string) Option {
	return func(x *Client) {
		x.baseURL = baseURL
	}
}

// WithBaseTransport sets the transport under the authenticating transport.
func WithBaseTransport(tr http.RoundTripper) Option {
	return func(x *Client) {
		x.base = tr
	}
}

func New(appID types.GitHubAppID, pem types.GitHubAppPrivateKey, options ...Option) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	client := &Client{
		appID: appID,
		pem:   pem,
		base:  http.DefaultTransport,
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Transport returns a RoundTripper that adds an installation token to every request.
func (x *Client) Transport(installID types.GitHubAppInstallID) (http.RoundTripper, error) {
	itr, err := ghinstallation.New(x.base, int64(x.appID), int64(installID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create installation transport",
			goerr.V("appID", x.appID), goerr.V("installID", installID))
	}
	if x.baseURL != "" {
		itr.BaseURL = x.baseURL
	}
	return itr, nil
}

func (x *Client) HTTPClient(installID types.GitHubAppInstallID) (*http.Client, error) {
	tr, err := x.Transport(installID)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: tr}, nil
}

func (x *Client) buildAppClient() (*github.Client, error) {
	itr, err := ghinstallation.NewAppsTransport(x.base, int64(x.appID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create app transport")
	}
	if x.baseURL == "" {
		return github.NewClient(&http.Client{Transport: itr}), nil
	}

	itr.BaseURL = x.baseURL
	client, err := github.NewEnterpriseClient(x.baseURL, x.baseURL, &http.Client{Transport: itr})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create enterprise client", goerr.V("baseURL", x.baseURL))
	}
	return client, nil
}

// GetInstallationIDForOwner finds the installation of the App on an organization or a user account.
func (x *Client) GetInstallationIDForOwner(ctx context.Context, owner string) (types.GitHubAppInstallID, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return 0, err
	}

	installation, resp, orgErr := client.Apps.FindOrganizationInstallation(ctx, owner)
	if orgErr == nil && installation != nil {
		logging.From(ctx).Info("found organization installation",
			slog.String("owner", owner),
			slog.Int64("installID", installation.GetID()),
		)
		return types.GitHubAppInstallID(installation.GetID()), nil
	}

	// not an organization, try the user account
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		installation, _, userErr := client.Apps.FindUserInstallation(ctx, owner)
		if userErr != nil {
			return 0, goerr.Wrap(userErr, "failed to find user installation for owner",
				goerr.V("owner", owner),
			)
		}

		if installation != nil {
			logging.From(ctx).Info("found user installation",
				slog.String("owner", owner),
				slog.Int64("installID", installation.GetID()),
			)
			return types.GitHubAppInstallID(installation.GetID()), nil
		}
	}

	if orgErr != nil {
		return 0, goerr.Wrap(orgErr, "failed to find organization installation for owner",
			goerr.V("owner", owner),
		)
	}

	return 0, goerr.Wrap(types.ErrInvalidGitHubData, "installation not found for owner",
		goerr.V("owner", owner),
	)
}
