package config_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghpulse/pkg/cli/config"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

// parse runs a command with the flags so that their destinations are filled.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: func(ctx context.Context, c *cli.Command) error { return nil },
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestRegistry(t *testing.T) {
	t.Run("load repositories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registry.yaml")
		gt.NoError(t, os.WriteFile(path, []byte(`repositories:
  - owner: acme
    name: app
    bug_labels: [bug, crash]
    maintainers: [alice]
    thresholds:
      bugs: {critical: 40, high: 20, medium: 5}
    sentiment:
      provider: openai
      api_key_env: GHPULSE_TEST_OPENAI_KEY
  - owner: acme
    name: notes
    is_github: false
`), 0600))
		t.Setenv("GHPULSE_TEST_OPENAI_KEY", "sk-from-env")

		var registry config.Registry
		parse(t, registry.Flags(), "--registry-file", path)

		entries, err := registry.Load()
		gt.NoError(t, err)
		gt.V(t, len(entries)).Equal(2)

		gt.V(t, entries[0].Owner).Equal("acme")
		gt.V(t, entries[0].Name).Equal("app")
		gt.True(t, entries[0].IsGitHub == nil)
		gt.V(t, entries[0].Settings.BugLabels).Equal([]string{"bug", "crash"})
		gt.V(t, entries[0].Settings.Maintainers).Equal([]string{"alice"})
		gt.V(t, entries[0].Settings.Thresholds.Bugs).Equal(model.Thresholds{Critical: 40, High: 20, Medium: 5})
		gt.V(t, entries[0].Settings.Sentiment.Provider).Equal(types.SentimentProviderOpenAI)
		gt.V(t, entries[0].Settings.Sentiment.APIKey).Equal(types.APIKey("sk-from-env"))

		gt.V(t, *entries[1].IsGitHub).Equal(false)
	})

	t.Run("no file", func(t *testing.T) {
		var registry config.Registry
		entries, err := registry.Load()
		gt.NoError(t, err)
		gt.V(t, len(entries)).Equal(0)
	})

	t.Run("entry without name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registry.yaml")
		gt.NoError(t, os.WriteFile(path, []byte("repositories:\n  - owner: acme\n"), 0600))

		var registry config.Registry
		parse(t, registry.Flags(), "--registry-file", path)

		_, err := registry.Load()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestDatabase(t *testing.T) {
	ctx := context.Background()

	t.Run("memory by default", func(t *testing.T) {
		var db config.Database
		parse(t, db.Flags())

		repo, closeDB, err := db.NewRepository(ctx)
		gt.NoError(t, err)
		defer closeDB()
		gt.NoError(t, repo.PutRepository(ctx, &model.Repository{ID: "acme/app"}))
	})

	t.Run("sqlite file", func(t *testing.T) {
		var db config.Database
		parse(t, db.Flags(), "--db-driver", "sqlite3", "--db-dsn", filepath.Join(t.TempDir(), "ghpulse.db"))

		repo, closeDB, err := db.NewRepository(ctx)
		gt.NoError(t, err)
		defer closeDB()

		gt.NoError(t, repo.PutRepository(ctx, &model.Repository{ID: "acme/app"}))
		got, err := repo.GetRepository(ctx, "acme/app")
		gt.NoError(t, err)
		gt.V(t, got.ID).Equal(types.RepoID("acme/app"))
	})

	t.Run("dsn is required", func(t *testing.T) {
		var db config.Database
		parse(t, db.Flags(), "--db-driver", "postgres")

		_, _, err := db.NewRepository(ctx)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("unsupported driver", func(t *testing.T) {
		var db config.Database
		parse(t, db.Flags(), "--db-driver", "mysql")

		_, _, err := db.NewRepository(ctx)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestGitHub(t *testing.T) {
	ctx := context.Background()

	t.Run("no credential", func(t *testing.T) {
		var gh config.GitHub
		var fetcher config.Fetcher
		parse(t, append(gh.Flags(), fetcher.Flags()...))

		gt.False(t, gh.Configured())
		client, err := gh.NewClient(ctx, &fetcher)
		gt.NoError(t, err)
		gt.True(t, client == nil)
	})

	t.Run("token is sent through the fetch client transport", func(t *testing.T) {
		var authorization string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(ts.Close)

		var gh config.GitHub
		var fetcher config.Fetcher
		parse(t, append(gh.Flags(), fetcher.Flags()...), "--github-token", "ghp_test", "--fetch-min-interval", "0s")

		httpClient, err := gh.HTTPClient(ctx, fetcher.New())
		gt.NoError(t, err)

		resp, err := httpClient.Get(ts.URL)
		gt.NoError(t, err)
		gt.NoError(t, resp.Body.Close())
		gt.V(t, authorization).Equal("Bearer ghp_test")
	})

	t.Run("GitHub App needs an installation", func(t *testing.T) {
		var gh config.GitHub
		var fetcher config.Fetcher
		parse(t, append(gh.Flags(), fetcher.Flags()...), "--github-app-id", "1234", "--github-app-private-key", "dummy")

		_, err := gh.HTTPClient(ctx, fetcher.New())
		gt.Error(t, err)
	})

	t.Run("webhook secret", func(t *testing.T) {
		var gh config.GitHub
		parse(t, gh.Flags(), "--github-webhook-secret", "s3cr3t")
		gt.V(t, gh.WebhookSecret()).Equal(types.GitHubWebhookSecret("s3cr3t"))
	})
}

func TestBigQuery(t *testing.T) {
	t.Run("disabled without project", func(t *testing.T) {
		var bq config.BigQuery
		parse(t, bq.Flags())

		client, err := bq.NewClient(context.Background())
		gt.NoError(t, err)
		gt.True(t, client == nil)
	})

	t.Run("dataset is required", func(t *testing.T) {
		var bq config.BigQuery
		parse(t, bq.Flags(), "--bigquery-project-id", "my-project")

		_, err := bq.NewClient(context.Background())
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}
