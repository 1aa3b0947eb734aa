package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

// Registry is a file declaring tracked repositories and their settings.
type Registry struct {
	path string
}

type registryFile struct {
	Repositories []registryRepository `mapstructure:"repositories"`
}

type registryRepository struct {
	Owner         string             `mapstructure:"owner"`
	Name          string             `mapstructure:"name"`
	IsGitHub      *bool              `mapstructure:"is_github"`
	BugLabels     []string           `mapstructure:"bug_labels"`
	FeatureLabels []string           `mapstructure:"feature_labels"`
	Maintainers   []string           `mapstructure:"maintainers"`
	Thresholds    registryThresholds `mapstructure:"thresholds"`
	Sentiment     registrySentiment  `mapstructure:"sentiment"`
}

type registryThresholds struct {
	Bugs      model.Thresholds `mapstructure:"bugs"`
	Stale     model.Thresholds `mapstructure:"stale"`
	Community model.Thresholds `mapstructure:"community"`
}

type registrySentiment struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	// APIKeyEnv names an environment variable holding the key, to keep it out of the file.
	APIKeyEnv string `mapstructure:"api_key_env"`
	Model     string `mapstructure:"model"`
}

func (x *Registry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "registry-file",
			Usage:       "YAML file listing repositories to track",
			Category:    "Registry",
			Destination: &x.path,
			Sources:     cli.EnvVars("GHPULSE_REGISTRY_FILE"),
		},
	}
}

// Load returns nil without a registry file.
func (x *Registry) Load() ([]*model.RegistryEntry, error) {
	if x.path == "" {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(x.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, goerr.Wrap(err, "failed to read registry file", goerr.V("path", x.path))
	}

	var file registryFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse registry file", goerr.V("path", x.path))
	}

	entries := make([]*model.RegistryEntry, 0, len(file.Repositories))
	for i, repo := range file.Repositories {
		if repo.Owner == "" || repo.Name == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "owner and name are required in registry",
				goerr.V("path", x.path), goerr.V("index", i))
		}

		apiKey := repo.Sentiment.APIKey
		if repo.Sentiment.APIKeyEnv != "" {
			apiKey = os.Getenv(repo.Sentiment.APIKeyEnv)
		}

		entries = append(entries, &model.RegistryEntry{
			Owner:    repo.Owner,
			Name:     repo.Name,
			IsGitHub: repo.IsGitHub,
			Settings: model.RepositorySettings{
				BugLabels:     repo.BugLabels,
				FeatureLabels: repo.FeatureLabels,
				Maintainers:   repo.Maintainers,
				Thresholds: model.ThresholdSet{
					Bugs:      repo.Thresholds.Bugs,
					Stale:     repo.Thresholds.Stale,
					Community: repo.Thresholds.Community,
				},
				Sentiment: model.SentimentConfig{
					Provider: types.SentimentProvider(repo.Sentiment.Provider),
					APIKey:   types.APIKey(apiKey),
					Model:    repo.Sentiment.Model,
				},
			},
		})
	}

	return entries, nil
}

func (x *Registry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", x.path),
	)
}
