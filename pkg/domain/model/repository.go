package model

import (
	"slices"
	"strings"
	"time"

	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

var (
	DefaultBugLabels     = []string{"bug", "crash", "regression", "defect"}
	DefaultFeatureLabels = []string{"enhancement", "feature", "feature request", "proposal"}
)

// Repository represents a tracked repository
type Repository struct {
	ID           types.RepoID       `json:"id"`
	Owner        string             `json:"owner"`
	Name         string             `json:"name"`
	GitHubID     int64              `json:"github_id,omitempty"`
	IsGitHub     bool               `json:"is_github"`
	Settings     RepositorySettings `json:"settings"`
	LastSyncedAt *time.Time         `json:"last_synced_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (x *Repository) Clone() *Repository {
	if x == nil {
		return nil
	}
	cpy := *x
	cpy.Settings = x.Settings.Clone()
	if x.LastSyncedAt != nil {
		t := *x.LastSyncedAt
		cpy.LastSyncedAt = &t
	}
	return &cpy
}

// RepositorySettings parameterizes scoring and sentiment for one repository. Empty fields fall back to defaults.
type RepositorySettings struct {
	BugLabels     []string        `json:"bug_labels,omitempty"`
	FeatureLabels []string        `json:"feature_labels,omitempty"`
	Maintainers   []string        `json:"maintainers,omitempty"`
	Thresholds    ThresholdSet    `json:"thresholds"`
	Sentiment     SentimentConfig `json:"sentiment"`
}

func (x RepositorySettings) Validate() error {
	if err := x.Thresholds.Validate(); err != nil {
		return err
	}
	if x.Sentiment.Provider != "" {
		if err := x.Sentiment.Provider.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WithDefaults returns a copy that has every empty field replaced with its default.
func (x RepositorySettings) WithDefaults() RepositorySettings {
	out := x.Clone()
	if len(out.BugLabels) == 0 {
		out.BugLabels = slices.Clone(DefaultBugLabels)
	}
	if len(out.FeatureLabels) == 0 {
		out.FeatureLabels = slices.Clone(DefaultFeatureLabels)
	}
	out.Thresholds = out.Thresholds.WithDefaults()
	return out
}

func (x RepositorySettings) Clone() RepositorySettings {
	out := x
	out.BugLabels = slices.Clone(x.BugLabels)
	out.FeatureLabels = slices.Clone(x.FeatureLabels)
	out.Maintainers = slices.Clone(x.Maintainers)
	return out
}

type SentimentConfig struct {
	Provider types.SentimentProvider `json:"provider,omitempty"`
	APIKey   types.APIKey            `json:"api_key,omitempty" masq:"secret"`
	Model    string                  `json:"model,omitempty"`
}

// Enabled reports whether sentiment analysis can run with this config.
func (x SentimentConfig) Enabled() bool {
	return x.Provider != "" && x.APIKey != ""
}

func (x SentimentConfig) Validate() error {
	if x.Provider == "" {
		return goerr.Wrap(types.ErrValidationFailed, "sentiment provider is required")
	}
	if err := x.Provider.Validate(); err != nil {
		return err
	}
	if x.APIKey == "" {
		return goerr.Wrap(types.ErrValidationFailed, "API key is required")
	}
	return nil
}

// Thresholds are cut points of one score family. A zero value means "use the default".
type Thresholds struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
}

func (x Thresholds) IsZero() bool {
	return x == Thresholds{}
}

func (x Thresholds) Validate() error {
	if x.IsZero() {
		return nil
	}
	if x.Medium < 0 || !(x.Medium < x.High && x.High < x.Critical) {
		return goerr.Wrap(types.ErrValidationFailed, "thresholds must be strictly increasing (medium < high < critical)",
			goerr.V("thresholds", x),
		)
	}
	return nil
}

type ThresholdSet struct {
	Bugs      Thresholds `json:"bugs"`
	Stale     Thresholds `json:"stale"`
	Community Thresholds `json:"community"`
}

var DefaultThresholds = ThresholdSet{
	Bugs:      Thresholds{Critical: 50, High: 30, Medium: 10},
	Stale:     Thresholds{Critical: 60, High: 40, Medium: 20},
	Community: Thresholds{Critical: 50, High: 30, Medium: 15},
}

func (x ThresholdSet) Validate() error {
	for _, th := range []Thresholds{x.Bugs, x.Stale, x.Community} {
		if err := th.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (x ThresholdSet) WithDefaults() ThresholdSet {
	if x.Bugs.IsZero() {
		x.Bugs = DefaultThresholds.Bugs
	}
	if x.Stale.IsZero() {
		x.Stale = DefaultThresholds.Stale
	}
	if x.Community.IsZero() {
		x.Community = DefaultThresholds.Community
	}
	return x
}

// For returns thresholds of the family.
func (x ThresholdSet) For(family types.ScoreFamily) Thresholds {
	switch family {
	case types.ScoreFamilyStale:
		return x.Stale
	case types.ScoreFamilyCommunity:
		return x.Community
	default:
		return x.Bugs
	}
}

type AddRepositoryInput struct {
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	IsGitHub *bool  `json:"is_github,omitempty"`
}

func (x *AddRepositoryInput) Validate() error {
	x.Owner = strings.TrimSpace(x.Owner)
	x.Name = strings.TrimSpace(x.Name)
	if x.Owner == "" {
		return goerr.Wrap(types.ErrValidationFailed, "owner is required")
	}
	if x.Name == "" {
		return goerr.Wrap(types.ErrValidationFailed, "name is required")
	}
	return types.NewRepoID(x.Owner, x.Name).Validate()
}

// GitHubHosted defaults to true when the flag is not given.
func (x *AddRepositoryInput) GitHubHosted() bool {
	return x.IsGitHub == nil || *x.IsGitHub
}

// RegistryEntry declares a tracked repository and its settings ahead of time.
type RegistryEntry struct {
	Owner    string
	Name     string
	IsGitHub *bool
	Settings RepositorySettings
}
