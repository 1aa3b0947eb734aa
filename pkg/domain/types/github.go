package types

import (
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

type (
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string
	GitHubWebhookSecret string
	GitHubToken         string
)

func (x GitHubWebhookSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubWebhookSecret) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

// RepoID identifies a tracked repository as "owner/name".
type RepoID string

func NewRepoID(owner, name string) RepoID {
	return RepoID(owner + "/" + name)
}

func (x RepoID) String() string {
	return string(x)
}

// Split returns owner and name of the repository.
func (x RepoID) Split() (string, string) {
	owner, name, _ := strings.Cut(string(x), "/")
	return owner, name
}

func (x RepoID) Validate() error {
	owner, name, ok := strings.Cut(string(x), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return goerr.Wrap(ErrValidationFailed, "repository ID must be owner/name", goerr.V("repo_id", x))
	}
	return nil
}
