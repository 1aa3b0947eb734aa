package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository"
	"github.com/m-mizutani/ghpulse/pkg/utils/errutil"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

// webhookTarget is an issue or pull request that changed on GitHub.
type webhookTarget struct {
	RepoID types.RepoID
	Number int
	Event  string
	Action string
}

// validateGitHubEvent checks the signature and returns the item to refresh, or nil when the event does not change
// any cached item. The signature is not checked without a secret.
func validateGitHubEvent(r *http.Request, secret types.GitHubWebhookSecret) (*webhookTarget, error) {
	ctx := r.Context()
	payload, err := github.ValidatePayload(r, []byte(secret))
	if err != nil {
		return nil, goerr.Wrap(err, "validating payload")
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		return nil, goerr.Wrap(err, "parsing webhook")
	}

	target := githubEventToTarget(event)
	logging.From(ctx).Info("Received GitHub webhook event",
		slog.String("type", github.WebHookType(r)),
		slog.Any("target", target),
	)
	return target, nil
}

func newWebhookTarget(repo *github.Repository, number int, event, action string) *webhookTarget {
	owner, name := repo.GetOwner().GetLogin(), repo.GetName()
	if owner == "" || name == "" || number <= 0 {
		logging.Default().Warn("ignore event without repository or number",
			slog.String("event", event), slog.String("action", action))
		return nil
	}
	return &webhookTarget{
		RepoID: types.NewRepoID(owner, name),
		Number: number,
		Event:  event,
		Action: action,
	}
}

func githubEventToTarget(event any) *webhookTarget {
	switch ev := event.(type) {
	case *github.IssuesEvent:
		switch ev.GetAction() {
		case "deleted", "transferred":
			logging.Default().Debug("ignore issue event", slog.String("action", ev.GetAction()))
			return nil
		}
		return newWebhookTarget(ev.GetRepo(), ev.GetIssue().GetNumber(), "issues", ev.GetAction())

	case *github.PullRequestEvent:
		return newWebhookTarget(ev.GetRepo(), ev.GetNumber(), "pull_request", ev.GetAction())

	case *github.IssueCommentEvent:
		return newWebhookTarget(ev.GetRepo(), ev.GetIssue().GetNumber(), "issue_comment", ev.GetAction())

	case *github.PingEvent, *github.InstallationEvent, *github.InstallationRepositoriesEvent:
		return nil // ignore

	default:
		logging.Default().Warn("unsupported event", slog.Any("event", fmt.Sprintf("%T", event)))
		return nil
	}
}

// refreshWebhookItem runs in a background goroutine. Events of untracked repositories are dropped.
func refreshWebhookItem(ctx context.Context, uc interfaces.UseCase, target *webhookTarget) {
	logger := logging.From(ctx).With(slog.String("repo_id", target.RepoID.String()), slog.Int("number", target.Number))
	ctx = logging.With(ctx, logger)

	if _, err := uc.RefreshItem(ctx, target.RepoID, target.Number); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, types.ErrNotGitHubRepository) {
			logger.Debug("skip item of untracked repository", slog.Any("error", err))
			return
		}
		errutil.HandleError(ctx, "fail to refresh item from webhook", err)
		return
	}

	logger.Info("item refreshed from webhook", slog.String("event", target.Event), slog.String("action", target.Action))
}
