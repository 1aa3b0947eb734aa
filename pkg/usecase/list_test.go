package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/mock"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

func putScenarioIssues(t *testing.T, env *testEnv) {
	t.Helper()
	bug := newIssue("acme/app", 1)
	bug.Title = "Fix crash on start"
	bug.Reactions.ThumbsDown = 10
	bug.CommentCount = 5
	bug.Labels = []string{"bug"}

	question := newIssue("acme/app", 2)
	question.Reactions.ThumbsUp = 1
	question.Labels = []string{"question"}

	gt.NoError(t, env.repo.PutItems(testContext(), "acme/app", []*model.Item{bug, question}))
}

func TestListIssues(t *testing.T) {
	env := newTestEnv(t)
	env.addRepository(t, "acme", "app")
	putScenarioIssues(t, env)
	ctx := testContext()

	t.Run("ranked by bug score with defaults", func(t *testing.T) {
		out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app"})
		gt.NoError(t, err)
		gt.V(t, out.TotalItems).Equal(2)
		gt.V(t, out.TotalPages).Equal(1)
		gt.V(t, out.Page).Equal(1)
		gt.V(t, out.PerPage).Equal(model.DefaultPerPage)
		gt.V(t, out.Thresholds).Equal(model.DefaultThresholds.Bugs)
		gt.V(t, out.FetchStatus.Status).Equal(types.JobStatusNotStarted)

		gt.V(t, out.Issues[0].Number).Equal(1)
		gt.V(t, out.Issues[0].Score.Value).Equal(40)
		gt.V(t, out.Issues[0].Score.Level).Equal(types.LevelHigh)
		gt.V(t, out.Issues[1].Number).Equal(2)
		gt.V(t, out.Issues[1].Score.Level).Equal(types.LevelNone)
		gt.V(t, out.Issues[0].Sentiment).Equal(types.SentimentDisabled)
	})

	t.Run("level filter", func(t *testing.T) {
		out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Level: types.LevelCritical})
		gt.NoError(t, err)
		gt.V(t, out.TotalItems).Equal(0)
		gt.V(t, len(out.Issues)).Equal(0)

		out, err = env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Level: types.LevelHigh})
		gt.NoError(t, err)
		gt.V(t, out.TotalItems).Equal(1)
		gt.V(t, out.Issues[0].Number).Equal(1)
	})

	t.Run("search and labels", func(t *testing.T) {
		out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Search: "FIX"})
		gt.NoError(t, err)
		gt.V(t, out.TotalItems).Equal(1)

		out, err = env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Search: "#2"})
		gt.NoError(t, err)
		gt.V(t, out.TotalItems).Equal(1)
		gt.V(t, out.Issues[0].Number).Equal(2)

		out, err = env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Labels: []string{"question", "p1"}})
		gt.NoError(t, err)
		gt.V(t, out.TotalItems).Equal(1)
		gt.V(t, out.Issues[0].Number).Equal(2)
	})

	t.Run("issue type filter", func(t *testing.T) {
		out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", IssueType: types.IssueTypeBug})
		gt.NoError(t, err)
		gt.V(t, out.TotalItems).Equal(1)
		gt.V(t, out.Issues[0].Number).Equal(1)
	})

	t.Run("custom thresholds", func(t *testing.T) {
		_, err := env.uc.UpdateSettings(ctx, "acme/app", &model.RepositorySettings{
			Thresholds: model.ThresholdSet{Bugs: model.Thresholds{Critical: 40, High: 20, Medium: 1}},
		})
		gt.NoError(t, err)
		t.Cleanup(func() {
			_, err := env.uc.UpdateSettings(ctx, "acme/app", &model.RepositorySettings{})
			gt.NoError(t, err)
		})

		out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app"})
		gt.NoError(t, err)
		gt.V(t, out.Issues[0].Score.Level).Equal(types.LevelCritical)
		gt.V(t, out.Issues[1].Score.Level).Equal(types.LevelMedium)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", PerPage: 101})
		gt.True(t, errors.Is(err, types.ErrValidationFailed))

		_, err = env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", ScoreType: "hot"})
		gt.True(t, errors.Is(err, types.ErrValidationFailed))

		_, err = env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/none"})
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})
}

func TestListIssuesPagination(t *testing.T) {
	env := newTestEnv(t)
	env.addRepository(t, "acme", "app")
	ctx := testContext()

	var items []*model.Item
	for i := 1; i <= 25; i++ {
		items = append(items, newIssue("acme/app", i))
	}
	gt.NoError(t, env.repo.PutItems(ctx, "acme/app", items))

	out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Page: 3, PerPage: 10})
	gt.NoError(t, err)
	gt.V(t, out.TotalItems).Equal(25)
	gt.V(t, out.TotalPages).Equal(3)
	gt.V(t, len(out.Issues)).Equal(5)
	// equal scores and times are ordered by descending number
	gt.V(t, out.Issues[0].Number).Equal(5)

	out, err = env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Page: 4, PerPage: 10})
	gt.NoError(t, err)
	gt.V(t, len(out.Issues)).Equal(0)

	out, err = env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Page: math.MaxInt, PerPage: model.MaxPerPage})
	gt.NoError(t, err)
	gt.V(t, len(out.Issues)).Equal(0)
	gt.V(t, out.TotalPages).Equal(1)
}

func TestListPullRequests(t *testing.T) {
	env := newTestEnv(t)
	env.addRepository(t, "acme", "app")
	ctx := testContext()

	draft := newPullRequest("acme/app", 11)
	draft.PullRequest.IsDraft = true
	ready := newPullRequest("acme/app", 12)
	merged := newPullRequest("acme/app", 13)
	merged.State = types.ItemStateMerged
	gt.NoError(t, env.repo.PutItems(ctx, "acme/app", []*model.Item{draft, ready, merged, newIssue("acme/app", 1)}))

	out, err := env.uc.ListPullRequests(ctx, &model.ListPullRequestsInput{RepoID: "acme/app", ScoreType: types.ScoreFamilyStale})
	gt.NoError(t, err)
	gt.V(t, out.TotalItems).Equal(2)
	gt.V(t, out.Thresholds).Equal(model.DefaultThresholds.Stale)
	gt.V(t, out.Stats).Equal(model.PRStats{Total: 3, Open: 2, Draft: 1, AwaitingReview: 1})

	out, err = env.uc.ListPullRequests(ctx, &model.ListPullRequestsInput{RepoID: "acme/app", State: types.ItemStateClosed})
	gt.NoError(t, err)
	gt.V(t, out.TotalItems).Equal(1)
	gt.V(t, out.PullRequests[0].Number).Equal(13)
}

func enableSentiment(t *testing.T, env *testEnv, complete func(ctx context.Context, prompt string) (string, error)) *mock.LLMProviderMock {
	t.Helper()
	provider := &mock.LLMProviderMock{CompleteFunc: complete}
	env.llm.NewProviderFunc = func(cfg model.SentimentConfig) (interfaces.LLMProvider, error) {
		return provider, nil
	}
	_, err := env.uc.UpdateSettings(testContext(), "acme/app", &model.RepositorySettings{
		Sentiment: model.SentimentConfig{Provider: types.SentimentProviderOpenAI, APIKey: "sk-test"},
	})
	gt.NoError(t, err)
	return provider
}

func TestListIssuesSentiment(t *testing.T) {
	t.Run("analysis runs in background and is applied on the next read", func(t *testing.T) {
		env := newTestEnv(t)
		env.addRepository(t, "acme", "app")
		putScenarioIssues(t, env)
		provider := enableSentiment(t, env, func(ctx context.Context, prompt string) (string, error) {
			return "25", nil
		})
		ctx := testContext()

		out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app"})
		gt.NoError(t, err)
		gt.V(t, out.Issues[0].Sentiment).Equal(types.SentimentPending)
		gt.V(t, out.Issues[0].Score.Value).Equal(40)

		env.uc.Wait()
		gt.V(t, len(provider.CompleteCalls())).Equal(2)

		out, err = env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app"})
		gt.NoError(t, err)
		gt.V(t, out.Issues[0].Sentiment).Equal(types.SentimentAvailable)
		// 25 of 30 scaled into 10 points
		gt.V(t, out.Issues[0].Score.Value).Equal(48)

		env.uc.Wait()
		gt.V(t, len(provider.CompleteCalls())).Equal(2)
	})

	t.Run("changed text is analyzed again", func(t *testing.T) {
		env := newTestEnv(t)
		env.addRepository(t, "acme", "app")
		putScenarioIssues(t, env)
		provider := enableSentiment(t, env, func(ctx context.Context, prompt string) (string, error) {
			return "10", nil
		})
		ctx := testContext()

		_, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Search: "#1"})
		gt.NoError(t, err)
		env.uc.Wait()

		item, err := env.repo.GetItem(ctx, "acme/app", 1)
		gt.NoError(t, err)
		item.Body = "it also crashes on exit"
		gt.NoError(t, env.repo.PutItems(ctx, "acme/app", []*model.Item{item}))

		out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Search: "#1"})
		gt.NoError(t, err)
		gt.V(t, out.Issues[0].Sentiment).Equal(types.SentimentPending)
		env.uc.Wait()
		gt.V(t, len(provider.CompleteCalls())).Equal(2)
	})

	t.Run("failures are cached for the retry delay", func(t *testing.T) {
		env := newTestEnv(t)
		env.addRepository(t, "acme", "app")
		putScenarioIssues(t, env)
		provider := enableSentiment(t, env, func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("invalid api key")
		})
		ctx := testContext()

		_, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Search: "#1"})
		gt.NoError(t, err)
		env.uc.Wait()

		out, err := env.uc.ListIssues(ctx, &model.ListIssuesInput{RepoID: "acme/app", Search: "#1"})
		gt.NoError(t, err)
		gt.V(t, out.Issues[0].Sentiment).Equal(types.SentimentUnavailable)
		gt.V(t, out.Issues[0].Score.Value).Equal(40)
		env.uc.Wait()
		gt.V(t, len(provider.CompleteCalls())).Equal(1)

		records, err := env.repo.ListSentiments(ctx, "acme/app")
		gt.NoError(t, err)
		gt.V(t, records[0].Status).Equal(types.SentimentStatusFailed)

		later := logging.CtxWithTime(context.Background(), func() time.Time { return testNow.Add(31 * time.Minute) })
		out, err = env.uc.ListIssues(later, &model.ListIssuesInput{RepoID: "acme/app", Search: "#1"})
		gt.NoError(t, err)
		gt.V(t, out.Issues[0].Sentiment).Equal(types.SentimentPending)
		env.uc.Wait()
		gt.V(t, len(provider.CompleteCalls())).Equal(2)
	})
}
