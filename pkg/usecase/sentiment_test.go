package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/mock"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/usecase"
)

func TestParseSentimentScore(t *testing.T) {
	testCases := map[string]struct {
		reply   string
		want    int
		wantErr bool
	}{
		"plain number":       {reply: "25", want: 25},
		"surrounded by text": {reply: "Score: 7\n", want: 7},
		"capped":             {reply: "42", want: 30},
		"zero":               {reply: "0", want: 0},
		"no number":          {reply: "none", wantErr: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := usecase.ParseSentimentScoreForTest(tc.reply)
			if tc.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.V(t, got).Equal(tc.want)
		})
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	t.Run("long body is truncated", func(t *testing.T) {
		var prompt string
		provider := &mock.LLMProviderMock{
			CompleteFunc: func(ctx context.Context, p string) (string, error) {
				prompt = p
				return "3", nil
			},
		}

		score, err := usecase.AnalyzeSentiment(context.Background(), provider, "crash", strings.Repeat("é", 5000))
		gt.NoError(t, err)
		gt.V(t, score).Equal(3)
		gt.V(t, strings.Count(prompt, "é")).Equal(4000)
		gt.True(t, strings.Contains(prompt, "crash"))
	})

	t.Run("provider error", func(t *testing.T) {
		provider := &mock.LLMProviderMock{
			CompleteFunc: func(ctx context.Context, p string) (string, error) {
				return "", errors.New("rate limited")
			},
		}
		_, err := usecase.AnalyzeSentiment(context.Background(), provider, "crash", "")
		gt.Error(t, err)
	})
}

func TestStartSentimentAnalysis(t *testing.T) {
	t.Run("disabled without provider settings", func(t *testing.T) {
		env := newTestEnv(t)
		env.addRepository(t, "acme", "app")

		_, err := env.uc.StartSentimentAnalysis(testContext(), "acme/app")
		gt.True(t, errors.Is(err, types.ErrSentimentDisabled))
	})

	t.Run("analyzes open items without a usable record", func(t *testing.T) {
		env := newTestEnv(t)
		env.addRepository(t, "acme", "app")
		ctx := testContext()

		analyzed := newIssue("acme/app", 1)
		flaky := newIssue("acme/app", 2)
		flaky.Title = "flaky test"
		closed := newIssue("acme/app", 3)
		closed.State = types.ItemStateClosed
		fresh := newIssue("acme/app", 4)
		gt.NoError(t, env.repo.PutItems(ctx, "acme/app", []*model.Item{analyzed, flaky, closed, fresh}))
		gt.NoError(t, env.repo.PutSentiment(ctx, &model.SentimentRecord{
			RepoID:      "acme/app",
			ItemID:      fresh.ID,
			ContentHash: fresh.ContentHash(),
			Score:       5,
			Status:      types.SentimentStatusOK,
			AnalyzedAt:  testNow,
		}))

		provider := enableSentiment(t, env, func(ctx context.Context, prompt string) (string, error) {
			if strings.Contains(prompt, "flaky") {
				return "", errors.New("overloaded")
			}
			return "12", nil
		})

		job, err := env.uc.StartSentimentAnalysis(ctx, "acme/app")
		gt.NoError(t, err)
		gt.V(t, job.Kind).Equal(types.JobKindSentiment)
		env.uc.Wait()

		gt.V(t, len(provider.CompleteCalls())).Equal(2)

		status, err := env.uc.GetStatus(ctx, "acme/app")
		gt.NoError(t, err)
		gt.V(t, status.Status).Equal(types.JobStatusCompleted)
		gt.V(t, *status.Progress).Equal(model.Progress{Current: 2, Total: 2})
		gt.V(t, status.Message).Equal("1 of 2 items could not be analyzed")

		records, err := env.repo.ListSentiments(ctx, "acme/app")
		gt.NoError(t, err)
		byID := map[string]*model.SentimentRecord{}
		for _, rec := range records {
			byID[rec.ItemID] = rec
		}
		gt.V(t, len(byID)).Equal(3)
		gt.V(t, byID[analyzed.ID].Score).Equal(12)
		gt.V(t, byID[flaky.ID].Status).Equal(types.SentimentStatusFailed)
		gt.V(t, byID[flaky.ID].Error).NotEqual("")
		gt.V(t, byID[fresh.ID].Score).Equal(5)
	})

	t.Run("failed records are retried", func(t *testing.T) {
		env := newTestEnv(t)
		env.addRepository(t, "acme", "app")
		ctx := testContext()

		item := newIssue("acme/app", 1)
		gt.NoError(t, env.repo.PutItems(ctx, "acme/app", []*model.Item{item}))
		gt.NoError(t, env.repo.PutSentiment(ctx, &model.SentimentRecord{
			RepoID:      "acme/app",
			ItemID:      item.ID,
			ContentHash: item.ContentHash(),
			Status:      types.SentimentStatusFailed,
			AnalyzedAt:  testNow,
		}))

		provider := enableSentiment(t, env, func(ctx context.Context, prompt string) (string, error) {
			return "9", nil
		})

		_, err := env.uc.StartSentimentAnalysis(ctx, "acme/app")
		gt.NoError(t, err)
		env.uc.Wait()
		gt.V(t, len(provider.CompleteCalls())).Equal(1)

		records, err := env.repo.ListSentiments(ctx, "acme/app")
		gt.NoError(t, err)
		gt.V(t, records[0].Status).Equal(types.SentimentStatusOK)
		gt.V(t, records[0].Score).Equal(9)
	})
}

func TestTestAPIKey(t *testing.T) {
	cfg := &model.SentimentConfig{Provider: types.SentimentProviderAnthropic, APIKey: "sk-test"}

	t.Run("valid key", func(t *testing.T) {
		env := newTestEnv(t)
		provider := &mock.LLMProviderMock{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) { return "0", nil },
		}
		env.llm.NewProviderFunc = func(c model.SentimentConfig) (interfaces.LLMProvider, error) {
			gt.V(t, c).Equal(*cfg)
			return provider, nil
		}

		result := env.uc.TestAPIKey(testContext(), cfg)
		gt.True(t, result.OK)
		gt.V(t, result.Message).Equal("API key is valid")
	})

	t.Run("provider rejects the key", func(t *testing.T) {
		env := newTestEnv(t)
		env.llm.NewProviderFunc = func(c model.SentimentConfig) (interfaces.LLMProvider, error) {
			return &mock.LLMProviderMock{
				CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
					return "", errors.New("401 unauthorized")
				},
			}, nil
		}

		result := env.uc.TestAPIKey(testContext(), cfg)
		gt.False(t, result.OK)
		gt.True(t, strings.Contains(result.Message, "401 unauthorized"))
	})

	t.Run("incomplete config", func(t *testing.T) {
		env := newTestEnv(t)

		result := env.uc.TestAPIKey(testContext(), &model.SentimentConfig{Provider: types.SentimentProviderOpenAI})
		gt.False(t, result.OK)
		gt.V(t, result.Message).NotEqual("")

		result = env.uc.TestAPIKey(testContext(), nil)
		gt.False(t, result.OK)
		gt.V(t, len(env.llm.NewProviderCalls())).Equal(0)
	})
}
