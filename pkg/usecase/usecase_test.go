package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/mock"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/infra"
	"github.com/m-mizutani/ghpulse/pkg/repository/memory"
	"github.com/m-mizutani/ghpulse/pkg/usecase"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testContext() context.Context {
	return logging.CtxWithTime(context.Background(), func() time.Time { return testNow })
}

type testEnv struct {
	uc   *usecase.UseCase
	repo interfaces.Repository
	gh   *mock.GitHubMock
	llm  *mock.LLMFactoryMock
}

func newTestEnv(t *testing.T, options ...infra.Option) *testEnv {
	t.Helper()
	env := &testEnv{
		repo: memory.New(),
		gh: &mock.GitHubMock{
			GetRepositoryIDFunc: func(ctx context.Context, owner, name string) (int64, error) {
				return 1234, nil
			},
		},
		llm: &mock.LLMFactoryMock{},
	}

	clients := infra.New(append([]infra.Option{
		infra.WithRepository(env.repo),
		infra.WithGitHub(env.gh),
		infra.WithLLM(env.llm),
	}, options...)...)
	env.uc = usecase.New(clients, usecase.WithSentimentRetryDelay(30*time.Minute))
	t.Cleanup(env.uc.Wait)
	return env
}

func (x *testEnv) addRepository(t *testing.T, owner, name string) *model.Repository {
	t.Helper()
	repo, err := x.uc.AddRepository(testContext(), &model.AddRepositoryInput{Owner: owner, Name: name})
	gt.NoError(t, err)
	return repo
}

func newIssue(repoID types.RepoID, number int) *model.Item {
	return &model.Item{
		ID:        fmt.Sprintf("I_%d", number),
		RepoID:    repoID,
		Kind:      types.ItemKindIssue,
		Number:    number,
		Title:     fmt.Sprintf("issue %d", number),
		State:     types.ItemStateOpen,
		Author:    "alice",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func newPullRequest(repoID types.RepoID, number int) *model.Item {
	item := newIssue(repoID, number)
	item.ID = fmt.Sprintf("PR_%d", number)
	item.Kind = types.ItemKindPullRequest
	item.Title = fmt.Sprintf("pull request %d", number)
	item.PullRequest = &model.PullRequestInfo{Mergeable: "MERGEABLE"}
	return item
}

func TestNew(t *testing.T) {
	uc := usecase.New(infra.New(), usecase.WithSentimentWorkers(2))
	var _ interfaces.UseCase = uc

	ctx := testContext()
	repos, err := uc.ListRepositories(ctx)
	gt.NoError(t, err)
	gt.V(t, len(repos)).Equal(0)
}
