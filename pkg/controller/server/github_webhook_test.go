package server_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghpulse/pkg/controller/server"
	"github.com/m-mizutani/ghpulse/pkg/domain/mock"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

func repoOf(owner, name string) *github.Repository {
	return &github.Repository{
		Name:  github.String(name),
		Owner: &github.User{Login: github.String(owner)},
	}
}

func TestGitHubEventToTarget(t *testing.T) {
	t.Run("issues event", func(t *testing.T) {
		event := &github.IssuesEvent{
			Action: github.String("labeled"),
			Issue:  &github.Issue{Number: github.Int(12)},
			Repo:   repoOf("acme", "app"),
		}
		target := server.GithubEventToTargetForTest(event)
		gt.V(t, target.RepoID).Equal(types.RepoID("acme/app"))
		gt.V(t, target.Number).Equal(12)
		gt.V(t, target.Event).Equal("issues")
	})

	t.Run("deleted issue is ignored", func(t *testing.T) {
		event := &github.IssuesEvent{
			Action: github.String("deleted"),
			Issue:  &github.Issue{Number: github.Int(12)},
			Repo:   repoOf("acme", "app"),
		}
		gt.True(t, server.GithubEventToTargetForTest(event) == nil)
	})

	t.Run("pull_request event", func(t *testing.T) {
		event := &github.PullRequestEvent{
			Action: github.String("synchronize"),
			Number: github.Int(7),
			Repo:   repoOf("acme", "app"),
		}
		target := server.GithubEventToTargetForTest(event)
		gt.V(t, target.Number).Equal(7)
		gt.V(t, target.Action).Equal("synchronize")
	})

	t.Run("issue_comment event", func(t *testing.T) {
		event := &github.IssueCommentEvent{
			Action: github.String("created"),
			Issue:  &github.Issue{Number: github.Int(3)},
			Repo:   repoOf("acme", "app"),
		}
		target := server.GithubEventToTargetForTest(event)
		gt.V(t, target.Number).Equal(3)
		gt.V(t, target.Event).Equal("issue_comment")
	})

	t.Run("event without repository is ignored", func(t *testing.T) {
		event := &github.IssueCommentEvent{
			Action: github.String("created"),
			Issue:  &github.Issue{Number: github.Int(3)},
		}
		gt.True(t, server.GithubEventToTargetForTest(event) == nil)
	})

	t.Run("unrelated events are ignored", func(t *testing.T) {
		gt.True(t, server.GithubEventToTargetForTest(&github.PingEvent{}) == nil)
		gt.True(t, server.GithubEventToTargetForTest(&github.PushEvent{}) == nil)
	})
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestGitHubWebhook(t *testing.T) {
	const secret = "test-secret"
	body := []byte(`{"action":"opened","issue":{"number":5},"repository":{"name":"app","owner":{"login":"acme"}}}`)

	newRequest := func(event string, body []byte, signature string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-GitHub-Event", event)
		if signature != "" {
			req.Header.Set("X-Hub-Signature-256", signature)
		}
		return req
	}

	t.Run("signed event refreshes the item in background", func(t *testing.T) {
		called := make(chan struct{}, 1)
		mockUC := &mock.UseCaseMock{
			RefreshItemFunc: func(ctx context.Context, repoID types.RepoID, number int) (*model.Item, error) {
				gt.V(t, repoID).Equal(types.RepoID("acme/app"))
				gt.V(t, number).Equal(5)
				called <- struct{}{}
				return &model.Item{RepoID: repoID, Number: number}, nil
			},
		}
		srv := server.New(mockUC, server.WithWebhookSecret(secret))

		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, newRequest("issues", body, sign(secret, body)))
		gt.V(t, rec.Code).Equal(http.StatusAccepted)

		select {
		case <-called:
		case <-time.After(5 * time.Second):
			t.Fatal("RefreshItem was not called")
		}
	})

	t.Run("Wait blocks until the item refresh finishes", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		var finished atomic.Bool
		mockUC := &mock.UseCaseMock{
			RefreshItemFunc: func(ctx context.Context, repoID types.RepoID, number int) (*model.Item, error) {
				close(started)
				<-release
				finished.Store(true)
				return &model.Item{RepoID: repoID, Number: number}, nil
			},
		}
		srv := server.New(mockUC, server.WithWebhookSecret(secret))

		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, newRequest("issues", body, sign(secret, body)))
		gt.V(t, rec.Code).Equal(http.StatusAccepted)

		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatal("RefreshItem was not called")
		}

		waited := make(chan struct{})
		go func() {
			srv.Wait()
			close(waited)
		}()

		select {
		case <-waited:
			t.Fatal("Wait returned before the refresh finished")
		case <-time.After(50 * time.Millisecond):
		}

		close(release)
		select {
		case <-waited:
		case <-time.After(5 * time.Second):
			t.Fatal("Wait did not return")
		}
		gt.True(t, finished.Load())
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		srv := server.New(&mock.UseCaseMock{}, server.WithWebhookSecret(secret))

		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, newRequest("issues", body, sign("other", body)))
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("missing signature is rejected", func(t *testing.T) {
		srv := server.New(&mock.UseCaseMock{}, server.WithWebhookSecret(secret))

		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, newRequest("issues", body, ""))
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("ignored event", func(t *testing.T) {
		srv := server.New(&mock.UseCaseMock{}, server.WithWebhookSecret(secret))
		ping := []byte(`{"zen":"Keep it logically awesome."}`)

		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, newRequest("ping", ping, sign(secret, ping)))
		gt.V(t, rec.Code).Equal(http.StatusOK)
	})
}
