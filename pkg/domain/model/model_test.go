package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestThresholdsValidate(t *testing.T) {
	t.Run("zero value means default", func(t *testing.T) {
		gt.NoError(t, model.Thresholds{}.Validate())
	})

	t.Run("strictly increasing thresholds pass", func(t *testing.T) {
		gt.NoError(t, model.Thresholds{Critical: 50, High: 30, Medium: 10}.Validate())
	})

	t.Run("equal thresholds fail", func(t *testing.T) {
		err := model.Thresholds{Critical: 30, High: 30, Medium: 10}.Validate()
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("decreasing thresholds fail", func(t *testing.T) {
		gt.Error(t, model.Thresholds{Critical: 10, High: 30, Medium: 50}.Validate())
	})

	t.Run("negative medium fails", func(t *testing.T) {
		gt.Error(t, model.Thresholds{Critical: 10, High: 5, Medium: -1}.Validate())
	})
}

func TestSettingsWithDefaults(t *testing.T) {
	settings := model.RepositorySettings{
		BugLabels: []string{"kind/bug"},
		Thresholds: model.ThresholdSet{
			Stale: model.Thresholds{Critical: 90, High: 60, Medium: 30},
		},
	}

	got := settings.WithDefaults()
	gt.V(t, got.BugLabels).Equal([]string{"kind/bug"})
	gt.V(t, got.FeatureLabels).Equal(model.DefaultFeatureLabels)
	gt.V(t, got.Thresholds.Bugs).Equal(model.DefaultThresholds.Bugs)
	gt.V(t, got.Thresholds.Stale).Equal(model.Thresholds{Critical: 90, High: 60, Medium: 30})
	gt.V(t, got.Thresholds.Community).Equal(model.DefaultThresholds.Community)

	// original is untouched
	gt.V(t, len(settings.FeatureLabels)).Equal(0)
}

func TestAddRepositoryInputValidate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		input := &model.AddRepositoryInput{Owner: " octo ", Name: "hello"}
		gt.NoError(t, input.Validate())
		gt.V(t, input.Owner).Equal("octo")
		gt.True(t, input.GitHubHosted())
	})

	t.Run("missing owner", func(t *testing.T) {
		input := &model.AddRepositoryInput{Name: "hello"}
		err := input.Validate()
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("name with slash", func(t *testing.T) {
		input := &model.AddRepositoryInput{Owner: "octo", Name: "a/b"}
		gt.Error(t, input.Validate())
	})

	t.Run("local only repository", func(t *testing.T) {
		isGitHub := false
		input := &model.AddRepositoryInput{Owner: "octo", Name: "hello", IsGitHub: &isGitHub}
		gt.NoError(t, input.Validate())
		gt.False(t, input.GitHubHosted())
	})
}

func TestNormalizeLabels(t *testing.T) {
	got := model.NormalizeLabels([]string{"bug", "p1", "bug", "", "docs", "p1"})
	gt.V(t, got).Equal([]string{"bug", "p1", "docs"})
}

func TestContentHash(t *testing.T) {
	a := &model.Item{Title: "Fix crash", Body: "it crashes"}
	b := &model.Item{Title: "Fix crash", Body: "it crashes"}
	c := &model.Item{Title: "Fix crash", Body: "it crashes badly"}
	d := &model.Item{Title: "Fix crashit", Body: " crashes"}

	gt.V(t, a.ContentHash()).Equal(b.ContentHash())
	gt.V(t, a.ContentHash()).NotEqual(c.ContentHash())
	gt.V(t, a.ContentHash()).NotEqual(d.ContentHash())
}

func TestItemClone(t *testing.T) {
	merged := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	item := &model.Item{
		Labels: []string{"bug"},
		PullRequest: &model.PullRequestInfo{
			Reviewers: []string{"alice"},
			MergedAt:  &merged,
		},
	}

	cpy := item.Clone()
	cpy.Labels[0] = "changed"
	cpy.PullRequest.Reviewers[0] = "bob"

	gt.V(t, item.Labels[0]).Equal("bug")
	gt.V(t, item.PullRequest.Reviewers[0]).Equal("alice")
}

func TestProgressAdvance(t *testing.T) {
	p := model.Progress{Total: 3}
	p.Advance(2)
	gt.V(t, p).Equal(model.Progress{Current: 2, Total: 3})
	p.Advance(2)
	gt.V(t, p).Equal(model.Progress{Current: 4, Total: 4})
}

func TestListIssuesInputValidate(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		input := &model.ListIssuesInput{RepoID: "octo/hello"}
		gt.NoError(t, input.Validate())
		gt.V(t, input.Page).Equal(1)
		gt.V(t, input.PerPage).Equal(model.DefaultPerPage)
		gt.V(t, input.ScoreType).Equal(types.ScoreFamilyBugs)
		gt.V(t, input.State).Equal(types.ItemStateOpen)
	})

	t.Run("rejects per_page over limit", func(t *testing.T) {
		input := &model.ListIssuesInput{RepoID: "octo/hello", PerPage: 101}
		err := input.Validate()
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		input := &model.ListIssuesInput{RepoID: "octo/hello", Level: "urgent"}
		gt.Error(t, input.Validate())
	})

	t.Run("rejects unknown issue type", func(t *testing.T) {
		input := &model.ListIssuesInput{RepoID: "octo/hello", IssueType: "question"}
		gt.Error(t, input.Validate())
	})

	t.Run("rejects missing repository", func(t *testing.T) {
		input := &model.ListIssuesInput{}
		gt.Error(t, input.Validate())
	})
}
