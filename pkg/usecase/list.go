package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/scoring"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

// repoView is everything a list read needs, loaded once per request.
type repoView struct {
	repo    *model.Repository
	items   []*model.Item
	records map[string]*model.SentimentRecord
	cfg     scoring.Config
	status  *model.SyncStatus
}

func (x *UseCase) loadView(ctx context.Context, repoID types.RepoID, kind types.ItemKind) (*repoView, error) {
	repo, err := x.GetRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}

	items, err := x.clients.Repository().ListItems(ctx, repo.ID, kind)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list items", goerr.V("repo_id", repoID), goerr.V("kind", kind))
	}

	records, err := x.freshSentiments(ctx, repo.ID, items)
	if err != nil {
		return nil, err
	}

	status, err := x.syncStatus(ctx, repo)
	if err != nil {
		return nil, err
	}

	return &repoView{
		repo:    repo,
		items:   items,
		records: records,
		cfg:     scoringConfig(ctx, repo, records),
		status:  status,
	}, nil
}

func scoringConfig(ctx context.Context, repo *model.Repository, records map[string]*model.SentimentRecord) scoring.Config {
	var source scoring.SentimentSource
	if repo.Settings.Sentiment.Enabled() {
		scores := scoring.SentimentMap{}
		for id, rec := range records {
			if rec.Status == types.SentimentStatusOK {
				scores[id] = rec.Score
			}
		}
		source = scores
	}
	return scoring.NewConfig(repo.Settings, logging.CtxTime(ctx), source)
}

func (x *UseCase) ListIssues(ctx context.Context, input *model.ListIssuesInput) (*model.ListIssuesOutput, error) {
	if input == nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	view, err := x.loadView(ctx, input.RepoID, types.ItemKindIssue)
	if err != nil {
		return nil, err
	}

	ranked := scoring.Rank(view.items, input.ScoreType, view.cfg, scoring.Filter{
		Search:    input.Search,
		Labels:    input.Labels,
		Level:     input.Level,
		IssueType: input.IssueType,
		State:     input.State,
	})
	page, totalPages := scoring.Paginate(ranked, input.Page, input.PerPage)
	x.markSentiment(ctx, view, page)

	return &model.ListIssuesOutput{
		Issues:      page,
		Page:        input.Page,
		PerPage:     input.PerPage,
		TotalItems:  len(ranked),
		TotalPages:  totalPages,
		Thresholds:  view.cfg.Thresholds.For(input.ScoreType),
		FetchStatus: view.status,
	}, nil
}

func (x *UseCase) ListPullRequests(ctx context.Context, input *model.ListPullRequestsInput) (*model.ListPullRequestsOutput, error) {
	if input == nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	view, err := x.loadView(ctx, input.RepoID, types.ItemKindPullRequest)
	if err != nil {
		return nil, err
	}

	ranked := scoring.Rank(view.items, input.ScoreType, view.cfg, scoring.Filter{
		Search: input.Search,
		Labels: input.Labels,
		Level:  input.Level,
		State:  input.State,
	})
	page, totalPages := scoring.Paginate(ranked, input.Page, input.PerPage)
	x.markSentiment(ctx, view, page)

	return &model.ListPullRequestsOutput{
		PullRequests: page,
		Page:         input.Page,
		PerPage:      input.PerPage,
		TotalItems:   len(ranked),
		TotalPages:   totalPages,
		Stats:        scoring.PRStats(view.items),
		Thresholds:   view.cfg.Thresholds.For(input.ScoreType),
		FetchStatus:  view.status,
	}, nil
}

// markSentiment sets the sentiment marker of each item on the page and queues analysis of items without a usable
// record. It never waits for an analysis.
func (x *UseCase) markSentiment(ctx context.Context, view *repoView, page []*model.ScoredItem) {
	enabled := view.repo.Settings.Sentiment.Enabled()
	now := logging.CtxTime(ctx)

	for _, scored := range page {
		if !enabled {
			scored.Sentiment = types.SentimentDisabled
			continue
		}

		rec := view.records[scored.ID]
		switch {
		case rec != nil && rec.Status == types.SentimentStatusOK:
			scored.Sentiment = types.SentimentAvailable
		case rec != nil && now.Before(rec.AnalyzedAt.Add(x.sentimentRetryDelay)):
			scored.Sentiment = types.SentimentUnavailable
		default:
			x.enqueueSentiment(ctx, view.repo, scored.Item)
			scored.Sentiment = types.SentimentPending
		}
	}
}
