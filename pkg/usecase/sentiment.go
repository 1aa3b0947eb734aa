package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/scoring"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/errutil"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

const (
	sentimentPrompt = `Rate how much frustration, urgency or user impact the following GitHub issue expresses.
Reply with a single integer from 0 (none) to %d (severe) and nothing else.

Title: %s

%s`

	// body is cut to keep the request small
	maxSentimentBody = 4000

	apiKeyTestPrompt = "Reply with the number 0."
)

var sentimentScorePattern = regexp.MustCompile(`\d+`)

// AnalyzeSentiment asks the provider to rate the text and returns a score in [0, scoring.SentimentRawMax].
func AnalyzeSentiment(ctx context.Context, provider interfaces.LLMProvider, title, body string) (int, error) {
	if runes := []rune(body); len(runes) > maxSentimentBody {
		body = string(runes[:maxSentimentBody])
	}

	reply, err := provider.Complete(ctx, fmt.Sprintf(sentimentPrompt, scoring.SentimentRawMax, title, body))
	if err != nil {
		return 0, goerr.Wrap(err, "sentiment request failed")
	}
	return parseSentimentScore(reply)
}

func parseSentimentScore(reply string) (int, error) {
	m := sentimentScorePattern.FindString(reply)
	if m == "" {
		return 0, goerr.New("sentiment reply has no score", goerr.V("reply", reply))
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, goerr.Wrap(err, "sentiment score is not a number", goerr.V("reply", reply))
	}
	return min(v, scoring.SentimentRawMax), nil
}

// freshSentiments returns records that still describe the current text of the items, keyed by item ID.
func (x *UseCase) freshSentiments(ctx context.Context, repoID types.RepoID, items []*model.Item) (map[string]*model.SentimentRecord, error) {
	records, err := x.clients.Repository().ListSentiments(ctx, repoID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sentiment records", goerr.V("repo_id", repoID))
	}

	byID := make(map[string]*model.SentimentRecord, len(records))
	for _, rec := range records {
		byID[rec.ItemID] = rec
	}

	fresh := make(map[string]*model.SentimentRecord)
	for _, item := range items {
		if rec, ok := byID[item.ID]; ok && rec.Fresh(item) {
			fresh[item.ID] = rec
		}
	}
	return fresh, nil
}

// analyzeItem runs one analysis and stores its result. A provider failure is stored as a failed record and is not
// returned as an error. Concurrent calls for the same text share one request.
func (x *UseCase) analyzeItem(ctx context.Context, repo *model.Repository, item *model.Item) (*model.SentimentRecord, error) {
	hash := item.ContentHash()
	key := repo.ID.String() + "/" + item.ID + "/" + hash

	v, err, _ := x.sentimentFlight.Do(key, func() (any, error) {
		cfg := repo.Settings.Sentiment
		rec := &model.SentimentRecord{
			RepoID:      repo.ID,
			ItemID:      item.ID,
			ContentHash: hash,
			Status:      types.SentimentStatusOK,
			Provider:    cfg.Provider,
		}

		score, err := x.requestSentiment(ctx, cfg, item)
		rec.AnalyzedAt = logging.CtxTime(ctx)
		if err != nil {
			rec.Status = types.SentimentStatusFailed
			rec.Error = err.Error()
			logging.From(ctx).Warn("sentiment analysis failed",
				slog.String("repo_id", repo.ID.String()),
				slog.Int("number", item.Number),
				slog.Any("error", err),
			)
		} else {
			rec.Score = score
		}

		if err := x.clients.Repository().PutSentiment(ctx, rec); err != nil {
			return nil, goerr.Wrap(err, "failed to save sentiment record",
				goerr.V("repo_id", repo.ID), goerr.V("item_id", item.ID))
		}
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.SentimentRecord), nil
}

func (x *UseCase) requestSentiment(ctx context.Context, cfg model.SentimentConfig, item *model.Item) (int, error) {
	provider, err := x.clients.LLM().NewProvider(cfg)
	if err != nil {
		return 0, err
	}
	return AnalyzeSentiment(ctx, provider, item.Title, item.Body)
}

// enqueueSentiment starts a background analysis when a worker is free. Items skipped here are queued again by a
// later read.
func (x *UseCase) enqueueSentiment(ctx context.Context, repo *model.Repository, item *model.Item) bool {
	bgCtx := logging.Detach(ctx)
	repo = repo.Clone()
	item = item.Clone()

	return x.sentimentPool.TryGo(func() error {
		if _, err := x.analyzeItem(bgCtx, repo, item); err != nil {
			errutil.HandleError(bgCtx, "background sentiment analysis failed", err)
		}
		return nil
	})
}

// StartSentimentAnalysis analyzes every open item without a successful record for its current text.
func (x *UseCase) StartSentimentAnalysis(ctx context.Context, repoID types.RepoID) (*model.SyncJob, error) {
	repo, err := x.GetRepository(ctx, repoID)
	if err != nil {
		return nil, err
	}
	if !repo.Settings.Sentiment.Enabled() {
		return nil, goerr.Wrap(types.ErrSentimentDisabled, "sentiment provider and API key are required", goerr.V("repo_id", repoID))
	}

	return x.launch(ctx, repo.ID, types.JobKindSentiment, types.JobModeFull, func(ctx context.Context, job *model.SyncJob) error {
		return x.analyzeRepository(ctx, repo.ID, job)
	})
}

func (x *UseCase) analyzeRepository(ctx context.Context, repoID types.RepoID, job *model.SyncJob) error {
	repo, err := x.clients.Repository().GetRepository(ctx, repoID)
	if err != nil {
		return goerr.Wrap(err, "failed to reload repository")
	}
	if !repo.Settings.Sentiment.Enabled() {
		return goerr.Wrap(types.ErrSentimentDisabled, "sentiment was disabled before the job started")
	}

	items, err := x.clients.Repository().ListItems(ctx, repo.ID, "")
	if err != nil {
		return goerr.Wrap(err, "failed to list items")
	}
	records, err := x.freshSentiments(ctx, repo.ID, items)
	if err != nil {
		return err
	}

	var targets []*model.Item
	for _, item := range items {
		if item.State != types.ItemStateOpen {
			continue
		}
		if rec, ok := records[item.ID]; ok && rec.Status == types.SentimentStatusOK {
			continue
		}
		targets = append(targets, item)
	}

	job.Progress.Total = len(targets)
	if err := x.saveProgress(ctx, job); err != nil {
		return err
	}

	var failed int
	for _, item := range targets {
		rec, err := x.analyzeItem(ctx, repo, item)
		if err != nil {
			return err
		}
		if rec.Status == types.SentimentStatusFailed {
			failed++
		}

		job.Progress.Advance(1)
		if err := x.saveProgress(ctx, job); err != nil {
			return err
		}
	}

	if failed > 0 {
		job.Message = fmt.Sprintf("%d of %d items could not be analyzed", failed, len(targets))
	}
	return nil
}

// TestAPIKey sends one minimal request with the config and reports the provider error as is.
func (x *UseCase) TestAPIKey(ctx context.Context, cfg *model.SentimentConfig) *model.APIKeyTestResult {
	if cfg == nil {
		return &model.APIKeyTestResult{Message: "sentiment config is required"}
	}
	if err := cfg.Validate(); err != nil {
		return &model.APIKeyTestResult{Message: err.Error()}
	}

	provider, err := x.clients.LLM().NewProvider(*cfg)
	if err != nil {
		return &model.APIKeyTestResult{Message: err.Error()}
	}

	if _, err := provider.Complete(ctx, apiKeyTestPrompt); err != nil {
		logging.From(ctx).Info("API key test failed", slog.Any("provider", cfg.Provider), slog.Any("error", err))
		return &model.APIKeyTestResult{Message: err.Error()}
	}

	return &model.APIKeyTestResult{OK: true, Message: "API key is valid"}
}
