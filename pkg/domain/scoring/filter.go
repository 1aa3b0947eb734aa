package scoring

import (
	"slices"
	"strconv"
	"strings"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

type Filter struct {
	Search    string
	Labels    []string
	Level     types.Level
	IssueType types.IssueType
	State     types.ItemState
}

// MatchSearch matches title and labels case-insensitively, and the number with or without a leading '#'.
func MatchSearch(item *model.Item, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	if n, err := strconv.Atoi(strings.TrimPrefix(q, "#")); err == nil && n == item.Number {
		return true
	}

	if strings.Contains(strings.ToLower(item.Title), q) {
		return true
	}
	for _, label := range item.Labels {
		if strings.Contains(strings.ToLower(label), q) {
			return true
		}
	}
	return false
}

// MatchLabels is an exact set intersection. An empty filter matches everything.
func MatchLabels(item *model.Item, labels []string) bool {
	if len(labels) == 0 {
		return true
	}
	return item.HasLabel(labels)
}

func matchState(item *model.Item, state types.ItemState) bool {
	switch state {
	case "", types.ItemStateAll:
		return true
	case types.ItemStateClosed:
		// merged pull requests are closed as well
		return item.State == types.ItemStateClosed || item.State == types.ItemStateMerged
	default:
		return item.State == state
	}
}

func matchIssueType(item *model.Item, issueType types.IssueType, cfg Config) bool {
	switch issueType {
	case types.IssueTypeBug:
		return item.HasLabel(cfg.BugLabels)
	case types.IssueTypeFeature:
		return item.HasLabel(cfg.FeatureLabels)
	}
	return true
}

// Rank scores the items for the family, drops those not matching the filter and sorts the rest by descending
// score, then by most recent update, then by descending number.
func Rank(items []*model.Item, family types.ScoreFamily, cfg Config, filter Filter) []*model.ScoredItem {
	th := cfg.Thresholds.For(family)

	var ranked []*model.ScoredItem
	for _, item := range items {
		if !matchState(item, filter.State) ||
			!matchIssueType(item, filter.IssueType, cfg) ||
			!MatchLabels(item, filter.Labels) ||
			!MatchSearch(item, filter.Search) {
			continue
		}

		score := Score(family, item, cfg)
		if filter.Level != "" && !InLevel(score.Value, filter.Level, th) {
			continue
		}

		ranked = append(ranked, &model.ScoredItem{Item: item, Score: score})
	}

	slices.SortStableFunc(ranked, compareScored)
	return ranked
}

func compareScored(a, b *model.ScoredItem) int {
	if a.Score.Value != b.Score.Value {
		return b.Score.Value - a.Score.Value
	}
	if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
		return c
	}
	return b.Number - a.Number
}

// Paginate returns the 1-based page of items and the number of pages.
func Paginate[T any](items []T, page, perPage int) ([]T, int) {
	if perPage <= 0 {
		perPage = model.DefaultPerPage
	}
	if page <= 0 {
		page = 1
	}

	totalPages := len(items) / perPage
	if len(items)%perPage != 0 {
		totalPages++
	}
	// compared before multiplying so that a huge page can not overflow
	if page > totalPages {
		return []T{}, totalPages
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(items))
	return items[start:end], totalPages
}

// PRStats summarizes open pull requests.
func PRStats(items []*model.Item) model.PRStats {
	var stats model.PRStats
	for _, item := range items {
		if item.Kind != types.ItemKindPullRequest {
			continue
		}
		stats.Total++
		if item.State != types.ItemStateOpen {
			continue
		}
		stats.Open++

		pr := item.PullRequest
		if pr == nil {
			continue
		}
		if pr.IsDraft {
			stats.Draft++
		}
		if pr.Conflicting() {
			stats.Conflicting++
		}
		switch pr.ReviewDecision {
		case model.ReviewApproved:
			stats.Approved++
		case model.ReviewChangesRequested:
			stats.ChangesRequested++
		default:
			if !pr.IsDraft {
				stats.AwaitingReview++
			}
		}
	}
	return stats
}
