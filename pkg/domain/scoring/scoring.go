// Package scoring ranks cached issues and pull requests. Every function is pure and safe for concurrent use.
package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

// SentimentRawMax is the upper bound of raw sentiment scores returned by providers.
const SentimentRawMax = 30

const day = 24 * time.Hour

// SentimentSource looks up a sentiment score for an item.
type SentimentSource interface {
	Sentiment(itemID string) (int, bool)
}

// SentimentMap is a SentimentSource backed by a map from item ID to raw score.
type SentimentMap map[string]int

func (x SentimentMap) Sentiment(itemID string) (int, bool) {
	v, ok := x[itemID]
	return v, ok
}

type Config struct {
	Now           time.Time
	BugLabels     []string
	FeatureLabels []string
	Maintainers   []string
	Thresholds    model.ThresholdSet
	Sentiment     SentimentSource
}

// NewConfig builds a Config from repository settings, filling defaults.
func NewConfig(settings model.RepositorySettings, now time.Time, sentiment SentimentSource) Config {
	s := settings.WithDefaults()
	return Config{
		Now:           now,
		BugLabels:     s.BugLabels,
		FeatureLabels: s.FeatureLabels,
		Maintainers:   s.Maintainers,
		Thresholds:    s.Thresholds,
		Sentiment:     sentiment,
	}
}

// ScaleSentimentScore maps a raw sentiment score into [0, maxPoints].
func ScaleSentimentScore(raw, maxPoints int) int {
	return int(math.Round(float64(raw) * float64(maxPoints) / SentimentRawMax))
}

// Score computes the score of the item for the family.
func Score(family types.ScoreFamily, item *model.Item, cfg Config) model.Score {
	score := weigh(item, WeightsFor(family), cfg)
	score.Family = family
	score.Level = Bucket(score.Value, cfg.Thresholds.For(family))
	return score
}

// Bucket returns the band of the value. Lower bounds are inclusive.
func Bucket(value int, th model.Thresholds) types.Level {
	switch {
	case value >= th.Critical:
		return types.LevelCritical
	case value >= th.High:
		return types.LevelHigh
	case value >= th.Medium:
		return types.LevelMedium
	default:
		return types.LevelNone
	}
}

// InLevel reports whether the value lies in [threshold of level, threshold of next level).
func InLevel(value int, level types.Level, th model.Thresholds) bool {
	switch level {
	case types.LevelCritical:
		return value >= th.Critical
	case types.LevelHigh:
		return value >= th.High && value < th.Critical
	case types.LevelMedium:
		return value >= th.Medium && value < th.High
	case types.LevelNone:
		return value < th.Medium
	}
	return false
}

func weigh(item *model.Item, w Weights, cfg Config) model.Score {
	var (
		score model.Score
		total float64
	)
	add := func(name string, points float64) {
		if points == 0 {
			return
		}
		score.Breakdown = append(score.Breakdown, model.ScoreComponent{Name: name, Points: points})
		total += points
	}

	if w.LabelMatch > 0 {
		var labels []string
		switch w.labels {
		case bugLabels:
			labels = cfg.BugLabels
		case featureLabels:
			labels = cfg.FeatureLabels
		}
		if item.HasLabel(labels) {
			add("label", w.LabelMatch)
		}
	}

	if w.ReactionCap > 0 {
		var points float64
		for _, r := range types.AllReactions {
			weight, ok := w.Reactions[r]
			if !ok {
				weight = w.OtherReaction
			}
			points += weight * float64(item.Reactions.Count(r))
		}
		add("reactions", math.Min(points, w.ReactionCap))
	}

	if w.PerComment > 0 {
		add("comments", math.Min(w.PerComment*float64(item.CommentCount), w.CommentCap))
	}

	if w.PerMonthOpen > 0 {
		months := daysBetween(item.CreatedAt, cfg.Now) / 30
		add("age", math.Min(w.PerMonthOpen*months, w.AgeCap))
	}

	if w.PerIdleDay > 0 {
		add("idle", math.Min(w.PerIdleDay*daysBetween(lastActivity(item), cfg.Now), w.IdleCap))
	}

	if w.NoMaintainerResponse > 0 && !maintainerResponded(item, cfg.Maintainers) {
		add("no_maintainer_response", w.NoMaintainerResponse)
	}

	if w.PerCommentPerWeek > 0 {
		weeks := math.Max(daysBetween(item.CreatedAt, cfg.Now)/7, 1)
		add("comment_velocity", math.Min(w.PerCommentPerWeek*float64(item.CommentCount)/weeks, w.VelocityCap))
	}

	if w.PerDistinctAuthor > 0 {
		add("distinct_authors", math.Min(w.PerDistinctAuthor*float64(distinctCommenters(item)), w.DistinctAuthorCap))
	}

	if w.SentimentMax > 0 && cfg.Sentiment != nil {
		if raw, ok := cfg.Sentiment.Sentiment(item.ID); ok {
			score.SentimentApplied = true
			add("sentiment", float64(ScaleSentimentScore(clamp(raw, 0, SentimentRawMax), w.SentimentMax)))
		}
	}

	if pr := item.PullRequest; pr != nil {
		if w.ConflictPenalty > 0 && pr.Conflicting() {
			score.Flags = append(score.Flags, model.FlagConflicting)
			add("conflicting", w.ConflictPenalty)
		}
		if w.DraftFactor > 0 && pr.IsDraft {
			score.Flags = append(score.Flags, model.FlagDraft)
			reduced := total * w.DraftFactor
			add("draft", reduced-total)
		}
	}

	score.Value = int(math.Round(total))
	return score
}

func daysBetween(from, to time.Time) float64 {
	if from.IsZero() || !to.After(from) {
		return 0
	}
	return float64(to.Sub(from)) / float64(day)
}

func lastActivity(item *model.Item) time.Time {
	last := item.UpdatedAt
	for _, c := range item.Comments {
		if c.CreatedAt.After(last) {
			last = c.CreatedAt
		}
	}
	if last.IsZero() {
		return item.CreatedAt
	}
	return last
}

// maintainerResponded reports whether someone other than the author answered. When no maintainer team is
// configured, any other commenter counts.
func maintainerResponded(item *model.Item, maintainers []string) bool {
	for _, c := range item.Comments {
		if strings.EqualFold(c.Author, item.Author) {
			continue
		}
		if len(maintainers) == 0 || containsFold(maintainers, c.Author) {
			return true
		}
	}
	return false
}

func distinctCommenters(item *model.Item) int {
	seen := map[string]struct{}{}
	for _, c := range item.Comments {
		if c.Author == "" || strings.EqualFold(c.Author, item.Author) {
			continue
		}
		seen[strings.ToLower(c.Author)] = struct{}{}
	}
	return len(seen)
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
