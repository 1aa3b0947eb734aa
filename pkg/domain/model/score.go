package model

import "github.com/m-mizutani/ghpulse/pkg/domain/types"

// Score is derived from an Item at read time and never persisted.
type Score struct {
	Family    types.ScoreFamily `json:"family"`
	Value     int               `json:"value"`
	Level     types.Level       `json:"level"`
	Breakdown []ScoreComponent  `json:"breakdown"`
	Flags     []string          `json:"flags,omitempty"`

	// SentimentApplied is true when a sentiment score contributed to Value.
	SentimentApplied bool `json:"-"`
}

type ScoreComponent struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

const (
	FlagDraft       = "draft"
	FlagConflicting = "conflicting"
)

type ScoredItem struct {
	*Item
	Score     Score                 `json:"score"`
	Sentiment types.SentimentMarker `json:"sentiment"`
}
