package types

import "github.com/m-mizutani/goerr/v2"

type ScoreFamily string

const (
	ScoreFamilyBugs      ScoreFamily = "bugs"
	ScoreFamilyStale     ScoreFamily = "stale"
	ScoreFamilyCommunity ScoreFamily = "community"
)

func (x ScoreFamily) Validate() error {
	switch x {
	case ScoreFamilyBugs, ScoreFamilyStale, ScoreFamilyCommunity:
		return nil
	}
	return goerr.Wrap(ErrValidationFailed, "unknown score type", goerr.V("score_type", x))
}

type Level string

const (
	LevelCritical Level = "critical"
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelNone     Level = "none"
)

func (x Level) Validate() error {
	switch x {
	case LevelCritical, LevelHigh, LevelMedium, LevelNone:
		return nil
	}
	return goerr.Wrap(ErrValidationFailed, "unknown level", goerr.V("level", x))
}

// Severity orders levels; a higher value is more severe.
func (x Level) Severity() int {
	switch x {
	case LevelCritical:
		return 3
	case LevelHigh:
		return 2
	case LevelMedium:
		return 1
	}
	return 0
}

type IssueType string

const (
	IssueTypeBug     IssueType = "bug"
	IssueTypeFeature IssueType = "feature"
)

func (x IssueType) Validate() error {
	switch x {
	case IssueTypeBug, IssueTypeFeature:
		return nil
	}
	return goerr.Wrap(ErrValidationFailed, "unknown issue type", goerr.V("issue_type", x))
}
