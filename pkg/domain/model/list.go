package model

import (
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type ListIssuesInput struct {
	RepoID    types.RepoID
	Page      int
	PerPage   int
	ScoreType types.ScoreFamily
	Level     types.Level
	IssueType types.IssueType
	Search    string
	Labels    []string
	State     types.ItemState
}

// Validate checks the input and fills defaults.
func (x *ListIssuesInput) Validate() error {
	if err := validateListing(x.RepoID, &x.Page, &x.PerPage, &x.ScoreType, x.Level, &x.State); err != nil {
		return err
	}
	if x.IssueType != "" {
		if err := x.IssueType.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ListIssuesOutput struct {
	Issues      []*ScoredItem `json:"issues"`
	Page        int           `json:"page"`
	PerPage     int           `json:"per_page"`
	TotalItems  int           `json:"total_items"`
	TotalPages  int           `json:"total_pages"`
	Thresholds  Thresholds    `json:"thresholds"`
	FetchStatus *SyncStatus   `json:"fetch_status"`
}

type ListPullRequestsInput struct {
	RepoID    types.RepoID
	Page      int
	PerPage   int
	ScoreType types.ScoreFamily
	Level     types.Level
	Search    string
	Labels    []string
	State     types.ItemState
}

func (x *ListPullRequestsInput) Validate() error {
	return validateListing(x.RepoID, &x.Page, &x.PerPage, &x.ScoreType, x.Level, &x.State)
}

type ListPullRequestsOutput struct {
	PullRequests []*ScoredItem `json:"prs"`
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	TotalItems   int           `json:"total_items"`
	TotalPages   int           `json:"total_pages"`
	Stats        PRStats       `json:"stats"`
	Thresholds   Thresholds    `json:"thresholds"`
	FetchStatus  *SyncStatus   `json:"fetch_status"`
}

// PRStats summarizes all cached open pull requests regardless of filters.
type PRStats struct {
	Total            int `json:"total"`
	Open             int `json:"open"`
	Draft            int `json:"draft"`
	Conflicting      int `json:"conflicting"`
	AwaitingReview   int `json:"awaiting_review"`
	Approved         int `json:"approved"`
	ChangesRequested int `json:"changes_requested"`
}

func validateListing(repoID types.RepoID, page, perPage *int, family *types.ScoreFamily, level types.Level, state *types.ItemState) error {
	if err := repoID.Validate(); err != nil {
		return err
	}

	if *page < 0 {
		return goerr.Wrap(types.ErrValidationFailed, "page must not be negative", goerr.V("page", *page))
	}
	if *page == 0 {
		*page = 1
	}

	if *perPage < 0 || *perPage > MaxPerPage {
		return goerr.Wrap(types.ErrValidationFailed, "per_page is out of range", goerr.V("per_page", *perPage))
	}
	if *perPage == 0 {
		*perPage = DefaultPerPage
	}

	if *family == "" {
		*family = types.ScoreFamilyBugs
	}
	if err := family.Validate(); err != nil {
		return err
	}

	if level != "" {
		if err := level.Validate(); err != nil {
			return err
		}
	}

	switch *state {
	case "":
		*state = types.ItemStateOpen
	case types.ItemStateOpen, types.ItemStateClosed, types.ItemStateMerged, types.ItemStateAll:
	default:
		return goerr.Wrap(types.ErrValidationFailed, "unknown state", goerr.V("state", *state))
	}

	return nil
}
