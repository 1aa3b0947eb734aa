package model

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

// Item is a cached snapshot of a GitHub issue or pull request.
type Item struct {
	ID           string          `json:"id"`
	RepoID       types.RepoID    `json:"repo_id"`
	Kind         types.ItemKind  `json:"kind"`
	Number       int             `json:"number"`
	Title        string          `json:"title"`
	Body         string          `json:"body,omitempty"`
	URL          string          `json:"url"`
	State        types.ItemState `json:"state"`
	Author       string          `json:"author"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
	CommentCount int             `json:"comment_count"`
	Labels       []string        `json:"labels"`
	Assignees    []string        `json:"assignees"`
	Reactions    Reactions       `json:"reactions"`

	// Comments holds the most recent comments only.
	Comments []Comment `json:"comments,omitempty"`

	PullRequest *PullRequestInfo `json:"pull_request,omitempty"`
	SyncedAt    time.Time        `json:"synced_at"`
}

type Comment struct {
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type PullRequestInfo struct {
	IsDraft        bool       `json:"is_draft"`
	Mergeable      string     `json:"mergeable"`
	ReviewDecision string     `json:"review_decision,omitempty"`
	Reviewers      []string   `json:"reviewers"`
	Additions      int        `json:"additions"`
	Deletions      int        `json:"deletions"`
	ChangedFiles   int        `json:"changed_files"`
	MergedAt       *time.Time `json:"merged_at,omitempty"`
}

const (
	MergeableConflicting = "CONFLICTING"

	ReviewApproved         = "APPROVED"
	ReviewChangesRequested = "CHANGES_REQUESTED"
	ReviewRequired         = "REVIEW_REQUIRED"
)

func (x *PullRequestInfo) Conflicting() bool {
	return x != nil && x.Mergeable == MergeableConflicting
}

type Reactions struct {
	ThumbsUp   int `json:"thumbs_up"`
	ThumbsDown int `json:"thumbs_down"`
	Laugh      int `json:"laugh"`
	Hooray     int `json:"hooray"`
	Confused   int `json:"confused"`
	Heart      int `json:"heart"`
	Rocket     int `json:"rocket"`
	Eyes       int `json:"eyes"`
}

func (x Reactions) Count(r types.Reaction) int {
	switch r {
	case types.ReactionThumbsUp:
		return x.ThumbsUp
	case types.ReactionThumbsDown:
		return x.ThumbsDown
	case types.ReactionLaugh:
		return x.Laugh
	case types.ReactionHooray:
		return x.Hooray
	case types.ReactionConfused:
		return x.Confused
	case types.ReactionHeart:
		return x.Heart
	case types.ReactionRocket:
		return x.Rocket
	case types.ReactionEyes:
		return x.Eyes
	}
	return 0
}

func (x *Reactions) Add(r types.Reaction, n int) {
	switch r {
	case types.ReactionThumbsUp:
		x.ThumbsUp += n
	case types.ReactionThumbsDown:
		x.ThumbsDown += n
	case types.ReactionLaugh:
		x.Laugh += n
	case types.ReactionHooray:
		x.Hooray += n
	case types.ReactionConfused:
		x.Confused += n
	case types.ReactionHeart:
		x.Heart += n
	case types.ReactionRocket:
		x.Rocket += n
	case types.ReactionEyes:
		x.Eyes += n
	}
}

func (x Reactions) Total() int {
	var total int
	for _, r := range types.AllReactions {
		total += x.Count(r)
	}
	return total
}

// NormalizeLabels removes duplicated labels and keeps the first occurrence order.
func NormalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == "" || slices.Contains(out, label) {
			continue
		}
		out = append(out, label)
	}
	return out
}

// ContentHash identifies the text that sentiment analysis looked at.
func (x *Item) ContentHash() string {
	h := xxhash.New()
	_, _ = h.WriteString(x.Title)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(x.Body)
	return strconv.FormatUint(h.Sum64(), 16)
}

// HasLabel reports whether the item carries any of the labels, compared case-insensitively.
func (x *Item) HasLabel(labels []string) bool {
	for _, have := range x.Labels {
		for _, want := range labels {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func (x *Item) Clone() *Item {
	if x == nil {
		return nil
	}
	cpy := *x
	cpy.Labels = slices.Clone(x.Labels)
	cpy.Assignees = slices.Clone(x.Assignees)
	cpy.Comments = slices.Clone(x.Comments)
	if x.ClosedAt != nil {
		t := *x.ClosedAt
		cpy.ClosedAt = &t
	}
	if x.PullRequest != nil {
		pr := *x.PullRequest
		pr.Reviewers = slices.Clone(x.PullRequest.Reviewers)
		if x.PullRequest.MergedAt != nil {
			t := *x.PullRequest.MergedAt
			pr.MergedAt = &t
		}
		cpy.PullRequest = &pr
	}
	return &cpy
}

// ItemCount is the number of items GitHub reports for a sync run.
type ItemCount struct {
	Issues       int
	PullRequests int
}

// ItemPage is one page of a cursor based listing.
type ItemPage struct {
	Items       []*Item
	EndCursor   string
	HasNextPage bool
}
