package github

import (
	"strings"
	"time"

	"github.com/shurcooL/githubv4"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

type actor struct {
	Login githubv4.String
}

type commentNode struct {
	Author    *actor
	CreatedAt githubv4.DateTime
}

type reactionGroup struct {
	Content  githubv4.ReactionContent
	Reactors struct {
		TotalCount githubv4.Int
	}
}

// ItemFields are shared by issues and pull requests. It is exported so that the GraphQL decoder can fill the
// embedded fields.
type ItemFields struct {
	ID        githubv4.String `graphql:"id"`
	Number    githubv4.Int
	Title     githubv4.String
	Body      githubv4.String
	URL       githubv4.String `graphql:"url"`
	Author    *actor
	CreatedAt githubv4.DateTime
	UpdatedAt githubv4.DateTime
	ClosedAt  *githubv4.DateTime
	Labels    struct {
		Nodes []struct {
			Name githubv4.String
		}
	} `graphql:"labels(first: 20)"`
	Assignees struct {
		Nodes []actor
	} `graphql:"assignees(first: 10)"`
	Comments struct {
		TotalCount githubv4.Int
		Nodes      []commentNode
	} `graphql:"comments(last: 20)"`
	ReactionGroups []reactionGroup
}

type issueNode struct {
	ItemFields
	State githubv4.IssueState
}

type pullRequestNode struct {
	ItemFields
	State          githubv4.PullRequestState
	IsDraft        githubv4.Boolean
	Mergeable      githubv4.MergeableState
	ReviewDecision *githubv4.PullRequestReviewDecision
	ReviewRequests struct {
		Nodes []struct {
			RequestedReviewer struct {
				User struct {
					Login githubv4.String
				} `graphql:"... on User"`
				Team struct {
					Name githubv4.String
				} `graphql:"... on Team"`
			}
		}
	} `graphql:"reviewRequests(first: 10)"`
	Additions    githubv4.Int
	Deletions    githubv4.Int
	ChangedFiles githubv4.Int
	MergedAt     *githubv4.DateTime
}

func (x *issueNode) toModel(repoID types.RepoID) *model.Item {
	item := x.ItemFields.toModel(repoID, types.ItemKindIssue)
	if x.State == githubv4.IssueStateClosed {
		item.State = types.ItemStateClosed
	}
	return item
}

func (x *pullRequestNode) toModel(repoID types.RepoID) *model.Item {
	item := x.ItemFields.toModel(repoID, types.ItemKindPullRequest)
	switch x.State {
	case githubv4.PullRequestStateClosed:
		item.State = types.ItemStateClosed
	case githubv4.PullRequestStateMerged:
		item.State = types.ItemStateMerged
	}

	pr := &model.PullRequestInfo{
		IsDraft:      bool(x.IsDraft),
		Mergeable:    string(x.Mergeable),
		Reviewers:    []string{},
		Additions:    int(x.Additions),
		Deletions:    int(x.Deletions),
		ChangedFiles: int(x.ChangedFiles),
		MergedAt:     timePtr(x.MergedAt),
	}
	if x.ReviewDecision != nil {
		pr.ReviewDecision = string(*x.ReviewDecision)
	}
	for _, req := range x.ReviewRequests.Nodes {
		switch {
		case req.RequestedReviewer.User.Login != "":
			pr.Reviewers = append(pr.Reviewers, string(req.RequestedReviewer.User.Login))
		case req.RequestedReviewer.Team.Name != "":
			pr.Reviewers = append(pr.Reviewers, string(req.RequestedReviewer.Team.Name))
		}
	}
	item.PullRequest = pr

	return item
}

func (x *ItemFields) toModel(repoID types.RepoID, kind types.ItemKind) *model.Item {
	item := &model.Item{
		ID:           string(x.ID),
		RepoID:       repoID,
		Kind:         kind,
		Number:       int(x.Number),
		Title:        string(x.Title),
		Body:         string(x.Body),
		URL:          string(x.URL),
		State:        types.ItemStateOpen,
		Author:       login(x.Author),
		CreatedAt:    x.CreatedAt.Time,
		UpdatedAt:    x.UpdatedAt.Time,
		ClosedAt:     timePtr(x.ClosedAt),
		CommentCount: int(x.Comments.TotalCount),
		Labels:       []string{},
		Assignees:    []string{},
	}

	labels := make([]string, 0, len(x.Labels.Nodes))
	for _, label := range x.Labels.Nodes {
		labels = append(labels, string(label.Name))
	}
	item.Labels = model.NormalizeLabels(labels)

	for _, assignee := range x.Assignees.Nodes {
		item.Assignees = append(item.Assignees, string(assignee.Login))
	}

	for _, c := range x.Comments.Nodes {
		item.Comments = append(item.Comments, model.Comment{
			Author:    login(c.Author),
			CreatedAt: c.CreatedAt.Time,
		})
	}

	for _, g := range x.ReactionGroups {
		if r, ok := reactionOf(g.Content); ok {
			item.Reactions.Add(r, int(g.Reactors.TotalCount))
		}
	}

	return item
}

func reactionOf(content githubv4.ReactionContent) (types.Reaction, bool) {
	switch content {
	case githubv4.ReactionContentThumbsUp:
		return types.ReactionThumbsUp, true
	case githubv4.ReactionContentThumbsDown:
		return types.ReactionThumbsDown, true
	case githubv4.ReactionContentLaugh:
		return types.ReactionLaugh, true
	case githubv4.ReactionContentHooray:
		return types.ReactionHooray, true
	case githubv4.ReactionContentConfused:
		return types.ReactionConfused, true
	case githubv4.ReactionContentHeart:
		return types.ReactionHeart, true
	case githubv4.ReactionContentRocket:
		return types.ReactionRocket, true
	case githubv4.ReactionContentEyes:
		return types.ReactionEyes, true
	}
	return "", false
}

// login returns "ghost" for deleted accounts, the same name GitHub shows.
func login(a *actor) string {
	if a == nil {
		return "ghost"
	}
	return strings.TrimSpace(string(a.Login))
}

func timePtr(dt *githubv4.DateTime) *time.Time {
	if dt == nil {
		return nil
	}
	t := dt.Time
	return &t
}
