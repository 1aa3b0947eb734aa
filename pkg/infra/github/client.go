// Package github reads issues and pull requests with the GitHub GraphQL API.
package github

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shurcooL/githubv4"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/infra/fetcher"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

const DefaultPageSize = 50

type Client struct {
	gql      *githubv4.Client
	fetcher  *fetcher.Client
	pageSize int
	endpoint string
}

var _ interfaces.GitHub = (*Client)(nil)

type Option func(*Client)

// WithEndpoint sets the GraphQL endpoint of GitHub Enterprise Server.
func WithEndpoint(endpoint string) Option {
	return func(x *Client) {
		x.endpoint = endpoint
	}
}

func WithPageSize(n int) Option {
	return func(x *Client) {
		x.pageSize = n
	}
}

// New creates a client. httpClient must carry the authentication and should wrap fetcher.Transport so that
// rate limit responses reach the fetch client.
func New(httpClient *http.Client, f *fetcher.Client, options ...Option) (*Client, error) {
	if httpClient == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "http client is required")
	}
	if f == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "fetcher is required")
	}

	client := &Client{
		fetcher:  f,
		pageSize: DefaultPageSize,
	}
	for _, opt := range options {
		opt(client)
	}

	if client.pageSize <= 0 || client.pageSize > 100 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "page size must be between 1 and 100", goerr.V("page_size", client.pageSize))
	}

	if client.endpoint != "" {
		client.gql = githubv4.NewEnterpriseClient(client.endpoint, httpClient)
	} else {
		client.gql = githubv4.NewClient(httpClient)
	}

	return client, nil
}

type rateLimit struct {
	Remaining githubv4.Int
	ResetAt   githubv4.DateTime
}

func (x *Client) query(ctx context.Context, q any, vars map[string]any, rl *rateLimit) error {
	err := x.fetcher.Do(ctx, func(ctx context.Context) error {
		return x.gql.Query(ctx, q, vars)
	})
	if err != nil {
		return err
	}
	if rl != nil && !rl.ResetAt.IsZero() {
		x.fetcher.ObserveQuota(int(rl.Remaining), rl.ResetAt.Time)
	}
	return nil
}

func (x *Client) GetRepositoryID(ctx context.Context, owner, name string) (int64, error) {
	var q struct {
		RateLimit  rateLimit
		Repository struct {
			DatabaseID githubv4.Int `graphql:"databaseId"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}

	if err := x.query(ctx, &q, vars, &q.RateLimit); err != nil {
		return 0, goerr.Wrap(err, "failed to get repository", goerr.V("owner", owner), goerr.V("name", name))
	}
	if q.Repository.DatabaseID == 0 {
		return 0, goerr.Wrap(types.ErrInvalidGitHubData, "repository has no database ID", goerr.V("owner", owner), goerr.V("name", name))
	}

	return int64(q.Repository.DatabaseID), nil
}

// CountItems returns the number of items a sync run will visit. Pull requests have no update filter in the
// repository connection, so the search API counts them when since is set.
func (x *Client) CountItems(ctx context.Context, owner, name string, since *time.Time) (*model.ItemCount, error) {
	if since == nil {
		var q struct {
			RateLimit  rateLimit
			Repository struct {
				Issues struct {
					TotalCount githubv4.Int
				} `graphql:"issues"`
				PullRequests struct {
					TotalCount githubv4.Int
				} `graphql:"pullRequests"`
			} `graphql:"repository(owner: $owner, name: $name)"`
		}
		vars := map[string]any{
			"owner": githubv4.String(owner),
			"name":  githubv4.String(name),
		}
		if err := x.query(ctx, &q, vars, &q.RateLimit); err != nil {
			return nil, goerr.Wrap(err, "failed to count items", goerr.V("owner", owner), goerr.V("name", name))
		}
		return &model.ItemCount{
			Issues:       int(q.Repository.Issues.TotalCount),
			PullRequests: int(q.Repository.PullRequests.TotalCount),
		}, nil
	}

	var q struct {
		RateLimit rateLimit
		Issues    struct {
			IssueCount githubv4.Int
		} `graphql:"issues: search(query: $issueQuery, type: ISSUE)"`
		PullRequests struct {
			IssueCount githubv4.Int
		} `graphql:"pullRequests: search(query: $prQuery, type: ISSUE)"`
	}
	updated := "updated:>=" + since.UTC().Format(time.RFC3339)
	repo := "repo:" + owner + "/" + name
	vars := map[string]any{
		"issueQuery": githubv4.String(strings.Join([]string{repo, "is:issue", updated}, " ")),
		"prQuery":    githubv4.String(strings.Join([]string{repo, "is:pr", updated}, " ")),
	}
	if err := x.query(ctx, &q, vars, &q.RateLimit); err != nil {
		return nil, goerr.Wrap(err, "failed to count updated items", goerr.V("owner", owner), goerr.V("name", name))
	}

	return &model.ItemCount{
		Issues:       int(q.Issues.IssueCount),
		PullRequests: int(q.PullRequests.IssueCount),
	}, nil
}

type pageInfo struct {
	EndCursor   githubv4.String
	HasNextPage githubv4.Boolean
}

// ListIssues returns one page of issues of every state, oldest update first.
func (x *Client) ListIssues(ctx context.Context, owner, name string, input *interfaces.ListItemsInput) (*model.ItemPage, error) {
	var q struct {
		RateLimit  rateLimit
		Repository struct {
			Issues struct {
				Nodes    []issueNode
				PageInfo pageInfo
			} `graphql:"issues(first: $first, after: $cursor, filterBy: $filterBy, orderBy: {field: UPDATED_AT, direction: ASC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	filter := githubv4.IssueFilters{}
	if input != nil && input.Since != nil {
		filter.Since = &githubv4.DateTime{Time: *input.Since}
	}
	vars := map[string]any{
		"owner":    githubv4.String(owner),
		"name":     githubv4.String(name),
		"first":    githubv4.Int(x.pageSize),
		"cursor":   cursorVar(input),
		"filterBy": filter,
	}

	if err := x.query(ctx, &q, vars, &q.RateLimit); err != nil {
		return nil, goerr.Wrap(err, "failed to list issues", goerr.V("owner", owner), goerr.V("name", name))
	}

	repoID := types.NewRepoID(owner, name)
	page := &model.ItemPage{
		EndCursor:   string(q.Repository.Issues.PageInfo.EndCursor),
		HasNextPage: bool(q.Repository.Issues.PageInfo.HasNextPage),
	}
	for _, node := range q.Repository.Issues.Nodes {
		page.Items = append(page.Items, node.toModel(repoID))
	}

	logging.From(ctx).Debug("listed issues",
		slog.String("repo_id", repoID.String()),
		slog.Int("count", len(page.Items)),
		slog.Bool("has_next", page.HasNextPage),
	)
	return page, nil
}

// ListPullRequests returns one page of pull requests, newest update first. With Since set the listing ends at
// the first pull request updated before it.
func (x *Client) ListPullRequests(ctx context.Context, owner, name string, input *interfaces.ListItemsInput) (*model.ItemPage, error) {
	var q struct {
		RateLimit  rateLimit
		Repository struct {
			PullRequests struct {
				Nodes    []pullRequestNode
				PageInfo pageInfo
			} `graphql:"pullRequests(first: $first, after: $cursor, orderBy: {field: UPDATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(name),
		"first":  githubv4.Int(x.pageSize),
		"cursor": cursorVar(input),
	}

	if err := x.query(ctx, &q, vars, &q.RateLimit); err != nil {
		return nil, goerr.Wrap(err, "failed to list pull requests", goerr.V("owner", owner), goerr.V("name", name))
	}

	repoID := types.NewRepoID(owner, name)
	page := &model.ItemPage{
		EndCursor:   string(q.Repository.PullRequests.PageInfo.EndCursor),
		HasNextPage: bool(q.Repository.PullRequests.PageInfo.HasNextPage),
	}
	for _, node := range q.Repository.PullRequests.Nodes {
		item := node.toModel(repoID)
		if input != nil && input.Since != nil && item.UpdatedAt.Before(*input.Since) {
			page.HasNextPage = false
			break
		}
		page.Items = append(page.Items, item)
	}

	logging.From(ctx).Debug("listed pull requests",
		slog.String("repo_id", repoID.String()),
		slog.Int("count", len(page.Items)),
		slog.Bool("has_next", page.HasNextPage),
	)
	return page, nil
}

// GetItem fetches one issue or pull request by number.
func (x *Client) GetItem(ctx context.Context, owner, name string, number int) (*model.Item, error) {
	var q struct {
		RateLimit  rateLimit
		Repository struct {
			IssueOrPullRequest *struct {
				TypeName    githubv4.String `graphql:"__typename"`
				Issue       issueNode       `graphql:"... on Issue"`
				PullRequest pullRequestNode `graphql:"... on PullRequest"`
			} `graphql:"issueOrPullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(name),
		"number": githubv4.Int(number),
	}

	if err := x.query(ctx, &q, vars, &q.RateLimit); err != nil {
		return nil, goerr.Wrap(err, "failed to get item",
			goerr.V("owner", owner), goerr.V("name", name), goerr.V("number", number))
	}

	repoID := types.NewRepoID(owner, name)
	found := q.Repository.IssueOrPullRequest
	if found == nil {
		return nil, goerr.Wrap(types.ErrInvalidGitHubData, "item not found",
			goerr.V("repo_id", repoID), goerr.V("number", number))
	}

	switch found.TypeName {
	case "Issue":
		return found.Issue.toModel(repoID), nil
	case "PullRequest":
		return found.PullRequest.toModel(repoID), nil
	default:
		return nil, goerr.Wrap(types.ErrInvalidGitHubData, "unknown item type",
			goerr.V("type", found.TypeName), goerr.V("number", number))
	}
}

func cursorVar(input *interfaces.ListItemsInput) *githubv4.String {
	if input == nil || input.Cursor == "" {
		return nil
	}
	return githubv4.NewString(githubv4.String(input.Cursor))
}
