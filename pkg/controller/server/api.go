package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

// maskedAPIKey replaces a stored API key in responses. Sending it back in settings keeps the stored key.
const maskedAPIKey = types.APIKey("***********")

type handler struct {
	uc interfaces.UseCase
}

func repoIDFrom(r *http.Request) types.RepoID {
	return types.NewRepoID(chi.URLParam(r, "owner"), chi.URLParam(r, "repo"))
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(types.ErrValidationFailed, "invalid request body", goerr.V("error", err.Error()))
	}
	return nil
}

func maskRepository(repo *model.Repository) *model.Repository {
	out := repo.Clone()
	if out.Settings.Sentiment.APIKey != "" {
		out.Settings.Sentiment.APIKey = maskedAPIKey
	}
	return out
}

func (x *handler) listRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := x.uc.ListRepositories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]*model.Repository, len(repos))
	for i, repo := range repos {
		out[i] = maskRepository(repo)
	}
	writeJSON(w, http.StatusOK, out)
}

func (x *handler) addRepository(w http.ResponseWriter, r *http.Request) {
	var input model.AddRepositoryInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	repo, err := x.uc.AddRepository(r.Context(), &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, maskRepository(repo))
}

func (x *handler) getRepository(w http.ResponseWriter, r *http.Request) {
	repo, err := x.uc.GetRepository(r.Context(), repoIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, maskRepository(repo))
}

func (x *handler) deleteRepository(w http.ResponseWriter, r *http.Request) {
	if err := x.uc.DeleteRepository(r.Context(), repoIDFrom(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (x *handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.RepositorySettings
	if err := decodeBody(r, &settings); err != nil {
		writeError(w, r, err)
		return
	}

	repoID := repoIDFrom(r)
	if settings.Sentiment.APIKey == maskedAPIKey {
		current, err := x.uc.GetRepository(r.Context(), repoID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		settings.Sentiment.APIKey = current.Settings.Sentiment.APIKey
	}

	repo, err := x.uc.UpdateSettings(r.Context(), repoID, &settings)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, maskRepository(repo))
}

func (x *handler) startFetch(w http.ResponseWriter, r *http.Request) {
	job, err := x.uc.StartFetch(r.Context(), repoIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (x *handler) refresh(w http.ResponseWriter, r *http.Request) {
	job, err := x.uc.Refresh(r.Context(), repoIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (x *handler) refreshItem(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, r, goerr.Wrap(types.ErrValidationFailed, "item number must be an integer",
			goerr.V("number", chi.URLParam(r, "number"))))
		return
	}

	item, err := x.uc.RefreshItem(r.Context(), repoIDFrom(r), number)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (x *handler) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := x.uc.GetStatus(r.Context(), repoIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// listQuery holds query parameters shared by issue and pull request listings.
type listQuery struct {
	page      int
	perPage   int
	scoreType types.ScoreFamily
	level     types.Level
	search    string
	labels    []string
	state     types.ItemState
}

func parseInt(q map[string][]string, key string) (int, error) {
	v := strings.TrimSpace(first(q, key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, goerr.Wrap(types.ErrValidationFailed, "query parameter must be an integer",
			goerr.V("key", key), goerr.V("value", v))
	}
	return n, nil
}

func first(q map[string][]string, key string) string {
	if v := q[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// splitLabels accepts both "labels=a,b" and repeated "labels" parameters.
func splitLabels(values []string) []string {
	var labels []string
	for _, v := range values {
		for _, label := range strings.Split(v, ",") {
			if label = strings.TrimSpace(label); label != "" {
				labels = append(labels, label)
			}
		}
	}
	return labels
}

func parseListQuery(r *http.Request) (*listQuery, error) {
	q := r.URL.Query()

	page, err := parseInt(q, "page")
	if err != nil {
		return nil, err
	}
	perPage, err := parseInt(q, "per_page")
	if err != nil {
		return nil, err
	}

	// priority is the older name of level
	level := q.Get("level")
	if level == "" {
		level = q.Get("priority")
	}

	return &listQuery{
		page:      page,
		perPage:   perPage,
		scoreType: types.ScoreFamily(q.Get("score_type")),
		level:     types.Level(level),
		search:    q.Get("search"),
		labels:    splitLabels(q["labels"]),
		state:     types.ItemState(q.Get("state")),
	}, nil
}

func (x *handler) listIssues(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := x.uc.ListIssues(r.Context(), &model.ListIssuesInput{
		RepoID:    repoIDFrom(r),
		Page:      query.page,
		PerPage:   query.perPage,
		ScoreType: query.scoreType,
		Level:     query.level,
		IssueType: types.IssueType(r.URL.Query().Get("issue_type")),
		Search:    query.search,
		Labels:    query.labels,
		State:     query.state,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (x *handler) listPullRequests(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := x.uc.ListPullRequests(r.Context(), &model.ListPullRequestsInput{
		RepoID:    repoIDFrom(r),
		Page:      query.page,
		PerPage:   query.perPage,
		ScoreType: query.scoreType,
		Level:     query.level,
		Search:    query.search,
		Labels:    query.labels,
		State:     query.state,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (x *handler) startSentimentAnalysis(w http.ResponseWriter, r *http.Request) {
	job, err := x.uc.StartSentimentAnalysis(r.Context(), repoIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (x *handler) getMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := x.uc.GetMetrics(r.Context(), repoIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (x *handler) testAPIKey(w http.ResponseWriter, r *http.Request) {
	var cfg model.SentimentConfig
	if err := decodeBody(r, &cfg); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, x.uc.TestAPIKey(r.Context(), &cfg))
}
