package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/repository"
	"github.com/m-mizutani/ghpulse/pkg/utils/errutil"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
	// background work started by handlers
	wg *sync.WaitGroup
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to encode response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, types.ErrValidationFailed),
		errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, types.ErrNotGitHubRepository),
		errors.Is(err, types.ErrSentimentDisabled):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code. Only unexpected errors are reported.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		errutil.HandleError(r.Context(), "request failed", err)
	} else {
		logging.From(r.Context()).Info("request rejected", slog.Int("status_code", code), slog.Any("error", err))
	}
	writeJSON(w, code, &errorResponse{Error: err.Error()})
}

type config struct {
	webhookSecret types.GitHubWebhookSecret
}

type Option func(*config)

func WithWebhookSecret(secret types.GitHubWebhookSecret) Option {
	return func(cfg *config) {
		cfg.webhookSecret = secret
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	h := &handler{uc: uc}
	wg := &sync.WaitGroup{}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/sentiment/test", h.testAPIKey)

		r.Route("/repos", func(r chi.Router) {
			r.Get("/", h.listRepositories)
			r.Post("/", h.addRepository)

			r.Route("/{owner}/{repo}", func(r chi.Router) {
				r.Get("/", h.getRepository)
				r.Delete("/", h.deleteRepository)
				r.Put("/settings", h.updateSettings)
				r.Post("/fetch", h.startFetch)
				r.Post("/refresh", h.refresh)
				r.Post("/items/{number}/refresh", h.refreshItem)
				r.Get("/status", h.getStatus)
				r.Get("/issues", h.listIssues)
				r.Get("/prs", h.listPullRequests)
				r.Post("/sentiment", h.startSentimentAnalysis)
				r.Get("/metrics", h.getMetrics)
			})
		})
	})

	r.Route("/webhook", func(r chi.Router) {
		r.Post("/github", func(w http.ResponseWriter, r *http.Request) {
			target, err := validateGitHubEvent(r, cfg.webhookSecret)
			if err != nil {
				errutil.HandleError(r.Context(), "fail to validate GitHub webhook event", err)
				safeWrite(w, http.StatusBadRequest, []byte(err.Error()))
				return
			}

			if target == nil {
				safeWrite(w, http.StatusOK, []byte(`{"status":"ok","message":"event ignored"}`))
				return
			}

			// The request context is cancelled once the response is sent
			bgCtx := logging.Detach(r.Context())
			wg.Add(1)
			go func() {
				defer wg.Done()
				refreshWebhookItem(bgCtx, uc, target)
			}()

			safeWrite(w, http.StatusAccepted, []byte(`{"status":"accepted","message":"item refresh enqueued"}`))
		})
	})

	return &Server{
		mux: r,
		wg:  wg,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

// Wait blocks until item refreshes started by webhook events finish.
func (x *Server) Wait() {
	x.wg.Wait()
}
