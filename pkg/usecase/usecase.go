package usecase

import (
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/infra"
)

const (
	DefaultSentimentWorkers    = 4
	DefaultSentimentRetryDelay = 30 * time.Minute
)

type UseCase struct {
	clients *infra.Clients
	jobs    *jobRunner

	sentimentPool       *errgroup.Group
	sentimentFlight     singleflight.Group
	sentimentRetryDelay time.Duration
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithSentimentWorkers limits concurrent background sentiment analyses started by list reads.
func WithSentimentWorkers(n int) Option {
	return func(x *UseCase) {
		x.sentimentPool.SetLimit(n)
	}
}

// WithSentimentRetryDelay sets how long a failed analysis is cached before it is tried again.
func WithSentimentRetryDelay(d time.Duration) Option {
	return func(x *UseCase) {
		x.sentimentRetryDelay = d
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:             clients,
		jobs:                newJobRunner(),
		sentimentPool:       &errgroup.Group{},
		sentimentRetryDelay: DefaultSentimentRetryDelay,
	}
	uc.sentimentPool.SetLimit(DefaultSentimentWorkers)

	for _, opt := range options {
		opt(uc)
	}
	return uc
}

// Wait blocks until every background job and sentiment analysis has finished.
func (x *UseCase) Wait() {
	x.jobs.wait()
	_ = x.sentimentPool.Wait()
}
