// Package fetcher serializes every outbound GitHub API call of the process.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultMinInterval         = 500 * time.Millisecond
	DefaultCooldown            = 60 * time.Second
	DefaultMaxAttempts         = 4
	DefaultMaxRateLimitRetries = 5
	DefaultRequestTimeout      = 30 * time.Second
)

// Client runs one request at a time in FIFO order. It keeps a minimum interval between requests, waits out
// rate limit cooldowns and retries transient failures with exponential backoff.
type Client struct {
	sem   *semaphore.Weighted
	clock Clock

	minInterval         time.Duration
	cooldown            time.Duration
	maxAttempts         int
	maxRateLimitRetries int
	requestTimeout      time.Duration
	newBackOff          func() backoff.BackOff

	mu            sync.Mutex
	lastRequestAt time.Time
	cooldownUntil time.Time
}

type Option func(*Client)

func WithMinInterval(d time.Duration) Option {
	return func(x *Client) {
		x.minInterval = d
	}
}

// WithCooldown sets the wait applied after a rate limit response without a reset hint.
func WithCooldown(d time.Duration) Option {
	return func(x *Client) {
		x.cooldown = d
	}
}

func WithMaxAttempts(n int) Option {
	return func(x *Client) {
		x.maxAttempts = n
	}
}

func WithMaxRateLimitRetries(n int) Option {
	return func(x *Client) {
		x.maxRateLimitRetries = n
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(x *Client) {
		x.requestTimeout = d
	}
}

func WithClock(clock Clock) Option {
	return func(x *Client) {
		x.clock = clock
	}
}

// WithBackOff replaces the retry interval policy of transient failures.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(x *Client) {
		x.newBackOff = f
	}
}

func New(options ...Option) *Client {
	client := &Client{
		sem:                 semaphore.NewWeighted(1),
		clock:               systemClock{},
		minInterval:         DefaultMinInterval,
		cooldown:            DefaultCooldown,
		maxAttempts:         DefaultMaxAttempts,
		maxRateLimitRetries: DefaultMaxRateLimitRetries,
		requestTimeout:      DefaultRequestTimeout,
		newBackOff:          defaultBackOff,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// Do runs fn once the client is free, the cooldown has elapsed and the minimum interval has passed.
// fn is called again after a rate limit cooldown or a transient failure.
func (x *Client) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := x.sem.Acquire(ctx, 1); err != nil {
		return goerr.Wrap(err, "canceled while waiting for fetch slot")
	}
	defer x.sem.Release(1)

	bo := x.newBackOff()
	bo.Reset()

	var attempts, rateLimited int
	for {
		if err := x.waitTurn(ctx); err != nil {
			return err
		}

		err := x.call(ctx, fn)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return goerr.Wrap(ctx.Err(), "canceled during request", goerr.V("last_error", err.Error()))
		}

		kind, resetAt := classify(err)
		switch kind {
		case kindRateLimited:
			rateLimited++
			until := x.enterCooldown(resetAt)
			logging.From(ctx).Warn("GitHub rate limit reached",
				slog.Time("cooldown_until", until),
				slog.Int("retry", rateLimited),
			)
			if rateLimited > x.maxRateLimitRetries {
				return goerr.Wrap(fmt.Errorf("%w: %w", types.ErrRateLimited, err), "giving up request",
					goerr.V("retries", rateLimited-1),
				)
			}

		case kindTransient:
			attempts++
			if attempts >= x.maxAttempts {
				return goerr.Wrap(fmt.Errorf("%w: %w", types.ErrRetryExhausted, err), "giving up request",
					goerr.V("attempts", attempts),
				)
			}
			wait := bo.NextBackOff()
			if wait == backoff.Stop {
				return goerr.Wrap(fmt.Errorf("%w: %w", types.ErrRetryExhausted, err), "giving up request",
					goerr.V("attempts", attempts),
				)
			}
			logging.From(ctx).Warn("retrying GitHub request",
				slog.Any("error", err),
				slog.Int("attempt", attempts),
				slog.Duration("wait", wait),
			)
			if err := x.sleep(ctx, wait); err != nil {
				return err
			}

		default:
			return goerr.Wrap(fmt.Errorf("%w: %w", types.ErrNonRetryable, err), "GitHub request failed")
		}
	}
}

func (x *Client) call(ctx context.Context, fn func(ctx context.Context) error) error {
	x.mu.Lock()
	x.lastRequestAt = x.clock.Now()
	x.mu.Unlock()

	if x.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.requestTimeout)
		defer cancel()
	}

	return fn(ctx)
}

func (x *Client) waitTurn(ctx context.Context) error {
	x.mu.Lock()
	ready := x.lastRequestAt.Add(x.minInterval)
	if x.lastRequestAt.IsZero() {
		ready = time.Time{}
	}
	if x.cooldownUntil.After(ready) {
		ready = x.cooldownUntil
	}
	x.mu.Unlock()

	if wait := ready.Sub(x.clock.Now()); wait > 0 {
		return x.sleep(ctx, wait)
	}
	return nil
}

func (x *Client) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "canceled while waiting")
	case <-x.clock.After(d):
		return nil
	}
}

// enterCooldown blocks every caller until resetAt, or for the fallback cooldown when resetAt is unknown.
func (x *Client) enterCooldown(resetAt time.Time) time.Time {
	now := x.clock.Now()
	if !resetAt.After(now) {
		resetAt = now.Add(x.cooldown)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if resetAt.After(x.cooldownUntil) {
		x.cooldownUntil = resetAt
	}
	return x.cooldownUntil
}

// ObserveQuota records the remaining quota reported by the API. An exhausted quota starts a cooldown
// that ends at resetAt.
func (x *Client) ObserveQuota(remaining int, resetAt time.Time) {
	if remaining > 0 {
		return
	}
	x.enterCooldown(resetAt)
}

// CooldownUntil returns the end of the current cooldown. It is zero when no cooldown was entered.
func (x *Client) CooldownUntil() time.Time {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.cooldownUntil
}
