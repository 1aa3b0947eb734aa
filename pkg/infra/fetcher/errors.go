package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// RateLimitError is returned by Transport when GitHub rejects a request because of its rate limit.
type RateLimitError struct {
	StatusCode int
	ResetAt    time.Time
}

func (x *RateLimitError) Error() string {
	if x.ResetAt.IsZero() {
		return fmt.Sprintf("rate limited (status %d)", x.StatusCode)
	}
	return fmt.Sprintf("rate limited (status %d) until %s", x.StatusCode, x.ResetAt.Format(time.RFC3339))
}

// StatusError is returned by Transport for unsuccessful responses other than rate limiting.
type StatusError struct {
	StatusCode int
	Body       string
}

func (x *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", x.StatusCode, x.Body)
}

// Temporary reports whether retrying the same request may succeed.
func (x *StatusError) Temporary() bool {
	return x.StatusCode >= 500
}

type errorKind int

const (
	kindNonRetryable errorKind = iota
	kindTransient
	kindRateLimited
)

func classify(err error) (errorKind, time.Time) {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return kindRateLimited, rle.ResetAt
	}

	var se *StatusError
	if errors.As(err, &se) {
		if se.Temporary() {
			return kindTransient, time.Time{}
		}
		return kindNonRetryable, time.Time{}
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return kindTransient, time.Time{}
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return kindTransient, time.Time{}
	}

	// GraphQL reports an exhausted quota as a query error with type RATE_LIMITED
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limited") {
		return kindRateLimited, time.Time{}
	}

	return kindNonRetryable, time.Time{}
}
