package fetcher

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
	"github.com/m-mizutani/ghpulse/pkg/utils/safe"
)

const maxErrorBody = 1024

// Transport turns GitHub responses into errors the Client can classify and reports an exhausted quota of
// successful responses to the Client.
type Transport struct {
	base   http.RoundTripper
	client *Client
}

// Transport wraps base so that responses are classified for this client.
func (x *Client) Transport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, client: x}
}

func (x *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := x.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	now := x.client.clock.Now()
	resetAt := parseResetAt(resp.Header, now)

	logging.From(req.Context()).Log(req.Context(), logging.LevelTrace, "GitHub API response",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.String("remaining", resp.Header.Get("X-RateLimit-Remaining")),
	)

	if resp.StatusCode < 400 {
		if remaining, ok := parseRemaining(resp.Header); ok {
			x.client.ObserveQuota(remaining, resetAt)
		}
		return resp, nil
	}

	body := readErrorBody(resp)
	if isRateLimited(resp, body) {
		return nil, &RateLimitError{StatusCode: resp.StatusCode, ResetAt: resetAt}
	}
	return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
}

func isRateLimited(resp *http.Response, body string) bool {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		if remaining, ok := parseRemaining(resp.Header); ok && remaining == 0 {
			return true
		}
		if resp.Header.Get("Retry-After") != "" {
			return true
		}
		return strings.Contains(strings.ToLower(body), "rate limit")
	}
	return false
}

func readErrorBody(resp *http.Response) string {
	defer safe.Close(resp.Body)
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return string(raw)
}

func parseRemaining(h http.Header) (int, bool) {
	v := h.Get("X-RateLimit-Remaining")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseResetAt prefers Retry-After (seconds) over X-RateLimit-Reset (epoch seconds).
func parseResetAt(h http.Header, now time.Time) time.Time {
	if v := h.Get("Retry-After"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return now.Add(time.Duration(sec) * time.Second)
		}
	}
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(epoch, 0)
		}
	}
	return time.Time{}
}
