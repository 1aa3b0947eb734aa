package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption     = goerr.New("invalid option")
	ErrValidationFailed  = goerr.New("validation failed")
	ErrInvalidGitHubData = goerr.New("invalid GitHub data")

	// Fetch client failures
	ErrRateLimited    = goerr.New("rate limit retries exhausted")
	ErrRetryExhausted = goerr.New("retry attempts exhausted")
	ErrNonRetryable   = goerr.New("non-retryable request failure")

	ErrNotGitHubRepository = goerr.New("repository is not hosted on GitHub")
	ErrSentimentDisabled   = goerr.New("sentiment analysis is not configured")
)
