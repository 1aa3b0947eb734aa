package types

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
)

type SentimentProvider string

const (
	SentimentProviderOpenAI    SentimentProvider = "openai"
	SentimentProviderAnthropic SentimentProvider = "anthropic"
)

func (x SentimentProvider) Validate() error {
	switch x {
	case SentimentProviderOpenAI, SentimentProviderAnthropic:
		return nil
	}
	return goerr.Wrap(ErrValidationFailed, "unknown sentiment provider", goerr.V("provider", x))
}

type APIKey string

func (x APIKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x APIKey) String() string {
	return "***********"
}

// SentimentMarker tells a reader why sentiment did or did not contribute to a score.
type SentimentMarker string

const (
	SentimentDisabled    SentimentMarker = "disabled"
	SentimentPending     SentimentMarker = "pending"
	SentimentAvailable   SentimentMarker = "available"
	SentimentUnavailable SentimentMarker = "unavailable"
)

type SentimentStatus string

const (
	SentimentStatusOK     SentimentStatus = "ok"
	SentimentStatusFailed SentimentStatus = "failed"
)
