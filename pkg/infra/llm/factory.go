// Package llm provides the language model backends used by sentiment analysis.
package llm

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/model"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"

	DefaultTimeout = 30 * time.Second
)

// Factory builds a provider for each repository's sentiment settings.
type Factory struct {
	httpClient       *http.Client
	openAIBaseURL    string
	anthropicBaseURL string
}

var _ interfaces.LLMFactory = (*Factory)(nil)

type FactoryOption func(*Factory)

func WithHTTPClient(client *http.Client) FactoryOption {
	return func(x *Factory) {
		x.httpClient = client
	}
}

// WithOpenAIBaseURL replaces the OpenAI API base URL, e.g. "https://api.openai.com/v1".
func WithOpenAIBaseURL(url string) FactoryOption {
	return func(x *Factory) {
		x.openAIBaseURL = url
	}
}

// WithAnthropicBaseURL replaces the Anthropic API base URL, e.g. "https://api.anthropic.com/".
func WithAnthropicBaseURL(url string) FactoryOption {
	return func(x *Factory) {
		x.anthropicBaseURL = url
	}
}

func NewFactory(options ...FactoryOption) *Factory {
	f := &Factory{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func (x *Factory) NewProvider(cfg model.SentimentConfig) (interfaces.LLMProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case types.SentimentProviderOpenAI:
		return newOpenAI(cfg, x.httpClient, x.openAIBaseURL), nil
	case types.SentimentProviderAnthropic:
		return newAnthropic(cfg, x.httpClient, x.anthropicBaseURL), nil
	default:
		return nil, goerr.Wrap(types.ErrValidationFailed, "unsupported sentiment provider", goerr.V("provider", cfg.Provider))
	}
}
