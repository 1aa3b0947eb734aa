package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
)

type anthropicProvider struct {
	client anthropic.Client
	model  string
}

func newAnthropic(cfg model.SentimentConfig, httpClient *http.Client, baseURL string) *anthropicProvider {
	options := []option.RequestOption{
		option.WithAPIKey(string(cfg.APIKey)),
		option.WithHTTPClient(httpClient),
		// failed records are retried by the sentiment scheduler
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	m := cfg.Model
	if m == "" {
		m = DefaultAnthropicModel
	}

	return &anthropicProvider{
		client: anthropic.NewClient(options...),
		model:  m,
	}
}

func (x *anthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := x.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(x.model),
		MaxTokens: 16,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", goerr.Wrap(err, "Anthropic API returned an error",
				goerr.V("status", apiErr.StatusCode), goerr.V("model", x.model))
		}
		return "", goerr.Wrap(err, "failed to send Anthropic request", goerr.V("model", x.model))
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", goerr.New("Anthropic returned no text content", goerr.V("model", x.model))
}
