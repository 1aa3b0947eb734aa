package llm

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/m-mizutani/ghpulse/pkg/domain/model"
)

type openAI struct {
	client *openai.Client
	model  string
}

func newOpenAI(cfg model.SentimentConfig, httpClient *http.Client, baseURL string) *openAI {
	c := openai.DefaultConfig(string(cfg.APIKey))
	c.HTTPClient = httpClient
	if baseURL != "" {
		c.BaseURL = baseURL
	}

	m := cfg.Model
	if m == "" {
		m = DefaultOpenAIModel
	}

	return &openAI{
		client: openai.NewClientWithConfig(c),
		model:  m,
	}
}

func (x *openAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := x.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: x.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   16,
		Temperature: 0,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to create OpenAI chat completion", goerr.V("model", x.model))
	}
	if len(resp.Choices) == 0 {
		return "", goerr.New("OpenAI returned no choice", goerr.V("model", x.model))
	}

	return resp.Choices[0].Message.Content, nil
}
