package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghpulse/pkg/infra/llm"
	"github.com/m-mizutani/ghpulse/pkg/usecase"
)

type Sentiment struct {
	workers          int
	retryDelay       time.Duration
	openAIBaseURL    string
	anthropicBaseURL string
}

func (x *Sentiment) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "sentiment-workers",
			Usage:       "Number of concurrent background sentiment analyses",
			Category:    "Sentiment",
			Value:       usecase.DefaultSentimentWorkers,
			Destination: &x.workers,
			Sources:     cli.EnvVars("GHPULSE_SENTIMENT_WORKERS"),
		},
		&cli.DurationFlag{
			Name:        "sentiment-retry-delay",
			Usage:       "Wait before a failed analysis is requested again",
			Category:    "Sentiment",
			Value:       usecase.DefaultSentimentRetryDelay,
			Destination: &x.retryDelay,
			Sources:     cli.EnvVars("GHPULSE_SENTIMENT_RETRY_DELAY"),
		},
		&cli.StringFlag{
			Name:        "openai-base-url",
			Usage:       "OpenAI compatible API base URL",
			Category:    "Sentiment",
			Destination: &x.openAIBaseURL,
			Sources:     cli.EnvVars("GHPULSE_OPENAI_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "anthropic-base-url",
			Usage:       "Anthropic API base URL",
			Category:    "Sentiment",
			Destination: &x.anthropicBaseURL,
			Sources:     cli.EnvVars("GHPULSE_ANTHROPIC_BASE_URL"),
		},
	}
}

func (x *Sentiment) NewFactory() *llm.Factory {
	var options []llm.FactoryOption
	if x.openAIBaseURL != "" {
		options = append(options, llm.WithOpenAIBaseURL(x.openAIBaseURL))
	}
	if x.anthropicBaseURL != "" {
		options = append(options, llm.WithAnthropicBaseURL(x.anthropicBaseURL))
	}
	return llm.NewFactory(options...)
}

func (x *Sentiment) UseCaseOptions() []usecase.Option {
	return []usecase.Option{
		usecase.WithSentimentWorkers(x.workers),
		usecase.WithSentimentRetryDelay(x.retryDelay),
	}
}

func (x *Sentiment) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("workers", x.workers),
		slog.Duration("retryDelay", x.retryDelay),
		slog.String("openAIBaseURL", x.openAIBaseURL),
		slog.String("anthropicBaseURL", x.anthropicBaseURL),
	)
}
