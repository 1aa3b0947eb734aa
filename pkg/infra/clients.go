package infra

import (
	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/infra/llm"
	"github.com/m-mizutani/ghpulse/pkg/repository/memory"
)

type Clients struct {
	github     interfaces.GitHub
	repository interfaces.Repository
	bqClient   interfaces.BigQuery
	llm        interfaces.LLMFactory
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		repository: memory.New(),
		llm:        llm.NewFactory(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

// GitHub returns nil when no GitHub credential is configured. Local repositories still work without it.
func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) Repository() interfaces.Repository {
	return x.repository
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) LLM() interfaces.LLMFactory {
	return x.llm
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithRepository(repo interfaces.Repository) Option {
	return func(x *Clients) {
		x.repository = repo
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithLLM(factory interfaces.LLMFactory) Option {
	return func(x *Clients) {
		x.llm = factory
	}
}
