package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imkonsowa/takeout-recommender/config"
	"github.com/tmc/langchaingo/llms"
)

const DefaultMaxTokens = 200

const DiagnosticPrompt = "Write a one-sentence bedtime story about a unicorn."

// Client turns a prompt into model output. Each call is a single attempt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// New builds the client selected by cfg.LLM.Provider. A hosted client without
// an API key fails with ErrMissingAPIKey.
func New(ctx context.Context, cfg *config.Config) (Client, error) {
	options := CallOptions(cfg.LLM)

	switch cfg.LLM.Provider {
	case config.ProviderLocal:
		model, err := NewOllama(cfg.Ollama)
		if err != nil {
			return nil, err
		}
		slog.Info("using local llm", "server", cfg.Ollama.Address(), "model", cfg.Ollama.Model, "workers", cfg.LLM.Workers)

		return NewLocal(ctx, model, cfg.LLM.Workers, cfg.LLM.QueueSize, options...), nil
	case config.ProviderHosted:
		model, err := NewOpenAI(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		slog.Info("using hosted llm", "model", cfg.OpenAI.Model)

		return NewHosted(model, options...), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// CallOptions passes the configured sampling settings through unchanged; a
// temperature of 0 means greedy decoding.
func CallOptions(cfg config.LLM) []llms.CallOption {
	maxTokens := cfg.MaxTokens
	if maxTokens < 1 {
		maxTokens = DefaultMaxTokens
	}

	return []llms.CallOption{
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(cfg.Temperature),
	}
}
