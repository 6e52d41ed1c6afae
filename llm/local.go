package llm

import (
	"context"
	"fmt"

	"github.com/imkonsowa/takeout-recommender/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Local runs a locally served model. Inference is funnelled through a
// bounded pool so at most `workers` generations run at once.
type Local struct {
	model   llms.Model
	pool    *Pool
	options []llms.CallOption
}

var _ Client = (*Local)(nil)

func NewOllama(cfg config.Ollama) (*ollama.LLM, error) {
	model, err := ollama.New(
		ollama.WithServerURL(cfg.Address()),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return model, nil
}

func NewLocal(ctx context.Context, model llms.Model, workers, queueSize int, options ...llms.CallOption) *Local {
	l := &Local{
		model:   model,
		options: options,
	}
	l.pool = NewPool(ctx, workers, queueSize, l.generate)

	return l
}

func (l *Local) generate(ctx context.Context, prompt string) (string, error) {
	output, err := llms.GenerateFromSinglePrompt(ctx, l.model, prompt, l.options...)
	if err != nil {
		return "", fmt.Errorf("local generation failed: %w", err)
	}

	return output, nil
}

func (l *Local) Generate(ctx context.Context, prompt string) (string, error) {
	return l.pool.Submit(ctx, prompt)
}

func (l *Local) Close() error {
	l.pool.Stop()

	return nil
}
