package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imkonsowa/takeout-recommender/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")

const SystemPrompt = "You are a helpful assistant."

// Hosted calls a remote chat model directly from the request goroutine.
type Hosted struct {
	model   llms.Model
	options []llms.CallOption
}

var _ Client = (*Hosted)(nil)

func NewOpenAI(cfg config.OpenAI) (*openai.LLM, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}

	return model, nil
}

func NewHosted(model llms.Model, options ...llms.CallOption) *Hosted {
	return &Hosted{
		model:   model,
		options: options,
	}
}

func (h *Hosted) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(SystemPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	content, err := h.model.GenerateContent(ctx, messages, h.options...)
	if err != nil {
		return "", fmt.Errorf("hosted generation failed: %w", err)
	}
	if content == nil || len(content.Choices) == 0 {
		return "", fmt.Errorf("hosted generation returned no choices")
	}

	return strings.TrimSpace(content.Choices[0].Content), nil
}

func (h *Hosted) Close() error {
	return nil
}
