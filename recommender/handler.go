package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imkonsowa/takeout-recommender/config"
	"github.com/imkonsowa/takeout-recommender/llm"
	"github.com/imkonsowa/takeout-recommender/models"
)

type Handler struct {
	llm         llm.Client
	restaurants RestaurantSource
	outputMode  string
}

// NewHandler wires the recommendation flow. restaurants may be nil, in which
// case prompts are built without candidates.
func NewHandler(client llm.Client, restaurants RestaurantSource, outputMode string) *Handler {
	if outputMode == "" {
		outputMode = config.OutputModeText
	}

	return &Handler{
		llm:         client,
		restaurants: restaurants,
		outputMode:  outputMode,
	}
}

func (h *Handler) Recommend(ctx context.Context, preferences []string) ([]string, error) {
	candidates := h.candidates(ctx, preferences)

	prompt := BuildPrompt(preferences, RestaurantContext(candidates))
	if h.outputMode == config.OutputModeJSON {
		prompt += JSONInstruction
	}
	slog.Info("llm prompt", "prompt", prompt)

	output, err := h.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}
	slog.Info("llm raw output", "output", output)

	switch {
	case h.outputMode == config.OutputModeJSON:
		return ParseStructured(output), nil
	case len(candidates) > 0:
		return ParseHeuristic(output, names(candidates)), nil
	default:
		return ParseLines(output), nil
	}
}

// candidates never fails: an unreachable restaurant service only means the
// prompt goes out without a restaurant list.
func (h *Handler) candidates(ctx context.Context, preferences []string) []models.Restaurant {
	if h.restaurants == nil {
		return nil
	}

	restaurants, err := h.restaurants.List(ctx)
	if err != nil {
		slog.Warn("failed to fetch restaurants, continuing without candidates", "err", err)
		return nil
	}

	candidates := Candidates(restaurants, preferences)
	slog.Info("restaurant candidates", "available", len(restaurants), "matched", len(candidates))

	return candidates
}

func (h *Handler) TestLLM(ctx context.Context) (*TestLLMResponse, error) {
	output, err := h.llm.Generate(ctx, llm.DiagnosticPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate test output: %w", err)
	}

	return &TestLLMResponse{
		Prompt: llm.DiagnosticPrompt,
		Output: output,
	}, nil
}
