package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

const MaxRecommendations = 3

type structuredRecommendation struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

var defaultRecommendations = [MaxRecommendations][2]string{
	{"Green Garden Bistro", "Fresh salads and grain bowls with plenty of vegetarian options."},
	{"Spice Route Kitchen", "Bold curries and grilled dishes with adjustable heat."},
	{"Urban Noodle House", "Quick stir-fried noodles and dumplings that travel well."},
}

func formatRecommendation(name, description string) string {
	return name + ": " + description
}

// DefaultRecommendations is returned whenever structured output can't be used.
func DefaultRecommendations() []string {
	out := make([]string, 0, len(defaultRecommendations))
	for _, r := range defaultRecommendations {
		out = append(out, formatRecommendation(r[0], r[1]))
	}

	return out
}

// ParseStructured expects a JSON array of exactly three {name, description}
// objects and renders each as "name: description". Anything else yields
// DefaultRecommendations.
func ParseStructured(raw string) []string {
	recommendations, err := decodeStructured(raw)
	if err != nil {
		slog.Warn("unusable structured llm output, using defaults", "err", err)
		return DefaultRecommendations()
	}

	return recommendations
}

func decodeStructured(raw string) ([]string, error) {
	var parsed []structuredRecommendation
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	if len(parsed) != MaxRecommendations {
		return nil, fmt.Errorf("expected %d recommendations, got %d", MaxRecommendations, len(parsed))
	}

	out := make([]string, 0, len(parsed))
	for i, r := range parsed {
		if r.Name == nil || r.Description == nil {
			return nil, fmt.Errorf("recommendation %d is missing name or description", i)
		}
		out = append(out, formatRecommendation(*r.Name, *r.Description))
	}

	return out, nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	return strings.TrimSpace(content)
}

// ParseHeuristic pulls up to three recommendations out of free text by looking
// for the known restaurant names. Lines are tried first; if they give fewer
// than three hits, sentences are tried next. Without any hit the trimmed raw
// output is returned as the only element.
func ParseHeuristic(raw string, knownNames []string) []string {
	lowered := make([]string, 0, len(knownNames))
	for _, name := range knownNames {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			lowered = append(lowered, name)
		}
	}

	matches := make([]string, 0, MaxRecommendations)
	matches = collectMatches(matches, strings.Split(raw, "\n"), lowered)
	if len(matches) < MaxRecommendations {
		matches = collectMatches(matches, splitSentences(raw), lowered)
	}

	if len(matches) == 0 {
		return []string{strings.TrimSpace(raw)}
	}

	return matches
}

func collectMatches(matches, segments, names []string) []string {
	for _, segment := range segments {
		if len(matches) >= MaxRecommendations {
			break
		}

		text := strings.TrimSpace(segment)
		if text == "" || !mentionsAny(strings.ToLower(text), names) {
			continue
		}
		if slices.Contains(matches, text) {
			continue
		}

		matches = append(matches, text)
	}

	return matches
}

func mentionsAny(text string, names []string) bool {
	for _, name := range names {
		if strings.Contains(text, name) {
			return true
		}
	}

	return false
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// ParseLines returns the first three non-empty lines, for prompts built
// without any candidate restaurants.
func ParseLines(raw string) []string {
	lines := make([]string, 0, MaxRecommendations)
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
		if len(lines) == MaxRecommendations {
			break
		}
	}

	if len(lines) == 0 {
		return []string{strings.TrimSpace(raw)}
	}

	return lines
}
