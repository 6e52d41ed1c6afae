package main

import (
	"strings"

	"github.com/imkonsowa/takeout-recommender/models"
)

// MaxCandidates caps how many matching restaurants are offered to the model.
const MaxCandidates = 5

var JSONInstruction = ` Respond only with a JSON array of exactly 3 objects, each with a "name" and a "description" string field, and no other text.`

// BuildPrompt states the preferences, asks for exactly three takeout
// recommendations and, when restaurantContext is set, restricts the model to
// the listed restaurants.
func BuildPrompt(preferences []string, restaurantContext string) string {
	var prompt strings.Builder

	prompt.WriteString("User preferences: " + strings.Join(preferences, ", ") + ". ")
	prompt.WriteString("Based on these preferences, provide a list of 3 takeout restaurant recommendations, ")
	prompt.WriteString("each with a brief description.")

	if restaurantContext != "" {
		prompt.WriteString(" Only recommend restaurants from this list: " + restaurantContext + ".")
	}

	return prompt.String()
}

// RestaurantContext renders at most MaxCandidates restaurants as
// "name (cuisine)" pairs separated by "; ".
func RestaurantContext(candidates []models.Restaurant) string {
	labels := make([]string, 0, MaxCandidates)
	for i := range candidates {
		if i == MaxCandidates {
			break
		}
		labels = append(labels, candidates[i].Label())
	}

	return strings.Join(labels, "; ")
}
