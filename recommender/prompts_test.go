package main

import (
	"testing"

	"github.com/imkonsowa/takeout-recommender/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildPromptWithoutContext(t *testing.T) {
	prompt := BuildPrompt([]string{"vegan", "spicy"}, "")

	assert.Equal(t,
		"User preferences: vegan, spicy. Based on these preferences, provide a list of 3 takeout restaurant recommendations, each with a brief description.",
		prompt,
	)
	assert.NotContains(t, prompt, "Only recommend")
}

func TestBuildPromptWithContext(t *testing.T) {
	prompt := BuildPrompt([]string{"vegan", "spicy"}, "Green Leaf (vegan); Spice Hut (indian, spicy)")

	assert.Contains(t, prompt, "vegan")
	assert.Contains(t, prompt, "spicy")
	assert.Contains(t, prompt, "3 takeout restaurant recommendations")
	assert.Contains(t, prompt, "Green Leaf")
	assert.Contains(t, prompt, "Spice Hut")
	assert.Contains(t, prompt, "Only recommend restaurants from this list: Green Leaf (vegan); Spice Hut (indian, spicy).")
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	prefs := []string{"thai", "cheap"}
	assert.Equal(t, BuildPrompt(prefs, "X (thai)"), BuildPrompt(prefs, "X (thai)"))
}

func TestRestaurantContextCapsCandidates(t *testing.T) {
	var candidates []models.Restaurant
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		candidates = append(candidates, models.Restaurant{Name: name, Cuisine: "pizza"})
	}

	assert.Equal(t, "A (pizza); B (pizza); C (pizza); D (pizza); E (pizza)", RestaurantContext(candidates))
	assert.Empty(t, RestaurantContext(nil))
}
