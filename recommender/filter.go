package main

import (
	"strings"

	"github.com/imkonsowa/takeout-recommender/models"
)

// FilterByCuisine keeps, in their original order, the restaurants whose
// cuisine contains any of the preferences (case-insensitive). A restaurant is
// included at most once and an empty cuisine never matches.
func FilterByCuisine(restaurants []models.Restaurant, preferences []string) []models.Restaurant {
	terms := make([]string, 0, len(preferences))
	for _, p := range preferences {
		if p = strings.TrimSpace(p); p != "" {
			terms = append(terms, strings.ToLower(p))
		}
	}

	var matched []models.Restaurant
	for _, restaurant := range restaurants {
		cuisine := strings.ToLower(restaurant.Cuisine)
		if cuisine == "" {
			continue
		}

		for _, term := range terms {
			if strings.Contains(cuisine, term) {
				matched = append(matched, restaurant)
				break
			}
		}
	}

	return matched
}

// Candidates is FilterByCuisine truncated to MaxCandidates.
func Candidates(restaurants []models.Restaurant, preferences []string) []models.Restaurant {
	matched := FilterByCuisine(restaurants, preferences)
	if len(matched) > MaxCandidates {
		matched = matched[:MaxCandidates]
	}

	return matched
}

func names(restaurants []models.Restaurant) []string {
	out := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, r.Name)
	}

	return out
}
