package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/imkonsowa/takeout-recommender/models"
)

type RestaurantSource interface {
	List(ctx context.Context) ([]models.Restaurant, error)
}

// RestaurantsClient reads the dataset exposed by the restaurant service.
type RestaurantsClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ RestaurantSource = (*RestaurantsClient)(nil)

func NewRestaurantsClient(baseURL string) *RestaurantsClient {
	return &RestaurantsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (c *RestaurantsClient) List(ctx context.Context) ([]models.Restaurant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/restaurants", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("restaurant service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("restaurant service error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var restaurants []models.Restaurant
	if err := json.NewDecoder(resp.Body).Decode(&restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}

	return restaurants, nil
}
