package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/imkonsowa/takeout-recommender/models"
)

var (
	ErrDatasetUnavailable = errors.New("restaurant data not available")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// Catalog is the restaurant dataset loaded once at startup. It is never
// mutated afterwards, so handlers share it without locking.
type Catalog struct {
	restaurants []models.Restaurant
	loaded      bool
}

func NewCatalog(restaurants []models.Restaurant) *Catalog {
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}

	return &Catalog{
		restaurants: restaurants,
		loaded:      true,
	}
}

// LoadCatalog reads the dataset file. A failure is logged and yields an
// unavailable catalog instead of an error so the service can still start.
func LoadCatalog(path string) *Catalog {
	restaurants, err := readDataset(path)
	if err != nil {
		slog.Error("failed to load restaurant data", "path", path, "err", err)
		return &Catalog{}
	}

	slog.Info("loaded restaurant data", "path", path, "count", len(restaurants))

	return NewCatalog(restaurants)
}

func readDataset(path string) ([]models.Restaurant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	restaurants, err := models.DecodeRestaurants(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return restaurants, nil
}

func (c *Catalog) List() ([]models.Restaurant, error) {
	if !c.loaded {
		return nil, ErrDatasetUnavailable
	}

	return c.restaurants, nil
}

func (c *Catalog) Get(id int64) (*models.Restaurant, error) {
	if !c.loaded {
		return nil, ErrDatasetUnavailable
	}

	for i := range c.restaurants {
		if c.restaurants[i].HasID(id) {
			return &c.restaurants[i], nil
		}
	}

	return nil, ErrRestaurantNotFound
}
