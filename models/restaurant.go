package models

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

type Location struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func NewGeoPoint(lng, lat float64) Location {
	return Location{
		Lon: lng,
		Lat: lat,
	}
}

// LocationOf returns the centre of the geometry's bounds, which is the point
// itself for point features. Empty geometries have no location.
func LocationOf(g geom.T) (*Location, error) {
	if g == nil {
		return nil, nil
	}

	bounds := g.Bounds()
	if bounds == nil || bounds.IsEmpty() {
		return nil, nil
	}

	if g.Stride() < 2 {
		return nil, fmt.Errorf("geometry has fewer than 2 dimensions")
	}

	loc := NewGeoPoint(
		(bounds.Min(0)+bounds.Max(0))/2,
		(bounds.Min(1)+bounds.Max(1))/2,
	)

	return &loc, nil
}

type Restaurant struct {
	ID       *int64    `json:"id,omitempty"`
	Name     string    `json:"name"`
	Cuisine  string    `json:"cuisine"`
	Location *Location `json:"location,omitempty"`
}

// Label renders the restaurant the way it is offered to the model.
func (r *Restaurant) Label() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.Cuisine)
}

func (r *Restaurant) HasID(id int64) bool {
	return r.ID != nil && *r.ID == id
}
