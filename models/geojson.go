package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	ID         json.RawMessage        `json:"id,omitempty"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// DecodeRestaurants reads a GeoJSON feature collection (an Overpass/OSM export
// or similar) and converts every feature into a Restaurant.
func DecodeRestaurants(r io.Reader) ([]Restaurant, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode geojson: %w", err)
	}

	if fc.Type != "" && fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %s", fc.Type)
	}

	restaurants := make([]Restaurant, 0, len(fc.Features))
	for i, f := range fc.Features {
		restaurants = append(restaurants, f.toRestaurant(i))
	}

	return restaurants, nil
}

// toRestaurant never fails: a geometry go-geom can't read only costs the
// record its location.
func (f *feature) toRestaurant(index int) Restaurant {
	restaurant := Restaurant{
		Name:    stringProperty(f.Properties, "name"),
		Cuisine: stringProperty(f.Properties, "cuisine"),
		ID:      f.externalID(),
	}

	loc, err := f.location()
	if err != nil {
		slog.Warn("skipping feature geometry", "feature", index, "name", restaurant.Name, "err", err)
		return restaurant
	}
	restaurant.Location = loc

	return restaurant
}

func (f *feature) location() (*Location, error) {
	raw := bytes.TrimSpace(f.Geometry)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var g geom.T
	if err := geojson.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}

	return LocationOf(g)
}

// externalID prefers properties.id, then the OSM "@id" property, then the
// feature id. OSM ids look like "node/123".
func (f *feature) externalID() *int64 {
	if v, ok := f.Properties["id"]; ok {
		if id, ok := parseID(v); ok {
			return &id
		}
	}

	if v, ok := f.Properties["@id"]; ok {
		if id, ok := parseID(v); ok {
			return &id
		}
	}

	if len(f.ID) > 0 {
		var v interface{}
		if err := json.Unmarshal(f.ID, &v); err == nil {
			if id, ok := parseID(v); ok {
				return &id
			}
		}
	}

	return nil
}

func parseID(v interface{}) (int64, bool) {
	switch id := v.(type) {
	case float64:
		if id != math.Trunc(id) {
			return 0, false
		}
		return int64(id), true
	case string:
		if i := strings.LastIndex(id, "/"); i >= 0 {
			id = id[i+1:]
		}
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func stringProperty(props map[string]interface{}, key string) string {
	s, _ := props[key].(string)

	return s
}
