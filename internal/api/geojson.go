package api

import (
	"github.com/disasterwatch/italia/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// seismicGeoJSON projects earthquake events as a point layer for map clients.
func seismicGeoJSON(events []models.SeismicEvent) FeatureCollection {
	features := make([]Feature, 0, len(events))

	for _, e := range events {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{e.Longitude, e.Latitude},
			},
			Properties: map[string]any{
				"id":         e.ID,
				"magnitude":  e.Magnitude,
				"depth":      e.Depth,
				"location":   e.Location,
				"risk_level": e.RiskLevel,
				"source":     e.Source,
				"timestamp":  e.Timestamp,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
