package models

import "time"

type EventKind string

const (
	KindSeismic EventKind = "seismic"
	KindFlood   EventKind = "flood"
	KindHeat    EventKind = "heatwave"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SeismicEvent is one earthquake record from the seismic feed.
type SeismicEvent struct {
	ID        string    `json:"id"`
	Magnitude float64   `json:"magnitude"`
	Depth     float64   `json:"depth"` // km
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	RiskLevel RiskLevel `json:"risk_level"`
}

func (e SeismicEvent) Coordinates() Coordinates {
	return Coordinates{Latitude: e.Latitude, Longitude: e.Longitude}
}

// FloodAlert is one active flood warning for a river basin or coastal area.
type FloodAlert struct {
	ID                 string     `json:"id"`
	Region             string     `json:"region"`
	RiskLevel          RiskLevel  `json:"risk_level"`
	RiverName          string     `json:"river_name,omitempty"`
	WaterLevel         float64    `json:"water_level,omitempty"` // meters
	PredictedPeak      *time.Time `json:"predicted_peak,omitempty"`
	EvacuationAdvised  bool       `json:"evacuation_advised"`
	AffectedPopulation int        `json:"affected_population,omitempty"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	Timestamp          time.Time  `json:"timestamp"`
}

func (a FloodAlert) Coordinates() Coordinates {
	return Coordinates{Latitude: a.Latitude, Longitude: a.Longitude}
}

// HeatWaveAlert is one active heat warning for a monitored city.
type HeatWaveAlert struct {
	ID            string    `json:"id"`
	Region        string    `json:"region"`
	Temperature   float64   `json:"temperature"` // celsius
	FeelsLike     float64   `json:"feels_like"`
	Humidity      float64   `json:"humidity"` // percent
	RiskLevel     RiskLevel `json:"risk_level"`
	DurationHours int       `json:"duration_hours"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Advisory      string    `json:"advisory"`
	Timestamp     time.Time `json:"timestamp"`
}

func (a HeatWaveAlert) Coordinates() Coordinates {
	return Coordinates{Latitude: a.Latitude, Longitude: a.Longitude}
}
