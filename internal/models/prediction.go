package models

import "time"

// Prediction is an AI-generated 24-48h risk outlook for one region and kind.
type Prediction struct {
	ID              string    `json:"id"`
	DisasterType    EventKind `json:"disaster_type"`
	Region          string    `json:"region"`
	PredictionText  string    `json:"prediction_text"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Confidence      float64   `json:"confidence"` // 0..1
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}
