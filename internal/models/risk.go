package models

import "strings"

// RiskLevel is the severity scale shared by every event kind.
// Ordering for display purposes is critical > high > moderate > low.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskModerate RiskLevel = "moderate"
	RiskLow      RiskLevel = "low"
)

// Rank returns the sort position of the level, critical first.
// Unrecognized values rank below low.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskModerate:
		return 2
	case RiskLow:
		return 3
	default:
		return 4
	}
}

// Known reports whether the level is one of the four defined ranks.
func (r RiskLevel) Known() bool {
	return r.Rank() < 4
}

// AtLeast reports whether r is as severe or more severe than min.
func (r RiskLevel) AtLeast(min RiskLevel) bool {
	return r.Known() && r.Rank() <= min.Rank()
}

// ParseRiskLevel normalizes a risk level string from an upstream feed.
// The second return is false for values outside the defined scale.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	r := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Known()
}

// SeismicRisk grades an earthquake by magnitude.
func SeismicRisk(magnitude, depth float64) RiskLevel {
	switch {
	case magnitude >= 6.0:
		return RiskCritical
	case magnitude >= 5.0:
		return RiskHigh
	case magnitude >= 4.0:
		return RiskModerate
	default:
		return RiskLow
	}
}

// HeatRisk grades a heat wave by a simplified heat index.
func HeatRisk(temperature, humidity float64) RiskLevel {
	index := temperature + 0.5*humidity
	switch {
	case index >= 55:
		return RiskCritical
	case index >= 45:
		return RiskHigh
	case index >= 35:
		return RiskModerate
	default:
		return RiskLow
	}
}
