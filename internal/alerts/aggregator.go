// Package alerts merges the independently fetched seismic, flood, and heat
// snapshots into the single prioritized feed shown on the dashboard.
package alerts

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/disasterwatch/italia/internal/models"
)

// Alert is a display-ready projection of a high-severity event.
type Alert struct {
	Kind     models.EventKind `json:"kind"`
	Severity models.RiskLevel `json:"severity"`
	Title    string           `json:"title"`
	Location string           `json:"location"`
	Time     time.Time        `json:"time"`
	Details  string           `json:"details"`
}

// Aggregate builds the unified high-priority feed from the three current
// snapshots. Only events at high or critical severity are included; anything
// else, including unrecognized severity strings, is dropped. Records missing
// a severity or timestamp are skipped without aborting the rest.
//
// Ordering is severity first (critical before high), most recent first within
// a severity. The sort is stable, so events with identical severity and
// timestamp keep seismic, flood, heat source precedence.
func Aggregate(seismic []models.SeismicEvent, floods []models.FloodAlert, heat []models.HeatWaveAlert) []Alert {
	out := make([]Alert, 0, len(seismic)+len(floods)+len(heat))

	for _, e := range seismic {
		if !include(models.KindSeismic, e.ID, e.RiskLevel, e.Timestamp) {
			continue
		}
		out = append(out, Alert{
			Kind:     models.KindSeismic,
			Severity: e.RiskLevel,
			Title:    fmt.Sprintf("M%.1f Earthquake", e.Magnitude),
			Location: e.Location,
			Time:     e.Timestamp,
			Details:  fmt.Sprintf("Depth: %.1fkm", e.Depth),
		})
	}

	for _, f := range floods {
		if !include(models.KindFlood, f.ID, f.RiskLevel, f.Timestamp) {
			continue
		}
		details := fmt.Sprintf("Water Level: %.1fm", f.WaterLevel)
		if f.EvacuationAdvised {
			details = "Evacuation Advised"
		}
		out = append(out, Alert{
			Kind:     models.KindFlood,
			Severity: f.RiskLevel,
			Title:    "Flood Alert",
			Location: f.Region,
			Time:     f.Timestamp,
			Details:  details,
		})
	}

	for _, h := range heat {
		if !include(models.KindHeat, h.ID, h.RiskLevel, h.Timestamp) {
			continue
		}
		out = append(out, Alert{
			Kind:     models.KindHeat,
			Severity: h.RiskLevel,
			Title:    "Heat Wave",
			Location: h.Region,
			Time:     h.Timestamp,
			Details:  fmt.Sprintf("%.1f°C (Feels like %.1f°C)", h.Temperature, h.FeelsLike),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity.Rank() != out[j].Severity.Rank() {
			return out[i].Severity.Rank() < out[j].Severity.Rank()
		}
		return out[i].Time.After(out[j].Time)
	})

	return out
}

// include applies the high-priority filter and the skip-malformed policy.
// Unknown severities never enter the feed; they are logged so bad upstream
// data stays visible.
func include(kind models.EventKind, id string, severity models.RiskLevel, ts time.Time) bool {
	if !severity.Known() {
		slog.Warn("dropping event with unrecognized severity", "kind", kind, "id", id, "severity", string(severity))
		return false
	}
	if ts.IsZero() {
		slog.Debug("dropping event without timestamp", "kind", kind, "id", id)
		return false
	}
	return severity.AtLeast(models.RiskHigh)
}
