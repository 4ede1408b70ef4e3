package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/disasterwatch/italia/internal/models"
)

func (s *SQLiteDB) AddSeismic(ctx context.Context, e models.SeismicEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, kind, risk_level, location, latitude, longitude, timestamp, source, magnitude, depth, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(models.KindSeismic), string(e.RiskLevel), e.Location,
		e.Latitude, e.Longitude, e.Timestamp, e.Source, e.Magnitude, e.Depth, time.Now())
	if err != nil {
		return fmt.Errorf("error inserting seismic event: %w", err)
	}
	return nil
}

func (s *SQLiteDB) AddFlood(ctx context.Context, a models.FloodAlert) error {
	var peak any
	if a.PredictedPeak != nil {
		peak = *a.PredictedPeak
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, kind, risk_level, location, latitude, longitude, timestamp,
			river_name, water_level, predicted_peak, evacuation_advised, affected_population, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, string(models.KindFlood), string(a.RiskLevel), a.Region,
		a.Latitude, a.Longitude, a.Timestamp,
		a.RiverName, a.WaterLevel, peak, a.EvacuationAdvised, a.AffectedPopulation, time.Now())
	if err != nil {
		return fmt.Errorf("error inserting flood alert: %w", err)
	}
	return nil
}

func (s *SQLiteDB) AddHeat(ctx context.Context, a models.HeatWaveAlert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, kind, risk_level, location, latitude, longitude, timestamp,
			temperature, feels_like, humidity, duration_hours, advisory, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, string(models.KindHeat), string(a.RiskLevel), a.Region,
		a.Latitude, a.Longitude, a.Timestamp,
		a.Temperature, a.FeelsLike, a.Humidity, a.DurationHours, a.Advisory, time.Now())
	if err != nil {
		return fmt.Errorf("error inserting heat wave alert: %w", err)
	}
	return nil
}

func (s *SQLiteDB) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking event existence: %w", err)
	}
	return true, nil
}

// eventQuery builds the WHERE clause shared by the per-kind list methods.
func eventQuery(kind models.EventKind, f EventFilter) (string, []any) {
	clauses := []string{"kind = ?"}
	args := []any{string(kind)}

	if f.MinMagnitude != nil {
		clauses = append(clauses, "magnitude >= ?")
		args = append(args, *f.MinMagnitude)
	}
	if f.MinRisk != nil {
		levels := levelsAtLeast(*f.MinRisk)
		clauses = append(clauses, "risk_level IN (?"+strings.Repeat(", ?", len(levels)-1)+")")
		for _, l := range levels {
			args = append(args, l)
		}
	}
	if f.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, *f.Since)
	}

	q := " WHERE " + strings.Join(clauses, " AND ") + " ORDER BY timestamp DESC"
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", f.Limit)
	}
	return q, args
}

func levelsAtLeast(min models.RiskLevel) []string {
	all := []models.RiskLevel{models.RiskCritical, models.RiskHigh, models.RiskModerate, models.RiskLow}
	var out []string
	for _, l := range all {
		if l.Rank() <= min.Rank() {
			out = append(out, string(l))
		}
	}
	return out
}

func (s *SQLiteDB) ListSeismic(ctx context.Context, f EventFilter) ([]models.SeismicEvent, error) {
	where, args := eventQuery(models.KindSeismic, f)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, risk_level, location, latitude, longitude, timestamp, source, magnitude, depth
		FROM events`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing seismic events: %w", err)
	}
	defer rows.Close()

	var out []models.SeismicEvent
	for rows.Next() {
		var e models.SeismicEvent
		var risk string
		var location, source sql.NullString
		var magnitude, depth sql.NullFloat64
		if err := rows.Scan(&e.ID, &risk, &location, &e.Latitude, &e.Longitude, &e.Timestamp, &source, &magnitude, &depth); err != nil {
			return nil, fmt.Errorf("error scanning seismic event: %w", err)
		}
		e.RiskLevel = models.RiskLevel(risk)
		e.Location = location.String
		e.Source = source.String
		e.Magnitude = magnitude.Float64
		e.Depth = depth.Float64
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteDB) ListFloods(ctx context.Context, f EventFilter) ([]models.FloodAlert, error) {
	where, args := eventQuery(models.KindFlood, f)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, risk_level, location, latitude, longitude, timestamp,
			river_name, water_level, predicted_peak, evacuation_advised, affected_population
		FROM events`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing flood alerts: %w", err)
	}
	defer rows.Close()

	var out []models.FloodAlert
	for rows.Next() {
		var a models.FloodAlert
		var risk string
		var region, river sql.NullString
		var level sql.NullFloat64
		var peak sql.NullTime
		var pop sql.NullInt64
		if err := rows.Scan(&a.ID, &risk, &region, &a.Latitude, &a.Longitude, &a.Timestamp,
			&river, &level, &peak, &a.EvacuationAdvised, &pop); err != nil {
			return nil, fmt.Errorf("error scanning flood alert: %w", err)
		}
		a.RiskLevel = models.RiskLevel(risk)
		a.Region = region.String
		a.RiverName = river.String
		a.WaterLevel = level.Float64
		if peak.Valid {
			t := peak.Time
			a.PredictedPeak = &t
		}
		a.AffectedPopulation = int(pop.Int64)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteDB) ListHeat(ctx context.Context, f EventFilter) ([]models.HeatWaveAlert, error) {
	where, args := eventQuery(models.KindHeat, f)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, risk_level, location, latitude, longitude, timestamp,
			temperature, feels_like, humidity, duration_hours, advisory
		FROM events`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing heat wave alerts: %w", err)
	}
	defer rows.Close()

	var out []models.HeatWaveAlert
	for rows.Next() {
		var a models.HeatWaveAlert
		var risk string
		var region, advisory sql.NullString
		var temp, feels, humidity sql.NullFloat64
		var hours sql.NullInt64
		if err := rows.Scan(&a.ID, &risk, &region, &a.Latitude, &a.Longitude, &a.Timestamp,
			&temp, &feels, &humidity, &hours, &advisory); err != nil {
			return nil, fmt.Errorf("error scanning heat wave alert: %w", err)
		}
		a.RiskLevel = models.RiskLevel(risk)
		a.Region = region.String
		a.Temperature = temp.Float64
		a.FeelsLike = feels.Float64
		a.Humidity = humidity.Float64
		a.DurationHours = int(hours.Int64)
		a.Advisory = advisory.String
		out = append(out, a)
	}
	return out, rows.Err()
}
