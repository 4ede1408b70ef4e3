package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/disasterwatch/italia/internal/models"
)

func (s *SQLiteDB) AddPrediction(ctx context.Context, p *models.Prediction) error {
	recs, err := json.Marshal(p.Recommendations)
	if err != nil {
		return fmt.Errorf("error encoding recommendations: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO predictions (id, disaster_type, region, prediction_text, risk_level,
			confidence, valid_from, valid_until, recommendations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, string(p.DisasterType), p.Region, p.PredictionText, string(p.RiskLevel),
		p.Confidence, p.ValidFrom, p.ValidUntil, string(recs), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting prediction: %w", err)
	}
	return nil
}

func (s *SQLiteDB) ListPredictions(ctx context.Context, disasterType models.EventKind, limit int) ([]models.Prediction, error) {
	q := `SELECT id, disaster_type, region, prediction_text, risk_level,
		confidence, valid_from, valid_until, recommendations, created_at
		FROM predictions`
	var args []any
	if disasterType != "" {
		q += " WHERE disaster_type = ?"
		args = append(args, string(disasterType))
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing predictions: %w", err)
	}
	defer rows.Close()

	var out []models.Prediction
	for rows.Next() {
		var p models.Prediction
		var kind, risk, recs string
		if err := rows.Scan(&p.ID, &kind, &p.Region, &p.PredictionText, &risk,
			&p.Confidence, &p.ValidFrom, &p.ValidUntil, &recs, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning prediction: %w", err)
		}
		p.DisasterType = models.EventKind(kind)
		p.RiskLevel = models.RiskLevel(risk)
		if err := json.Unmarshal([]byte(recs), &p.Recommendations); err != nil {
			return nil, fmt.Errorf("error decoding recommendations: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
