package repository

import (
	"context"
	"errors"
	"time"

	"github.com/disasterwatch/italia/internal/models"
)

var ErrNotFound = errors.New("not found")

// EventFilter narrows event history queries. Nil fields are ignored.
type EventFilter struct {
	MinMagnitude *float64
	MinRisk      *models.RiskLevel
	Since        *time.Time
	Limit        int
}

// EventRepository persists every fetched event so history survives refresh
// cycles. Rows are deduplicated by upstream ID before insert.
type EventRepository interface {
	AddSeismic(ctx context.Context, e models.SeismicEvent) error
	AddFlood(ctx context.Context, a models.FloodAlert) error
	AddHeat(ctx context.Context, a models.HeatWaveAlert) error
	Exists(ctx context.Context, id string) (bool, error)
	ListSeismic(ctx context.Context, f EventFilter) ([]models.SeismicEvent, error)
	ListFloods(ctx context.Context, f EventFilter) ([]models.FloodAlert, error)
	ListHeat(ctx context.Context, f EventFilter) ([]models.HeatWaveAlert, error)
}

type HospitalRepository interface {
	ListHospitals(ctx context.Context, region string) ([]models.Hospital, error)
	GetHospital(ctx context.Context, id string) (*models.Hospital, error)
	CreateHospital(ctx context.Context, h *models.Hospital) error
	UpdateHospital(ctx context.Context, id string, upd models.HospitalUpdate, now time.Time) (*models.Hospital, error)
}

type PredictionRepository interface {
	AddPrediction(ctx context.Context, p *models.Prediction) error
	ListPredictions(ctx context.Context, disasterType models.EventKind, limit int) ([]models.Prediction, error)
}
