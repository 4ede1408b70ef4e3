// Package snapshot holds the most recent fetch from each monitored source.
// Each refresh replaces the previous snapshot wholesale; readers always see a
// consistent copy of one cycle's data.
package snapshot

import (
	"sync"
	"time"

	"github.com/disasterwatch/italia/internal/models"
)

type Store struct {
	mu sync.RWMutex

	seismic   []models.SeismicEvent
	seismicAt time.Time
	floods    []models.FloodAlert
	floodsAt  time.Time
	heat      []models.HeatWaveAlert
	heatAt    time.Time
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetSeismic(events []models.SeismicEvent, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seismic = append([]models.SeismicEvent(nil), events...)
	s.seismicAt = at
}

func (s *Store) SetFloods(alerts []models.FloodAlert, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floods = append([]models.FloodAlert(nil), alerts...)
	s.floodsAt = at
}

func (s *Store) SetHeat(alerts []models.HeatWaveAlert, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heat = append([]models.HeatWaveAlert(nil), alerts...)
	s.heatAt = at
}

// Seismic returns a copy of the current seismic snapshot and its fetch time.
func (s *Store) Seismic() ([]models.SeismicEvent, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SeismicEvent(nil), s.seismic...), s.seismicAt
}

func (s *Store) Floods() ([]models.FloodAlert, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FloodAlert(nil), s.floods...), s.floodsAt
}

func (s *Store) Heat() ([]models.HeatWaveAlert, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.HeatWaveAlert(nil), s.heat...), s.heatAt
}
