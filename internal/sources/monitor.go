// Package sources polls the upstream seismic, flood, and weather providers
// and keeps the snapshot store and event history current.
package sources

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/disasterwatch/italia/internal/config"
	"github.com/disasterwatch/italia/internal/models"
	"github.com/disasterwatch/italia/internal/observability"
	"github.com/disasterwatch/italia/internal/repository"
	"github.com/disasterwatch/italia/internal/snapshot"
	"github.com/disasterwatch/italia/internal/worker"
)

// eventJob is one fetched event queued for deduplication and persistence.
type eventJob interface {
	eventID() string
	persist(ctx context.Context, repo repository.EventRepository) error
}

type seismicJob models.SeismicEvent

func (j seismicJob) eventID() string { return j.ID }
func (j seismicJob) persist(ctx context.Context, repo repository.EventRepository) error {
	return repo.AddSeismic(ctx, models.SeismicEvent(j))
}

type floodJob models.FloodAlert

func (j floodJob) eventID() string { return j.ID }
func (j floodJob) persist(ctx context.Context, repo repository.EventRepository) error {
	return repo.AddFlood(ctx, models.FloodAlert(j))
}

type heatJob models.HeatWaveAlert

func (j heatJob) eventID() string { return j.ID }
func (j heatJob) persist(ctx context.Context, repo repository.EventRepository) error {
	return repo.AddHeat(ctx, models.HeatWaveAlert(j))
}

// Monitor owns one poller goroutine per enabled source. Every cycle replaces
// that source's snapshot wholesale and funnels the fetched events through the
// worker pool into the event store.
type Monitor struct {
	cfg     *config.Config
	repo    repository.EventRepository
	snap    *snapshot.Store
	metrics *observability.Metrics
	clock   clockwork.Clock

	seismic *SeismicClient
	flood   *FloodClient
	heat    *HeatClient

	pool *worker.Pool[eventJob]
	wg   sync.WaitGroup
}

func NewMonitor(cfg *config.Config, repo repository.EventRepository, snap *snapshot.Store, metrics *observability.Metrics, clock clockwork.Clock) *Monitor {
	return &Monitor{
		cfg:     cfg,
		repo:    repo,
		snap:    snap,
		metrics: metrics,
		clock:   clock,
		seismic: NewSeismicClient(cfg.Sources.SeismicURL, cfg.Sources.SeismicMinMagnitude, cfg.Sources.SeismicWindowDays),
		flood:   NewFloodClient(cfg.Sources.FloodURL),
		heat:    NewHeatClient(cfg.Sources.HeatURL, cfg.Sources.HeatAPIKey),
	}
}

func (m *Monitor) Start(ctx context.Context) {
	processor := func(ctx context.Context, job eventJob) error {
		exists, err := m.repo.Exists(ctx, job.eventID())
		if err != nil {
			slog.Error("error checking existence", "id", job.eventID(), "error", err)
			return err
		}
		if exists {
			m.metrics.EventsDropped.WithLabelValues("store", "duplicate").Inc()
			return nil
		}

		if err := job.persist(ctx, m.repo); err != nil {
			slog.Error("error persisting event", "id", job.eventID(), "error", err)
			return err
		}

		m.metrics.EventsIngested.Inc()
		slog.Debug("persisted event", "id", job.eventID())
		return nil
	}

	m.pool = worker.NewPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize, processor)
	m.pool.Start(ctx)

	if m.cfg.Sources.SeismicEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, "seismic", m.cfg.Sources.SeismicPollInterval, m.pollSeismic)
	}
	if m.cfg.Sources.FloodEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, "flood", m.cfg.Sources.FloodPollInterval, m.pollFlood)
	}
	if m.cfg.Sources.HeatEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, "heat", m.cfg.Sources.HeatPollInterval, m.pollHeat)
	}
}

func (m *Monitor) runPoller(ctx context.Context, source string, interval time.Duration, poll func(ctx context.Context) error) {
	defer m.wg.Done()
	slog.Info("starting poller", "source", source, "interval", interval)

	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()

	m.runPoll(ctx, source, poll)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "source", source)
			return
		case <-ticker.Chan():
			m.runPoll(ctx, source, poll)
		}
	}
}

func (m *Monitor) runPoll(ctx context.Context, source string, poll func(ctx context.Context) error) {
	slog.Debug("polling", "source", source)
	if err := poll(ctx); err != nil {
		m.metrics.PollsTotal.WithLabelValues(source, "error").Inc()
		slog.Error("poll failed", "source", source, "error", err)
		return
	}
	m.metrics.PollsTotal.WithLabelValues(source, "success").Inc()
}

func (m *Monitor) pollSeismic(ctx context.Context) error {
	now := m.clock.Now()
	events, err := m.seismic.Fetch(ctx, now)
	if err != nil {
		return err
	}

	m.snap.SetSeismic(events, now)
	m.metrics.ActiveAlerts.WithLabelValues(string(models.KindSeismic)).Set(float64(len(events)))
	for _, e := range events {
		m.pool.Submit(seismicJob(e))
	}
	slog.Debug("poll complete", "source", "seismic", "count", len(events))
	return nil
}

func (m *Monitor) pollFlood(ctx context.Context) error {
	now := m.clock.Now()
	alerts, err := m.flood.Fetch(ctx, now)
	if err != nil {
		return err
	}

	m.snap.SetFloods(alerts, now)
	m.metrics.ActiveAlerts.WithLabelValues(string(models.KindFlood)).Set(float64(len(alerts)))
	for _, a := range alerts {
		m.pool.Submit(floodJob(a))
	}
	slog.Debug("poll complete", "source", "flood", "count", len(alerts))
	return nil
}

func (m *Monitor) pollHeat(ctx context.Context) error {
	now := m.clock.Now()
	alerts, err := m.heat.Fetch(ctx, now)
	if err != nil {
		return err
	}

	m.snap.SetHeat(alerts, now)
	m.metrics.ActiveAlerts.WithLabelValues(string(models.KindHeat)).Set(float64(len(alerts)))
	for _, a := range alerts {
		m.pool.Submit(heatJob(a))
	}
	slog.Debug("poll complete", "source", "heat", "count", len(alerts))
	return nil
}

func (m *Monitor) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	slog.Info("monitor stopped")
}
