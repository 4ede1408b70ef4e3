package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the monitoring service.
type Metrics struct {
	PollsTotal     *prometheus.CounterVec // labels: source, outcome={success,error}
	EventsIngested prometheus.Counter
	EventsDropped  *prometheus.CounterVec // labels: source, reason={duplicate,malformed}
	ActiveAlerts   *prometheus.GaugeVec   // labels: kind

	PredictionRequests *prometheus.CounterVec // labels: outcome={success,fallback}
}

// NewMetrics creates the service instruments. Call Register to attach them to
// a registry; tests skip registration to avoid collisions on the default one.
func NewMetrics() *Metrics {
	return &Metrics{
		PollsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disasterwatch",
			Name:      "polls_total",
			Help:      "Source polls by source and outcome.",
		}, []string{"source", "outcome"}),
		EventsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disasterwatch",
			Name:      "events_ingested_total",
			Help:      "New events persisted to the event store.",
		}),
		EventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disasterwatch",
			Name:      "events_dropped_total",
			Help:      "Fetched events discarded before persistence.",
		}, []string{"source", "reason"}),
		ActiveAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "disasterwatch",
			Name:      "active_alerts",
			Help:      "Events in the current snapshot by kind.",
		}, []string{"kind"}),
		PredictionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disasterwatch",
			Name:      "prediction_requests_total",
			Help:      "AI prediction generations by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.PollsTotal,
		m.EventsIngested,
		m.EventsDropped,
		m.ActiveAlerts,
		m.PredictionRequests,
	)
}
