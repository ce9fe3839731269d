package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"strconv"
)

const metricsNamespace = "prescreen"

type Metrics struct {
	CallsStarted   prometheus.Counter
	CallsRejected  prometheus.Counter
	Turns          *prometheus.CounterVec
	Conclusions    *prometheus.CounterVec
	ArchiveErrors  prometheus.Counter
	ActiveSessions prometheus.GaugeFunc

	registry *prometheus.Registry
}

// NewMetrics registers everything on its own registry. activeSessions is
// sampled on every scrape.
func NewMetrics(activeSessions func() int) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		CallsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "calls_started_total",
			Help:      "Total number of inbound calls answered",
		}),
		CallsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "calls_rejected_total",
			Help:      "Inbound calls turned away by the new call limit",
		}),
		Turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "turns_total",
			Help:      "Caller turns processed, by outcome",
		}, []string{"outcome"}),
		Conclusions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "screenings_concluded_total",
			Help:      "Screenings that reached a conclusion, by eligibility",
		}, []string{"eligible"}),
		ArchiveErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "archive_errors_total",
			Help:      "Finished calls that could not be fully archived",
		}),
		ActiveSessions: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Calls currently in progress",
		}, func() float64 { return float64(activeSessions()) }),
		registry: registry,
	}
}

func (m *Metrics) observeConclusion(eligible bool) {
	m.Conclusions.WithLabelValues(strconv.FormatBool(eligible)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
