// Package metrics declares the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DecisionsTotal counts evaluations by decision and no-bid reason.
	DecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geobidder_decisions_total",
		Help: "Bid decisions by outcome and no-bid reason",
	}, []string{"decision", "reason"})
	// EvaluateDurationMs observes the time spent in Evaluate.
	EvaluateDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geobidder_evaluate_duration_ms",
		Help:    "Evaluate duration in milliseconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 50},
	})
	// CandidatesPerRequest observes the size of the spatial index candidate set.
	CandidatesPerRequest = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geobidder_index_candidates",
		Help:    "Campaigns returned by the spatial index per request",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 500},
	})
	// ReservationsRefusedTotal counts winners whose budget reservation was refused.
	ReservationsRefusedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geobidder_reservations_refused_total",
		Help: "Budget reservations refused by the ledger",
	})
	// SpendEventsPublishedTotal counts spend events acknowledged by Kafka.
	SpendEventsPublishedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geobidder_spend_events_published_total",
		Help: "Spend events written to Kafka",
	})
	// SpendEventsDroppedTotal counts spend events lost, by cause.
	SpendEventsDroppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geobidder_spend_events_dropped_total",
		Help: "Spend events dropped before reaching Kafka",
	}, []string{"cause"})
	// HTTPRequestDurationMs observes handler latency by route pattern.
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geobidder_http_request_duration_ms",
		Help:    "HTTP handler duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 50, 100, 500},
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(DecisionsTotal)
	prometheus.MustRegister(EvaluateDurationMs)
	prometheus.MustRegister(CandidatesPerRequest)
	prometheus.MustRegister(ReservationsRefusedTotal)
	prometheus.MustRegister(SpendEventsPublishedTotal)
	prometheus.MustRegister(SpendEventsDroppedTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
}

// RegisterReservationConflicts exposes fn as a counter of ledger
// compare-and-swap retries. It registers on the default registry and must be
// called once per process.
func RegisterReservationConflicts(fn func() uint64) prometheus.CounterFunc {
	c := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "geobidder_reservation_cas_conflicts_total",
		Help: "Budget reservation compare-and-swap attempts that lost a race",
	}, func() float64 { return float64(fn()) })
	prometheus.MustRegister(c)
	return c
}

// Handler exposes the registered collectors for scraping.
func Handler() http.Handler { return promhttp.Handler() }
