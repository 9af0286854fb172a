// Package metrics exposes Prometheus collectors for HTTP traffic, draws and
// claim activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route pattern and status",
	}, []string{LabelMethod, LabelPath, LabelStatus})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: HTTPLatencyBuckets,
	}, []string{LabelMethod, LabelPath})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "HTTP requests currently being served",
	})
)

var EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "events_published_total",
	Help: "Bus events seen by the metrics collector",
}, []string{LabelType})

// Draw and claim activity
var (
	DrawsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "draws_total",
		Help:      "Draw attempts by outcome code",
	}, []string{LabelOutcome})

	DrawDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "draw_duration_seconds",
		Help:      "Draw resolution latency in seconds",
		Buckets:   HTTPLatencyBuckets,
	})

	DrawRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "draw_stock_retries_total",
		Help:      "Draw commits retried after losing a stock race",
	})

	PrizesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "prizes_awarded_total",
		Help:      "Prizes awarded by wheel and prize id",
	}, []string{LabelWheel, LabelPrize})

	ProofsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "proofs_submitted_total",
		Help:      "Proof of claim submissions by outcome",
	}, []string{LabelOutcome})

	ClaimStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "claim_status_changes_total",
		Help:      "Claim status transitions by target status",
	}, []string{LabelStatus})
)

// Sampled by the runtime metrics job rather than updated inline
var (
	SSEClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sse_clients_connected",
		Help: "Host dashboards currently streaming wheel events",
	})

	WorkerQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worker_queue_depth",
		Help: "Jobs waiting in the announcement worker queue",
	})
)
