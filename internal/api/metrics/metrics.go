// Package metrics defines the custom Prometheus metrics for the
// nutrition API. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the
// default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nutrition"

// ── Prediction metrics ────────────────────────────────────────────────────────

// PredictionsTotal counts prediction requests by outcome.
// Labels:
//   - status: "success", "validation_error", "unavailable", "upstream_error", "error"
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of prediction requests, by outcome.",
	},
	[]string{"status"},
)

// PredictionDuration measures the end-to-end latency of a prediction
// request, including the outbound inference call.
var PredictionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Duration of prediction requests from intake to response.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
)

// ModelHealthChecksTotal counts health probes against the inference service.
// Label:
//   - result: "healthy" or "unhealthy"
var ModelHealthChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "model_health_checks_total",
		Help:      "Total number of inference service health probes, by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - status: "created", "duplicate", "invalid", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"status"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - status: "success", "rejected", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"status"},
)
