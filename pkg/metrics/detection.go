package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DetectionMetrics records outcomes of disease detection calls to the
// inference service.
type DetectionMetrics struct {
	duration *prometheus.HistogramVec
	results  *prometheus.CounterVec
	health   *prometheus.GaugeVec
}

// NewDetectionMetrics registers the detection metrics on the provided registerer.
func NewDetectionMetrics(reg prometheus.Registerer) *DetectionMetrics {
	if reg == nil {
		return &DetectionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "detection_request_duration_seconds",
		Help:    "Duration of inference service calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "detection_results_total",
		Help: "Detection requests by outcome.",
	}, []string{"outcome"})
	health := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "detection_upstream_up",
		Help: "Whether the inference service answered its last health probe.",
	}, []string{"target"})
	reg.MustRegister(duration, results, health)
	return &DetectionMetrics{
		duration: duration,
		results:  results,
		health:   health,
	}
}

// ObserveCall records the duration of one inference service call.
func (d *DetectionMetrics) ObserveCall(operation string, duration time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	d.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncResult increments the outcome counter ("predicted", "no_prediction",
// "unavailable", "unhealthy", "error").
func (d *DetectionMetrics) IncResult(outcome string) {
	if d == nil || d.results == nil {
		return
	}
	d.results.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// SetUpstreamUp records the latest health probe result.
func (d *DetectionMetrics) SetUpstreamUp(target string, up bool) {
	if d == nil || d.health == nil {
		return
	}
	value := 0.0
	if up {
		value = 1.0
	}
	d.health.WithLabelValues(normalizeLabel(target)).Set(value)
}
