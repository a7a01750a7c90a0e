package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the translation pipeline.
type Metrics struct {
	// Capture metrics
	CapturesStarted prometheus.Counter
	CaptureFailures prometheus.Counter
	CaptureDuration prometheus.Histogram

	// Encoding metrics
	UtterancesEncoded prometheus.Counter
	EncodeFailures    prometheus.Counter
	EncodeDuration    prometheus.Histogram

	// Provider call metrics
	ProviderRequests *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec

	// Synthesis dispatcher metrics
	SynthesisCacheHits   prometheus.Counter
	SynthesisCacheMisses prometheus.Counter
	SynthesisInFlight    prometheus.Gauge
	SynthesisQueueDepth  prometheus.Gauge

	// Session metrics
	SessionsStarted  prometheus.Counter
	SessionFailures  *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
}

// NewMetrics creates all pipeline metrics and registers them on reg.
// Callers own the registry, so isolated instances can coexist in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Capture metrics
		CapturesStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "globalytix_captures_started_total",
			Help: "Total number of capture sessions started",
		}),
		CaptureFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "globalytix_capture_failures_total",
			Help: "Total number of capture sessions that failed",
		}),
		CaptureDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "globalytix_capture_duration_seconds",
			Help:    "Duration of capture sessions",
			Buckets: prometheus.LinearBuckets(0.5, 0.5, 10), // 0.5s to 5s
		}),

		// Encoding metrics
		UtterancesEncoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "globalytix_utterances_encoded_total",
			Help: "Total number of utterances encoded for recognition",
		}),
		EncodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "globalytix_encode_failures_total",
			Help: "Total number of encoding failures",
		}),
		EncodeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "globalytix_encode_duration_seconds",
			Help:    "Time spent encoding captured audio",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to ~1s
		}),

		// Provider call metrics
		ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "globalytix_provider_requests_total",
			Help: "Total number of speech provider requests",
		}, []string{"operation", "outcome"}),
		ProviderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "globalytix_provider_request_duration_seconds",
			Help:    "Duration of speech provider requests",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		}, []string{"operation"}),

		// Synthesis dispatcher metrics
		SynthesisCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "globalytix_synthesis_cache_hits_total",
			Help: "Total number of synthesis requests served from cache",
		}),
		SynthesisCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "globalytix_synthesis_cache_misses_total",
			Help: "Total number of synthesis requests that missed the cache",
		}),
		SynthesisInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "globalytix_synthesis_in_flight",
			Help: "Current number of synthesis provider calls in flight",
		}),
		SynthesisQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "globalytix_synthesis_queue_depth",
			Help: "Current number of synthesis requests waiting for a worker",
		}),

		// Session metrics
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "globalytix_sessions_started_total",
			Help: "Total number of translation sessions started",
		}),
		SessionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "globalytix_session_failures_total",
			Help: "Total number of sessions that ended in an error state",
		}, []string{"reason"}),
		PipelineDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "globalytix_pipeline_duration_seconds",
			Help:    "End to end duration of capture to synthesis runs",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to ~1 minute
		}),
	}
}

// RecordCaptureStarted increments the captures started counter
func (m *Metrics) RecordCaptureStarted() {
	m.CapturesStarted.Inc()
}

// RecordCaptureDone records a finished capture and its duration
func (m *Metrics) RecordCaptureDone(durationSeconds float64) {
	m.CaptureDuration.Observe(durationSeconds)
}

// RecordCaptureFailure increments the capture failures counter
func (m *Metrics) RecordCaptureFailure() {
	m.CaptureFailures.Inc()
}

// RecordUtteranceEncoded records a successful encode and its duration
func (m *Metrics) RecordUtteranceEncoded(durationSeconds float64) {
	m.UtterancesEncoded.Inc()
	m.EncodeDuration.Observe(durationSeconds)
}

// RecordEncodeFailure increments the encode failures counter
func (m *Metrics) RecordEncodeFailure() {
	m.EncodeFailures.Inc()
}

// RecordProviderRequest records one provider round trip
func (m *Metrics) RecordProviderRequest(operation, outcome string, durationSeconds float64) {
	m.ProviderRequests.WithLabelValues(operation, outcome).Inc()
	m.ProviderDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordSynthesisCacheHit increments the cache hit counter
func (m *Metrics) RecordSynthesisCacheHit() {
	m.SynthesisCacheHits.Inc()
}

// RecordSynthesisCacheMiss increments the cache miss counter
func (m *Metrics) RecordSynthesisCacheMiss() {
	m.SynthesisCacheMisses.Inc()
}

// RecordSessionStarted increments the sessions started counter
func (m *Metrics) RecordSessionStarted() {
	m.SessionsStarted.Inc()
}

// RecordSessionFailure records an errored session by failure reason
func (m *Metrics) RecordSessionFailure(reason string) {
	m.SessionFailures.WithLabelValues(reason).Inc()
}

// RecordPipelineDone records the end to end duration of one run
func (m *Metrics) RecordPipelineDone(durationSeconds float64) {
	m.PipelineDuration.Observe(durationSeconds)
}
