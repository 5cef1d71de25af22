// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values of TranscriptionsTotal.
const (
	ResultOK          = "ok"
	ResultDecodeError = "decode_error"
	ResultEmpty       = "empty"
	ResultEngineError = "engine_error"
)

// Metrics holds the collectors of the transcription bridge and the HTTP
// server.
type Metrics struct {
	// Transcription metrics
	TranscriptionsTotal   *prometheus.CounterVec
	TranscriptionDuration prometheus.Histogram
	DecodedFrames         prometheus.Histogram
	SessionsActive        prometheus.Gauge

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		TranscriptionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wavbridge_transcriptions_total",
			Help: "Total number of transcription requests by result",
		}, []string{"result"}),
		TranscriptionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wavbridge_transcription_duration_seconds",
			Help:    "Duration of transcription requests, decode included",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		}),
		DecodedFrames: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wavbridge_decoded_frames",
			Help:    "Number of mono frames handed to the engine",
			Buckets: prometheus.ExponentialBuckets(1600, 4, 10), // 0.1s at 16kHz upwards
		}),
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wavbridge_sessions_active",
			Help: "Current number of open transcription sessions",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wavbridge_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wavbridge_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

// RecordTranscription counts one request with its result label and
// duration. A nil receiver is a no-op.
func (m *Metrics) RecordTranscription(result string, durationSeconds float64) {
	if m == nil {
		return
	}

	m.TranscriptionsTotal.WithLabelValues(result).Inc()
	m.TranscriptionDuration.Observe(durationSeconds)
}

// RecordDecodedFrames observes the length of a decoded signal.
func (m *Metrics) RecordDecodedFrames(frames int) {
	if m == nil {
		return
	}

	m.DecodedFrames.Observe(float64(frames))
}

// SessionOpened increments the active sessions gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}

	m.SessionsActive.Inc()
}

// SessionClosed decrements the active sessions gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}

	m.SessionsActive.Dec()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, durationSeconds float64) {
	if m == nil {
		return
	}

	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}
