package llm

import (
	"time"

	llmclient "agenthub/internal/llmClient"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed_response"
)

// Metrics exposes Prometheus collectors for generation calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// MustNewMetrics registers the collectors with reg. Registration errors
// panic, mirroring promauto.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agenthub",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Generation calls by domain and outcome.",
		}, []string{"domain", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agenthub",
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Latency of generation calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"domain"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Observe records one finished call.
func (m *Metrics) Observe(domain string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(domain, Outcome(err)).Inc()
	m.duration.WithLabelValues(domain).Observe(elapsed.Seconds())
}

// Outcome classifies err into a metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case llmclient.IsMalformed(err):
		return OutcomeMalformed
	default:
		return OutcomeTransport
	}
}
