package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	duration *prometheus.HistogramVec
}

// NewMetrics registers the gateway request histogram on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "upasthiti",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Latency of backend calls by endpoint and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "outcome"}),
	}
	reg.MustRegister(m.duration)
	return m
}

func (m *Metrics) observe(endpoint, outcome string, d time.Duration) {
	m.duration.WithLabelValues(endpoint, outcome).Observe(d.Seconds())
}
