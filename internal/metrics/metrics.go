package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Client-side Prometheus metrics.
var (
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brainz",
			Name:      "lookups_total",
			Help:      "Total number of entity lookups",
		},
		[]string{"entity", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brainz",
			Name:      "request_duration_seconds",
			Help:      "Web service request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"entity"},
	)

	RateLimitWaitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "brainz",
			Name:      "ratelimit_wait_seconds",
			Help:      "Time spent waiting at the rate limit gate",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "brainz",
			Name:      "ratelimit_rejected_total",
			Help:      "Callers rejected by rate limit admission control",
		},
	)
)

var registerOnce sync.Once

// Register registers all client metrics on the given registerer.
// Safe to call more than once; only the first call registers.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			LookupsTotal,
			RequestDuration,
			RateLimitWaitSeconds,
			RateLimitRejectedTotal,
		)
	})
}
