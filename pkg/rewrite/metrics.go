package rewrite

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes reported by the reverse transform.
const (
	outcomeExact   = "exact"
	outcomePrefix  = "prefix"
	outcomeArchive = "archive"
	outcomeMiss    = "miss"
)

// Metrics holds the provider's Prometheus collectors.
type Metrics struct {
	rewrites          *prometheus.CounterVec
	lookups           *prometheus.CounterVec
	redirects         *prometheus.CounterVec
	indexBuilds       *prometheus.CounterVec
	indexBuildSeconds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on registerer.
// A nil registerer leaves them unregistered.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		rewrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naurl",
			Name:      "friendly_rewrites_total",
			Help:      "Raw module paths rewritten to friendly paths, by matcher.",
		}, []string{"matcher"}),
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naurl",
			Name:      "query_lookups_total",
			Help:      "Friendly path lookups, by outcome (exact, prefix, archive, miss).",
		}, []string{"outcome"}),
		redirects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naurl",
			Name:      "legacy_redirects_total",
			Help:      "Legacy URLs redirected, by entity kind.",
		}, []string{"kind"}),
		indexBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naurl",
			Name:      "index_builds_total",
			Help:      "Index snapshot builds, by result.",
		}, []string{"result"}),
		indexBuildSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "naurl",
			Name:      "index_build_seconds",
			Help:      "Time spent building an index snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}

func (m *Metrics) observeBuild(elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.indexBuilds.WithLabelValues(result).Inc()
	m.indexBuildSeconds.Observe(elapsed.Seconds())
}
