// Package metrics exposes the node's Prometheus instrumentation. Shape and
// naming follow the HTTP counters/histograms the ambient middleware stack
// expects (active requests, request totals, request duration), plus domain
// collectors: counters for mined blocks, publish failures and consensus
// chain switches, and a mining-duration histogram. The HTTP collectors are
// fed by middleware.Metrics; nothing in this repository updates the domain
// collectors, so they stay at zero.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every collector registered by this node.
type Metrics struct {
	HTTPActiveRequests  prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BlocksMinedTotal     prometheus.Counter
	MiningDurationSecond prometheus.Histogram
	PublishFailuresTotal prometheus.Counter
	ConsensusSwitchTotal prometheus.Counter
}

// New constructs and registers every collector against the default
// Prometheus registry.
func New() *Metrics {
	m := &Metrics{
		HTTPActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "blocknode_http_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blocknode_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blocknode_http_request_duration_seconds",
			Help:    "HTTP request latency by method, path and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		BlocksMinedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blocknode_blocks_mined_total",
			Help: "Total blocks successfully mined by this node.",
		}),
		MiningDurationSecond: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blocknode_mining_duration_seconds",
			Help:    "Time spent searching for a valid proof of work.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		}),
		PublishFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blocknode_publish_failures_total",
			Help: "Total peer rejections/timeouts while publishing a mined block.",
		}),
		ConsensusSwitchTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blocknode_consensus_chain_switch_total",
			Help: "Total times this node replaced its chain via consensus.",
		}),
	}

	prometheus.MustRegister(
		m.HTTPActiveRequests,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BlocksMinedTotal,
		m.MiningDurationSecond,
		m.PublishFailuresTotal,
		m.ConsensusSwitchTotal,
	)

	return m
}
