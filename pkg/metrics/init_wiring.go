package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initWiringMetrics() {
	r.WiringSearchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "genenet_wiring_searches_total",
			Help: "Total number of wiring searches",
		},
		[]string{"mode", "outcome"},
	)

	r.WiringSearchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genenet_wiring_search_duration_seconds",
			Help:    "Wiring search duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0, 60.0},
		},
		[]string{"mode"},
	)

	r.WiringNodesVisited = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genenet_wiring_nodes_visited",
			Help:    "Number of tentative edge assignments per search",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		},
		[]string{"mode"},
	)

	r.WiringBacktracksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "genenet_wiring_backtracks_total",
			Help: "Total number of assignments rejected by the forward check",
		},
		[]string{"mode"},
	)

	r.WiringSolutions = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genenet_wiring_solutions",
			Help:    "Number of wirings found per search",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000},
		},
		[]string{"mode"},
	)

	r.DevicesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "genenet_devices_total",
			Help: "Total number of devices instantiated from wirings",
		},
		[]string{"outcome"},
	)
}
