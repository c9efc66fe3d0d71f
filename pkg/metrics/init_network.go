package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initNetworkMetrics() {
	r.NetworkModelsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "genenet_network_models_total",
			Help: "Total number of reaction-network models compiled",
		},
	)

	r.NetworkSpecies = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genenet_network_species",
			Help:    "Number of species per compiled model",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000},
		},
	)

	r.NetworkReactions = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genenet_network_reactions",
			Help:    "Number of reactions per compiled model",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	r.NetworkCompileDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genenet_network_compile_duration_seconds",
			Help:    "Model compilation duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)
}
