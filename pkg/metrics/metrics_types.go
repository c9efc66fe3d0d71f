package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Wiring Metrics
	WiringSearchesTotal   *prometheus.CounterVec
	WiringSearchDuration  *prometheus.HistogramVec
	WiringNodesVisited    *prometheus.HistogramVec
	WiringBacktracksTotal *prometheus.CounterVec
	WiringSolutions       *prometheus.HistogramVec
	DevicesTotal          *prometheus.CounterVec

	// Network Metrics
	NetworkModelsTotal     prometheus.Counter
	NetworkSpecies         prometheus.Histogram
	NetworkReactions       prometheus.Histogram
	NetworkCompileDuration prometheus.Histogram

	// Catalog Metrics
	CatalogCacheLookupsTotal *prometheus.CounterVec
	CatalogParts             *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initWiringMetrics()
	r.initNetworkMetrics()
	r.initCatalogMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every gathered metric to path in the Prometheus text
// format, for the node exporter's textfile collector
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
