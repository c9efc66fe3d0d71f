package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCatalogMetrics() {
	r.CatalogCacheLookupsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "genenet_catalog_cache_lookups_total",
			Help: "Promoter library cache lookups",
		},
		[]string{"result"},
	)

	r.CatalogParts = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "genenet_catalog_parts",
			Help: "Number of parts in the loaded catalog",
		},
		[]string{"kind"},
	)
}
