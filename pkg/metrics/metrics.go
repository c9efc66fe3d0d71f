package metrics

import (
	"time"
)

// Search outcomes
const (
	OutcomeSolved        = "solved"
	OutcomeUnsatisfiable = "unsatisfiable"
	OutcomeCancelled     = "cancelled"
)

// Device outcomes
const (
	DeviceInstantiated = "instantiated"
	DeviceDropped      = "dropped"
)

// RecordSearch records one wiring search
func (r *Registry) RecordSearch(mode, outcome string, duration time.Duration, nodes, backtracks, solutions int) {
	r.WiringSearchesTotal.WithLabelValues(mode, outcome).Inc()
	r.WiringSearchDuration.WithLabelValues(mode).Observe(duration.Seconds())
	r.WiringNodesVisited.WithLabelValues(mode).Observe(float64(nodes))
	r.WiringBacktracksTotal.WithLabelValues(mode).Add(float64(backtracks))
	r.WiringSolutions.WithLabelValues(mode).Observe(float64(solutions))
}

// RecordDevice records a device being instantiated or dropped
func (r *Registry) RecordDevice(outcome string) {
	r.DevicesTotal.WithLabelValues(outcome).Inc()
}

// RecordCompile records a compiled model
func (r *Registry) RecordCompile(species, reactions int, duration time.Duration) {
	r.NetworkModelsTotal.Inc()
	r.NetworkSpecies.Observe(float64(species))
	r.NetworkReactions.Observe(float64(reactions))
	r.NetworkCompileDuration.Observe(duration.Seconds())
}

// RecordCacheLookup records a promoter library cache hit or miss
func (r *Registry) RecordCacheLookup(hit bool) {
	if hit {
		r.CatalogCacheLookupsTotal.WithLabelValues("hit").Inc()
	} else {
		r.CatalogCacheLookupsTotal.WithLabelValues("miss").Inc()
	}
}

// SetCatalogParts sets the part count for one kind
func (r *Registry) SetCatalogParts(kind string, n int) {
	r.CatalogParts.WithLabelValues(kind).Set(float64(n))
}
