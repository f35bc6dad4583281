// Package metrics exposes the prometheus instrumentation for the
// Constructor Pool: how many instantiations happened, how many were served
// from cache, how many cycles were short-circuited, and how long
// instantiation takes. It is registered globally at package init, the same
// way the original engine wired its HTTP metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	instantiateTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "components",
		Subsystem: "pool",
		Name:      "instantiate_total",
		Help:      "Total number of configs sent through the constructor pool.",
	})

	cacheHitTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "components",
		Subsystem: "pool",
		Name:      "cache_hit_total",
		Help:      "Total number of resolutions served from the pool's memoization cache.",
	})

	cycleShortCircuitTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "components",
		Subsystem: "pool",
		Name:      "cycle_shortcircuit_total",
		Help:      "Total number of resolutions short-circuited by the blacklist cycle guard.",
	})

	instantiateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "components",
		Subsystem: "pool",
		Name:      "instantiate_duration_seconds",
		Help:      "Wall-clock time spent building one config's value, including nested resolves.",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(instantiateTotal, cacheHitTotal, cycleShortCircuitTotal, instantiateDuration)
}

// CacheHit records a resolution served from the memoization cache.
func CacheHit() {
	cacheHitTotal.Inc()
}

// CycleShortCircuit records a resolution that short-circuited via the
// blacklist instead of recursing.
func CycleShortCircuit() {
	cycleShortCircuitTotal.Inc()
}

// StartInstantiate records the start of a fresh (non-cached) build and
// returns a function to call when it finishes, recording both the count
// and the duration.
func StartInstantiate() func() {
	timer := prometheus.NewTimer(instantiateDuration)
	instantiateTotal.Inc()
	return func() {
		timer.ObserveDuration()
	}
}
