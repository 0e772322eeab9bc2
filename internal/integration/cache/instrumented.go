package cache

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
)

// Lookup results recorded by the instrumented cache.
const (
	lookupHit   = "hit"
	lookupMiss  = "miss"
	lookupError = "error"
)

// instrumentedRollupCache counts lookups and invalidations of the wrapped cache.
type instrumentedRollupCache struct {
	next          adapter.RollupCache
	lookups       *prometheus.CounterVec
	writeFailures prometheus.Counter
	invalidations prometheus.Counter
}

// NewInstrumentedRollupCache wraps next and registers its collectors with registerer.
func NewInstrumentedRollupCache(next adapter.RollupCache, registerer prometheus.Registerer) adapter.RollupCache {
	c := &instrumentedRollupCache{
		next: next,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carbonyx",
			Subsystem: "rollup_cache",
			Name:      "lookups_total",
			Help:      "Rollup cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		writeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carbonyx",
			Subsystem: "rollup_cache",
			Name:      "write_failures_total",
			Help:      "Rollup cache writes that failed.",
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carbonyx",
			Subsystem: "rollup_cache",
			Name:      "invalidations_total",
			Help:      "Organizations whose cached rollups were dropped after a write.",
		}),
	}
	registerer.MustRegister(c.lookups, c.writeFailures, c.invalidations)
	return c
}

func (c *instrumentedRollupCache) Generation(ctx context.Context, organizationID string) (int64, error) {
	generation, err := c.next.Generation(ctx, organizationID)
	if err != nil {
		c.lookups.WithLabelValues(lookupError).Inc()
	}
	return generation, err
}

func (c *instrumentedRollupCache) Get(ctx context.Context, organizationID, key string) ([]byte, error) {
	payload, err := c.next.Get(ctx, organizationID, key)
	switch {
	case err != nil:
		c.lookups.WithLabelValues(lookupError).Inc()
	case payload == nil:
		c.lookups.WithLabelValues(lookupMiss).Inc()
	default:
		c.lookups.WithLabelValues(lookupHit).Inc()
	}
	return payload, err
}

func (c *instrumentedRollupCache) Set(ctx context.Context, organizationID, key string, payload []byte) error {
	err := c.next.Set(ctx, organizationID, key, payload)
	if err != nil {
		c.writeFailures.Inc()
	}
	return err
}

func (c *instrumentedRollupCache) Invalidate(ctx context.Context, organizationID string) error {
	err := c.next.Invalidate(ctx, organizationID)
	if err == nil {
		c.invalidations.Inc()
	}
	return err
}
