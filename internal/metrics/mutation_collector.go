package metrics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
)

// MutationSource reports how many mutations each collection has seen. The
// memory backend implements it.
type MutationSource interface {
	MutationCounts() map[string]uint64
}

// MutationCollector exposes MutationSource counts as a counter per collection.
type MutationCollector struct {
	source MutationSource
	desc   *prometheus.Desc
}

// NewMutationCollector panics when source is nil.
func NewMutationCollector(source MutationSource) *MutationCollector {
	if source == nil {
		panic("metrics: mutation collector requires a source")
	}
	return &MutationCollector{
		source: source,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "mutations_total"),
			"Mutations applied to each collection since startup, seeding included.",
			[]string{"collection"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *MutationCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *MutationCollector) Collect(ch chan<- prometheus.Metric) {
	counts := c.source.MutationCounts()
	collections := make([]string, 0, len(counts))
	for collection := range counts {
		collections = append(collections, collection)
	}
	sort.Strings(collections)
	for _, collection := range collections {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.CounterValue, float64(counts[collection]), collection)
	}
}
