package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var evaluations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "engine_node_evaluations_total",
		Help: "How many times a node of the computation graph was evaluated, partitioned by node and result.",
	},
	[]string{"node", "result"},
)

// Collectors returns the Prometheus collectors of the engine.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{evaluations}
}

// node memoizes the last evaluation of a pure function.
//
// The version is incremented on every recomputation. Downstream nodes use it
// in their keys instead of comparing the values themselves.
type node[K comparable, V any] struct {
	name     string
	valid    bool
	key      K
	value    V
	version  uint64
	computes int
}

// get returns the memoized value when key equals the key of the last
// evaluation, otherwise it calls compute and remembers the result.
func (n *node[K, V]) get(scope string, key K, compute func() V) (V, uint64) {
	if n.valid && n.key == key {
		evaluations.WithLabelValues(n.name, "hit").Inc()
		return n.value, n.version
	}

	n.value = compute()
	n.key = key
	n.valid = true
	n.version++
	n.computes++

	evaluations.WithLabelValues(n.name, "compute").Inc()
	log.Debug().Str("node", n.name).Str("scope", scope).Uint64("version", n.version).Msg("engine recomputed")

	return n.value, n.version
}
