// (c) 2024, adapted for this module, grounded on the teacher's own
// github.com/prometheus/client_golang dependency (wired through an
// avalanchego-specific bridge in plugin/evm/vm.go) and the idiomatic
// promauto registration pattern the wider prometheus/client_golang
// ecosystem uses in place of that bridge. See the file LICENSE for
// licensing terms.

// Package metrics instruments the interpreter: opcodes executed, gas
// consumed, and call depth reached. Nothing in this module starts an
// HTTP exporter - the embedding binary that does is expected to
// register prometheus.DefaultGatherer with its own mux.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OpcodesExecuted counts executed opcodes by mnemonic.
	OpcodesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evmcore",
		Subsystem: "interpreter",
		Name:      "opcodes_executed_total",
		Help:      "Number of opcodes executed, labeled by mnemonic.",
	}, []string{"opcode"})

	// GasConsumed tracks per-call gas usage.
	GasConsumed = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "evmcore",
		Subsystem: "interpreter",
		Name:      "gas_consumed",
		Help:      "Gas consumed per top-level Call/Create.",
		Buckets:   prometheus.ExponentialBuckets(1000, 4, 10),
	})

	// CallDepth records the nesting depth of every frame that runs.
	CallDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "evmcore",
		Subsystem: "interpreter",
		Name:      "call_depth",
		Help:      "Call/create nesting depth of each executed frame.",
		Buckets:   prometheus.LinearBuckets(0, 64, 17), // 0..1024 in steps of 64
	})

	// PrecompileCalls counts dispatches to each precompile address.
	PrecompileCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evmcore",
		Subsystem: "interpreter",
		Name:      "precompile_calls_total",
		Help:      "Number of precompile dispatches, labeled by address.",
	}, []string{"address"})
)
