// Package metrics provides Prometheus metrics for the Helios editing engine.
//
// The engine itself has no HTTP surface; embedders expose the default
// registry however they serve metrics. All collectors are registered once at
// package init and are safe for concurrent use.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsExecuted counts command executions by command description
	// prefix and outcome ("ok" or "error").
	CommandsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "helios",
		Name:      "commands_total",
		Help:      "Total commands executed, by command kind and outcome",
	}, []string{"command", "outcome"})

	// UndoTotal counts undo operations by outcome.
	UndoTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "helios",
		Name:      "undo_total",
		Help:      "Total undo operations, by outcome",
	}, []string{"outcome"})

	// RedoTotal counts redo operations by outcome.
	RedoTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "helios",
		Name:      "redo_total",
		Help:      "Total redo operations, by outcome",
	}, []string{"outcome"})

	// HistoryEvictions counts undo entries silently dropped at the depth bound.
	HistoryEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "helios",
		Name:      "history_evictions_total",
		Help:      "Undo entries evicted because the history reached its depth bound",
	})

	// HistoryDepth tracks the current depth of the undo and redo stacks.
	HistoryDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "helios",
		Name:      "history_depth",
		Help:      "Current depth of the undo and redo stacks",
	}, []string{"stack"})
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
