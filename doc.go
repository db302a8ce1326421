// Package helios provides an in-memory editing engine for energy-systems
// scenario data: named tabular parameters with typed cells, mutated through
// a reversible command system with bounded undo/redo history.
//
// Helios is the engine layer a scenario editor embeds. The UI, Excel
// round-trip, and solver integration stay outside; the engine's contract is
// discrete user intents in, commands out, and a state-change notification
// after every execute, undo, or redo.
//
// # Architecture
//
// The engine is layered, leaf first:
//
// 1. cell.Value: a tagged variant of number, text, or empty. The empty cell
// is distinct from zero and survives every command, undo, and clipboard
// round trip.
//
// 2. dataset.Table: an ordered, column-major table of typed cells with
// precondition-checked structural operations (insert, delete, and restore of
// whole columns).
//
// 3. scenario.Scenario: the named parameter collection of one document, with
// dimension/unit metadata, set collections, and modified tracking.
//
// 4. command: self-contained reversible commands (cell edit, column
// insert/delete/paste/cut, parameter add/remove, compound groups) that
// capture the minimal pre-state they need at Do time.
//
// 5. history.Stack: the bounded undo/redo stack with redo invalidation,
// silent depth eviction, grouping, and observer notifications.
//
// # Quick Start
//
// Edit a scenario through a document:
//
//	import (
//	    "github.com/helios-model/helios/internal/document"
//	    "github.com/helios-model/helios/pkg/cell"
//	    "github.com/helios-model/helios/pkg/config"
//	    "github.com/helios-model/helios/pkg/scenario"
//	)
//
//	sc := scenario.New("baseline")
//	doc := document.New(sc, config.New())
//
//	if err := doc.EditCell("demand", 2, "value", cell.Number(42)); err != nil {
//	    // surface to the user; nothing was modified
//	}
//	doc.Undo()
//	doc.Redo()
package helios
