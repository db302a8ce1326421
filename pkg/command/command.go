// Package command implements the reversible edit commands for Helios.
//
// Every user edit is a self-contained Command: Do applies the change, Undo
// restores the exact observable state from before Do, including column order
// and the zero-vs-empty cell distinction. Commands capture the minimal
// pre-state they need at Do time and are otherwise immutable; they never
// snapshot whole tables.
//
// All preconditions are checked by the dataset and scenario layers before any
// mutation, so a Command that returns an error from Do has changed nothing
// and must not be pushed onto the history stack.
package command

// Command is a self-contained, reversible description of one user edit.
type Command interface {
	// Do applies the change. On error no state has been modified.
	Do() error

	// Undo reverses a successful Do, restoring the prior observable state.
	Undo() error

	// Description returns a short human-readable label for undo menus.
	Description() string
}
