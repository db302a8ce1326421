// Package history maintains the bounded undo/redo stack for one document.
//
// Commands live in exactly two states: applied (on the undo stack) or
// reversed (on the redo stack). Any successful Execute clears the redo stack.
// When the undo stack exceeds its depth bound the oldest entry is evicted
// silently; that entry is permanently unrecoverable, which is the documented
// trade-off for very long sessions rather than a bug.
package history

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helios-model/helios/pkg/command"
	"github.com/helios-model/helios/pkg/logger"
	"github.com/helios-model/helios/pkg/metrics"
)

// DefaultMaxDepth bounds the undo stack when no explicit depth is configured.
const DefaultMaxDepth = 50

// State is the observable stack state published to subscribers after every
// successful Execute, Undo, Redo, or Clear.
type State struct {
	CanUndo   bool
	CanRedo   bool
	UndoDepth int
	RedoDepth int
}

// EntryInfo describes one stack entry for undo menus and logs.
type EntryInfo struct {
	ID          string
	Description string
	Timestamp   time.Time
}

// entry wraps a command with identity and timing metadata.
type entry struct {
	id        string
	command   command.Command
	timestamp time.Time
}

func (e *entry) info() EntryInfo {
	return EntryInfo{
		ID:          e.id,
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
	}
}

// Stack manages undo/redo state for a document.
type Stack struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	// Grouping state
	grouping bool
	group    *command.Compound

	maxDepth int
	log      *zap.Logger

	subscribers map[int]func(State)
	nextSub     int
}

// Option configures a Stack.
type Option func(*Stack)

// WithLogger overrides the global logger, mainly for tests.
func WithLogger(log *zap.Logger) Option {
	return func(s *Stack) { s.log = log }
}

// NewStack creates a stack bounded to maxDepth entries. Non-positive depths
// fall back to DefaultMaxDepth.
func NewStack(maxDepth int, opts ...Option) *Stack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	s := &Stack{
		maxDepth:    maxDepth,
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// Execute runs a command and, on success, pushes it onto the undo stack and
// clears the redo stack. On failure the error propagates and neither stack is
// modified; the caller must not retry without correcting input.
func (s *Stack) Execute(cmd command.Command) error {
	kind := commandKind(cmd)
	if err := cmd.Do(); err != nil {
		metrics.CommandsExecuted.WithLabelValues(kind, metrics.OutcomeError).Inc()
		s.log.Warn("command failed",
			zap.String("command", cmd.Description()),
			zap.Error(err))
		return err
	}
	metrics.CommandsExecuted.WithLabelValues(kind, metrics.OutcomeOK).Inc()

	s.mu.Lock()
	if s.grouping {
		s.group.Add(cmd)
		s.mu.Unlock()
		return nil
	}
	s.pushLocked(cmd)
	s.mu.Unlock()

	s.log.Debug("command executed", zap.String("command", cmd.Description()))
	s.notify()
	return nil
}

// pushLocked appends a command, clears redo, and enforces the depth bound.
func (s *Stack) pushLocked(cmd command.Command) {
	s.undoStack = append(s.undoStack, &entry{
		id:        uuid.NewString(),
		command:   cmd,
		timestamp: time.Now(),
	})
	s.redoStack = nil

	if excess := len(s.undoStack) - s.maxDepth; excess > 0 {
		s.undoStack = append(s.undoStack[:0:0], s.undoStack[excess:]...)
		metrics.HistoryEvictions.Add(float64(excess))
		s.log.Debug("history entries evicted", zap.Int("count", excess))
	}
	s.updateDepthLocked()
}

// Undo reverses the most recent command. It returns false when there is
// nothing to undo or the command's Undo failed; a failed entry is put back so
// the stacks stay consistent.
func (s *Stack) Undo() bool {
	s.mu.Lock()
	if len(s.undoStack) == 0 {
		s.mu.Unlock()
		return false
	}
	e := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.mu.Unlock()

	if err := e.command.Undo(); err != nil {
		metrics.UndoTotal.WithLabelValues(metrics.OutcomeError).Inc()
		s.log.Warn("undo failed",
			zap.String("command", e.command.Description()),
			zap.String("command_id", e.id),
			zap.Error(err))
		s.mu.Lock()
		s.undoStack = append(s.undoStack, e)
		s.mu.Unlock()
		return false
	}
	metrics.UndoTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	s.mu.Lock()
	s.redoStack = append(s.redoStack, e)
	s.updateDepthLocked()
	s.mu.Unlock()

	s.log.Debug("command undone", zap.String("command", e.command.Description()))
	s.notify()
	return true
}

// Redo re-applies the most recently undone command. It returns false when
// there is nothing to redo or the command's Do failed.
func (s *Stack) Redo() bool {
	s.mu.Lock()
	if len(s.redoStack) == 0 {
		s.mu.Unlock()
		return false
	}
	e := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.mu.Unlock()

	if err := e.command.Do(); err != nil {
		metrics.RedoTotal.WithLabelValues(metrics.OutcomeError).Inc()
		s.log.Warn("redo failed",
			zap.String("command", e.command.Description()),
			zap.String("command_id", e.id),
			zap.Error(err))
		s.mu.Lock()
		s.redoStack = append(s.redoStack, e)
		s.mu.Unlock()
		return false
	}
	metrics.RedoTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	s.mu.Lock()
	s.undoStack = append(s.undoStack, e)
	s.updateDepthLocked()
	s.mu.Unlock()

	s.log.Debug("command redone", zap.String("command", e.command.Description()))
	s.notify()
	return true
}

// CanUndo reports whether an undo is available.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack) > 0
}

// CanRedo reports whether a redo is available.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redoStack) > 0
}

// UndoCount returns the number of undoable operations.
func (s *Stack) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack)
}

// RedoCount returns the number of redoable operations.
func (s *Stack) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redoStack)
}

// UndoDescription returns the label of the next undoable command, or "".
func (s *Stack) UndoDescription() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undoStack) == 0 {
		return ""
	}
	return s.undoStack[len(s.undoStack)-1].command.Description()
}

// RedoDescription returns the label of the next redoable command, or "".
func (s *Stack) RedoDescription() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redoStack) == 0 {
		return ""
	}
	return s.redoStack[len(s.redoStack)-1].command.Description()
}

// UndoLog returns metadata for every undoable entry, oldest first.
func (s *Stack) UndoLog() []EntryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EntryInfo, len(s.undoStack))
	for i, e := range s.undoStack {
		out[i] = e.info()
	}
	return out
}

// RedoLog returns metadata for every redoable entry, oldest first.
func (s *Stack) RedoLog() []EntryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EntryInfo, len(s.redoStack))
	for i, e := range s.redoStack {
		out[i] = e.info()
	}
	return out
}

// MaxDepth returns the configured depth bound.
func (s *Stack) MaxDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxDepth
}

// Clear empties both stacks, typically when a document is loaded or closed.
func (s *Stack) Clear() {
	s.mu.Lock()
	s.undoStack = nil
	s.redoStack = nil
	s.grouping = false
	s.group = nil
	s.updateDepthLocked()
	s.mu.Unlock()
	s.notify()
}

// BeginGroup starts collecting executed commands into a single undo unit.
// Nested calls are ignored.
func (s *Stack) BeginGroup(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grouping {
		return
	}
	s.grouping = true
	s.group = command.NewCompound(name)
}

// EndGroup pushes the collected group as one undo unit. An empty group is
// dropped.
func (s *Stack) EndGroup() {
	s.mu.Lock()
	if !s.grouping {
		s.mu.Unlock()
		return
	}
	s.grouping = false
	group := s.group
	s.group = nil
	if group.Len() == 0 {
		s.mu.Unlock()
		return
	}
	s.pushLocked(group)
	s.mu.Unlock()
	s.notify()
}

// CancelGroup discards the collected group without pushing it. Commands
// already executed still affect the document, so a non-empty cancelled group
// invalidates the redo branch the same way a pushed command would.
func (s *Stack) CancelGroup() {
	s.mu.Lock()
	if !s.grouping {
		s.mu.Unlock()
		return
	}
	s.grouping = false
	group := s.group
	s.group = nil
	if group.Len() == 0 {
		s.mu.Unlock()
		return
	}
	s.redoStack = nil
	s.updateDepthLocked()
	s.mu.Unlock()
	s.notify()
}

// IsGrouping reports whether a group is open.
func (s *Stack) IsGrouping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grouping
}

// Subscribe registers a state-change listener and returns its cancel
// function. Listeners run synchronously after each successful state change,
// on the calling goroutine, so UI layers can re-render directly.
func (s *Stack) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// StackState returns the current observable state.
func (s *Stack) StackState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Stack) stateLocked() State {
	return State{
		CanUndo:   len(s.undoStack) > 0,
		CanRedo:   len(s.redoStack) > 0,
		UndoDepth: len(s.undoStack),
		RedoDepth: len(s.redoStack),
	}
}

// notify publishes the current state to all subscribers outside the lock.
func (s *Stack) notify() {
	s.mu.Lock()
	state := s.stateLocked()
	fns := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

func (s *Stack) updateDepthLocked() {
	metrics.HistoryDepth.WithLabelValues("undo").Set(float64(len(s.undoStack)))
	metrics.HistoryDepth.WithLabelValues("redo").Set(float64(len(s.redoStack)))
}

// commandKind derives a low-cardinality metrics label from the concrete
// command type.
func commandKind(cmd command.Command) string {
	name := fmt.Sprintf("%T", cmd)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
