// Package document ties one scenario to one undo/redo stack and translates
// user intents into commands.
//
// A Document is the unit of editing: it owns the scenario, the history
// stack, and the clipboard codec, and it serializes every operation behind a
// single mutex so commands are totally ordered even if the embedder calls in
// from more than one goroutine. While external I/O (load, save, solver run)
// is in flight the embedder marks the document read-only, which fails every
// mutator instead of letting the edit race the I/O.
//
// Documents are plain values passed by reference; there is no global active
// document.
package document

import (
	"sync"

	"go.uber.org/zap"

	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/clipboard"
	"github.com/helios-model/helios/pkg/command"
	"github.com/helios-model/helios/pkg/config"
	"github.com/helios-model/helios/pkg/dataset"
	"github.com/helios-model/helios/pkg/errors"
	"github.com/helios-model/helios/pkg/history"
	"github.com/helios-model/helios/pkg/logger"
	"github.com/helios-model/helios/pkg/scenario"
)

// ValueColumn is the conventional name of the numeric value column in a
// message_ix parameter table. Pasting into it coerces text to numbers.
const ValueColumn = "value"

// Document is one open scenario with its editing state.
type Document struct {
	mu sync.Mutex

	scenario *scenario.Scenario
	stack    *history.Stack
	codec    clipboard.Codec
	log      *zap.Logger

	readOnly bool
}

// New creates a document for a scenario using the given configuration.
func New(sc *scenario.Scenario, cfg *config.Config) *Document {
	if cfg == nil {
		cfg = config.New()
	}
	return &Document{
		scenario: sc,
		stack:    history.NewStack(cfg.History.MaxDepth),
		codec: clipboard.Codec{
			Delimiter:  cfg.Clipboard.DelimiterRune(),
			AutoDetect: cfg.Clipboard.DetectDelimiter,
		},
		log: logger.With(zap.String("scenario", sc.Name())),
	}
}

// Scenario returns the underlying scenario for read access.
func (d *Document) Scenario() *scenario.Scenario {
	return d.scenario
}

// Subscribe registers a history state listener, used by UI layers to enable
// and disable undo/redo menu items.
func (d *Document) Subscribe(fn func(history.State)) (cancel func()) {
	return d.stack.Subscribe(fn)
}

// EditCell sets one cell of a parameter to a new value.
func (d *Document) EditCell(param string, row int, column string, value cell.Value) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	table, err := d.editableTable(param)
	if err != nil {
		return err
	}
	return d.execute(param, command.NewEditCell(table, param, row, column, value))
}

// InsertColumn inserts a new column into a parameter at a display position.
func (d *Document) InsertColumn(param, name string, pos int, fill cell.Value) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	table, err := d.editableTable(param)
	if err != nil {
		return err
	}
	return d.execute(param, command.NewInsertColumn(table, param, name, pos, fill))
}

// DeleteColumn removes a column from a parameter.
func (d *Document) DeleteColumn(param, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	table, err := d.editableTable(param)
	if err != nil {
		return err
	}
	return d.execute(param, command.NewDeleteColumn(table, param, name))
}

// PasteText decodes clipboard text and pastes it into one column of a
// parameter. Parsing and numeric coercion happen here, before the command is
// built; the command stores only already-typed values. The pasted values
// must cover every row of the column.
func (d *Document) PasteText(param, column, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	table, err := d.editableTable(param)
	if err != nil {
		return err
	}

	values := d.codec.DecodeColumn(text)
	if column == ValueColumn {
		values, err = d.codec.Coerce(values, cell.KindNumber)
		if err != nil {
			return err
		}
	}
	return d.execute(param, command.NewPasteColumn(table, param, column, values))
}

// CopyColumn encodes one column of a parameter as clipboard text. It is a
// pure read: nothing is pushed onto the history.
func (d *Document) CopyColumn(param, column string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	table, _, err := d.scenario.Parameter(param)
	if err != nil {
		return "", err
	}
	values, err := table.Column(column)
	if err != nil {
		return "", err
	}
	return d.codec.EncodeColumn(values), nil
}

// CutColumn encodes one column as clipboard text and clears its values to
// empty. The returned text is the caller's to place on the OS clipboard;
// that side effect is outside the undo history, while the clearing is
// undoable.
func (d *Document) CutColumn(param, column string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	table, err := d.editableTable(param)
	if err != nil {
		return "", err
	}
	values, err := table.Column(column)
	if err != nil {
		return "", err
	}
	text := d.codec.EncodeColumn(values)

	if err := d.execute(param, command.NewCutColumn(table, param, column)); err != nil {
		return "", err
	}
	return text, nil
}

// AddParameter adds a named parameter to the scenario.
func (d *Document) AddParameter(name string, table *dataset.Table, meta scenario.Metadata) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkWritable(); err != nil {
		return err
	}
	return d.execute(name, command.NewAddParameter(d.scenario, name, table, meta))
}

// RemoveParameter removes a named parameter from the scenario.
func (d *Document) RemoveParameter(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkWritable(); err != nil {
		return err
	}
	return d.execute(name, command.NewRemoveParameter(d.scenario, name))
}

// Undo reverses the most recent command. It returns false when there is
// nothing to undo or the document is read-only.
func (d *Document) Undo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return false
	}
	return d.stack.Undo()
}

// Redo re-applies the most recently undone command. It returns false when
// there is nothing to redo or the document is read-only.
func (d *Document) Redo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return false
	}
	return d.stack.Redo()
}

// CanUndo reports whether an undo is available.
func (d *Document) CanUndo() bool {
	return d.stack.CanUndo()
}

// CanRedo reports whether a redo is available.
func (d *Document) CanRedo() bool {
	return d.stack.CanRedo()
}

// UndoDescription returns the label of the next undoable command, or "".
func (d *Document) UndoDescription() string {
	return d.stack.UndoDescription()
}

// RedoDescription returns the label of the next redoable command, or "".
func (d *Document) RedoDescription() string {
	return d.stack.RedoDescription()
}

// BeginGroup starts collecting subsequent edits into one undo unit.
func (d *Document) BeginGroup(name string) {
	d.stack.BeginGroup(name)
}

// EndGroup pushes the open group as one undo unit.
func (d *Document) EndGroup() {
	d.stack.EndGroup()
}

// SetReadOnly toggles the document boundary for external I/O. While
// read-only, every mutator and undo/redo is rejected.
func (d *Document) SetReadOnly(readOnly bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readOnly = readOnly
}

// ReadOnly reports whether the document is read-only.
func (d *Document) ReadOnly() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readOnly
}

// Close clears the undo/redo history. The scenario itself stays readable.
func (d *Document) Close() {
	d.stack.Clear()
	d.log.Debug("document closed")
}

// editableTable resolves a parameter's table after the writability check.
// Callers must hold the mutex.
func (d *Document) editableTable(param string) (*dataset.Table, error) {
	if err := d.checkWritable(); err != nil {
		return nil, err
	}
	table, _, err := d.scenario.Parameter(param)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (d *Document) checkWritable() error {
	if d.readOnly {
		return errors.New(errors.ErrorTypeValidation,
			"document is read-only while external I/O is in flight")
	}
	return nil
}

// execute runs a command through the history and marks the parameter
// modified on success. Callers must hold the mutex.
func (d *Document) execute(param string, cmd command.Command) error {
	if err := d.stack.Execute(cmd); err != nil {
		return err
	}
	d.scenario.MarkModified(param)
	return nil
}
