package command

import (
	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/dataset"
	"github.com/helios-model/helios/pkg/errors"
	stringpool "github.com/helios-model/helios/pkg/strings"
)

// InsertColumn adds a new column at a display position, filled with one value.
type InsertColumn struct {
	table *dataset.Table
	param string
	name  string
	pos   int
	fill  cell.Value
}

// NewInsertColumn creates a column insert command.
func NewInsertColumn(table *dataset.Table, param, name string, pos int, fill cell.Value) *InsertColumn {
	return &InsertColumn{table: table, param: param, name: name, pos: pos, fill: fill}
}

// Do inserts the column.
func (c *InsertColumn) Do() error {
	return c.table.InsertColumn(c.name, c.pos, c.fill)
}

// Undo deletes the inserted column. By stack discipline any later edits to it
// have already been undone, so the discarded values equal the fill.
func (c *InsertColumn) Undo() error {
	_, _, err := c.table.DeleteColumn(c.name)
	return err
}

// Description returns a label for undo menus.
func (c *InsertColumn) Description() string {
	return stringpool.Sprintf("Insert column %s (%s)", c.name, c.param)
}

// DeleteColumn removes a column, capturing its values and position on Do.
type DeleteColumn struct {
	table *dataset.Table
	param string
	name  string

	values []cell.Value
	pos    int
}

// NewDeleteColumn creates a column delete command.
func NewDeleteColumn(table *dataset.Table, param, name string) *DeleteColumn {
	return &DeleteColumn{table: table, param: param, name: name}
}

// Do removes the column and captures it for Undo.
func (c *DeleteColumn) Do() error {
	values, pos, err := c.table.DeleteColumn(c.name)
	if err != nil {
		return err
	}
	c.values = values
	c.pos = pos
	return nil
}

// Undo reinserts the column at its original position with its captured values.
func (c *DeleteColumn) Undo() error {
	return c.table.RestoreColumn(c.name, c.pos, c.values)
}

// Description returns a label for undo menus.
func (c *DeleteColumn) Description() string {
	return stringpool.Sprintf("Delete column %s (%s)", c.name, c.param)
}

// PasteColumn overwrites a column with already-typed values. Parsing of the
// clipboard text happens in the clipboard codec before the command exists.
type PasteColumn struct {
	table  *dataset.Table
	param  string
	column string
	values []cell.Value

	prev []cell.Value
}

// NewPasteColumn creates a column paste command. The values must cover every
// row of the column; a mismatch fails Do before any mutation.
func NewPasteColumn(table *dataset.Table, param, column string, values []cell.Value) *PasteColumn {
	return &PasteColumn{table: table, param: param, column: column, values: values}
}

// Do replaces the column values, capturing the prior values for Undo.
func (c *PasteColumn) Do() error {
	prev, err := c.table.ReplaceColumn(c.column, c.values)
	if err != nil {
		return err
	}
	c.prev = prev
	return nil
}

// Undo restores the prior column values.
func (c *PasteColumn) Undo() error {
	if c.prev == nil {
		return errors.New(errors.ErrorTypeInternal, "paste command undone before Do")
	}
	_, err := c.table.ReplaceColumn(c.column, c.prev)
	return err
}

// Description returns a label for undo menus.
func (c *PasteColumn) Description() string {
	return stringpool.Sprintf("Paste into column %s (%s)", c.column, c.param)
}

// CutColumn clears every value of a column to empty. The structural column
// stays; writing the cut text to the system clipboard is the caller's side
// effect and is not undoable.
type CutColumn struct {
	table  *dataset.Table
	param  string
	column string

	prev []cell.Value
}

// NewCutColumn creates a column cut command.
func NewCutColumn(table *dataset.Table, param, column string) *CutColumn {
	return &CutColumn{table: table, param: param, column: column}
}

// Do clears the column to empty cells, capturing the prior values for Undo.
func (c *CutColumn) Do() error {
	empties := make([]cell.Value, c.table.RowCount())
	prev, err := c.table.ReplaceColumn(c.column, empties)
	if err != nil {
		return err
	}
	c.prev = prev
	return nil
}

// Undo restores the prior column values.
func (c *CutColumn) Undo() error {
	if c.prev == nil {
		return errors.New(errors.ErrorTypeInternal, "cut command undone before Do")
	}
	_, err := c.table.ReplaceColumn(c.column, c.prev)
	return err
}

// Description returns a label for undo menus.
func (c *CutColumn) Description() string {
	return stringpool.Sprintf("Cut column %s (%s)", c.column, c.param)
}
