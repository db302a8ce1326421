package command

import (
	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/dataset"
	stringpool "github.com/helios-model/helios/pkg/strings"
)

// EditCell overwrites a single cell and remembers the previous value.
type EditCell struct {
	table    *dataset.Table
	param    string
	row      int
	column   string
	newValue cell.Value

	prev cell.Value
}

// NewEditCell creates a cell edit command against the given table. The param
// label is used only for the description.
func NewEditCell(table *dataset.Table, param string, row int, column string, newValue cell.Value) *EditCell {
	return &EditCell{
		table:    table,
		param:    param,
		row:      row,
		column:   column,
		newValue: newValue,
	}
}

// Do applies the edit, capturing the previous value for Undo. After an Undo,
// Do re-applies against the restored pre-state and recaptures the same value.
func (c *EditCell) Do() error {
	prev, err := c.table.SetCell(c.row, c.column, c.newValue)
	if err != nil {
		return err
	}
	c.prev = prev
	return nil
}

// Undo restores the previous value.
func (c *EditCell) Undo() error {
	_, err := c.table.SetCell(c.row, c.column, c.prev)
	return err
}

// Description returns a label for undo menus.
func (c *EditCell) Description() string {
	return stringpool.Sprintf("Edit cell in %s", c.param)
}
