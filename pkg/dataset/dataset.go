// Package dataset provides the ordered, column-major table that holds one
// parameter's data.
//
// A Table is a sequence of named columns, each holding exactly one typed cell
// per row. Column names are unique; column order matters for display and for
// restoring deleted columns, while lookups go by name. All mutating
// operations validate their preconditions before touching any state, so a
// failed call leaves the table unchanged.
//
// Tables are not synchronized. The engine executes commands on a single
// goroutine per document; the document layer serializes any external access.
package dataset

import (
	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/errors"
)

// column is one named, ordered sequence of cells.
type column struct {
	name   string
	values []cell.Value
}

// Table is a mutable ordered table of typed cells.
type Table struct {
	columns []column
	index   map[string]int // column name -> position
	rows    int
}

// New creates a table with the given column names and zero rows.
func New(columnNames ...string) (*Table, error) {
	t := &Table{
		columns: make([]column, 0, len(columnNames)),
		index:   make(map[string]int, len(columnNames)),
	}
	for _, name := range columnNames {
		if _, exists := t.index[name]; exists {
			return nil, errors.Newf(errors.ErrorTypeDuplicate,
				"column %q already exists", name)
		}
		t.index[name] = len(t.columns)
		t.columns = append(t.columns, column{name: name})
	}
	return t, nil
}

// ColumnNames returns the column names in display order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the value at the given row and column.
func (t *Table) Cell(row int, name string) (cell.Value, error) {
	pos, ok := t.index[name]
	if !ok {
		return cell.Value{}, errors.Newf(errors.ErrorTypeNotFound,
			"column %q does not exist", name)
	}
	if row < 0 || row >= t.rows {
		return cell.Value{}, errors.Newf(errors.ErrorTypeNotFound,
			"row %d out of range (%d rows)", row, t.rows)
	}
	return t.columns[pos].values[row], nil
}

// SetCell overwrites the value at the given row and column and returns the
// previous value, preserving the zero-vs-empty distinction in both directions.
func (t *Table) SetCell(row int, name string, v cell.Value) (cell.Value, error) {
	pos, ok := t.index[name]
	if !ok {
		return cell.Value{}, errors.Newf(errors.ErrorTypeNotFound,
			"column %q does not exist", name)
	}
	if row < 0 || row >= t.rows {
		return cell.Value{}, errors.Newf(errors.ErrorTypeNotFound,
			"row %d out of range (%d rows)", row, t.rows)
	}
	prev := t.columns[pos].values[row]
	t.columns[pos].values[row] = v
	return prev, nil
}

// InsertColumn inserts a new column at the given position, filling every row
// with the fill value. Position len(columns) appends at the end.
func (t *Table) InsertColumn(name string, pos int, fill cell.Value) error {
	if _, exists := t.index[name]; exists {
		return errors.Newf(errors.ErrorTypeDuplicate,
			"column %q already exists", name)
	}
	if pos < 0 || pos > len(t.columns) {
		return errors.Newf(errors.ErrorTypePosition,
			"insert position %d out of range (%d columns)", pos, len(t.columns))
	}

	values := make([]cell.Value, t.rows)
	for i := range values {
		values[i] = fill
	}

	t.columns = append(t.columns, column{})
	copy(t.columns[pos+1:], t.columns[pos:])
	t.columns[pos] = column{name: name, values: values}
	t.reindex(pos)
	return nil
}

// DeleteColumn removes a column and returns its values and original position
// so the caller can restore it verbatim.
func (t *Table) DeleteColumn(name string) ([]cell.Value, int, error) {
	pos, ok := t.index[name]
	if !ok {
		return nil, 0, errors.Newf(errors.ErrorTypeNotFound,
			"column %q does not exist", name)
	}

	removed := t.columns[pos].values
	t.columns = append(t.columns[:pos], t.columns[pos+1:]...)
	delete(t.index, name)
	t.reindex(pos)
	return removed, pos, nil
}

// RestoreColumn reinserts a previously deleted column with its captured
// values at its original position. The value count must match the row count.
func (t *Table) RestoreColumn(name string, pos int, values []cell.Value) error {
	if _, exists := t.index[name]; exists {
		return errors.Newf(errors.ErrorTypeDuplicate,
			"column %q already exists", name)
	}
	if pos < 0 || pos > len(t.columns) {
		return errors.Newf(errors.ErrorTypePosition,
			"restore position %d out of range (%d columns)", pos, len(t.columns))
	}
	if len(values) != t.rows {
		return errors.Newf(errors.ErrorTypeValidation,
			"column %q has %d values, table has %d rows", name, len(values), t.rows)
	}

	t.columns = append(t.columns, column{})
	copy(t.columns[pos+1:], t.columns[pos:])
	t.columns[pos] = column{name: name, values: values}
	t.reindex(pos)
	return nil
}

// Column returns a copy of the column's values in row order.
func (t *Table) Column(name string) ([]cell.Value, error) {
	pos, ok := t.index[name]
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeNotFound,
			"column %q does not exist", name)
	}
	out := make([]cell.Value, t.rows)
	copy(out, t.columns[pos].values)
	return out, nil
}

// ReplaceColumn overwrites every value in a column and returns a copy of the
// previous values. The replacement must cover every row exactly.
func (t *Table) ReplaceColumn(name string, values []cell.Value) ([]cell.Value, error) {
	pos, ok := t.index[name]
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeNotFound,
			"column %q does not exist", name)
	}
	if len(values) != t.rows {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"replacement has %d values, column %q has %d rows", len(values), name, t.rows)
	}

	prev := make([]cell.Value, t.rows)
	copy(prev, t.columns[pos].values)
	copy(t.columns[pos].values, values)
	return prev, nil
}

// AppendRow adds a row. Columns not present in the map are filled with the
// empty cell; keys that name no column fail before any mutation.
func (t *Table) AppendRow(values map[string]cell.Value) error {
	for name := range values {
		if _, ok := t.index[name]; !ok {
			return errors.Newf(errors.ErrorTypeNotFound,
				"column %q does not exist", name)
		}
	}
	for i := range t.columns {
		t.columns[i].values = append(t.columns[i].values, values[t.columns[i].name])
	}
	t.rows++
	return nil
}

// Row returns a copy of one row as a column-name keyed map.
func (t *Table) Row(row int) (map[string]cell.Value, error) {
	if row < 0 || row >= t.rows {
		return nil, errors.Newf(errors.ErrorTypeNotFound,
			"row %d out of range (%d rows)", row, t.rows)
	}
	out := make(map[string]cell.Value, len(t.columns))
	for _, c := range t.columns {
		out[c.name] = c.values[row]
	}
	return out, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	clone := &Table{
		columns: make([]column, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
		rows:    t.rows,
	}
	for i, c := range t.columns {
		values := make([]cell.Value, len(c.values))
		copy(values, c.values)
		clone.columns[i] = column{name: c.name, values: values}
		clone.index[c.name] = i
	}
	return clone
}

// Equal reports whether two tables have identical column order, names, and
// cell values.
func (t *Table) Equal(other *Table) bool {
	if other == nil || t.rows != other.rows || len(t.columns) != len(other.columns) {
		return false
	}
	for i, c := range t.columns {
		oc := other.columns[i]
		if c.name != oc.name {
			return false
		}
		for r := 0; r < t.rows; r++ {
			if !c.values[r].Equal(oc.values[r]) {
				return false
			}
		}
	}
	return true
}

// reindex rebuilds the name index from the given position onward.
func (t *Table) reindex(from int) {
	for i := from; i < len(t.columns); i++ {
		t.index[t.columns[i].name] = i
	}
}
