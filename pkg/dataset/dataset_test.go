package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/errors"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New("year", "technology", "value")
	require.NoError(t, err)

	rows := []map[string]cell.Value{
		{"year": cell.Number(2020), "technology": cell.Text("coal"), "value": cell.Number(10)},
		{"year": cell.Number(2030), "technology": cell.Text("coal"), "value": cell.Number(0)},
		{"year": cell.Number(2040), "technology": cell.Text("solar"), "value": cell.Empty()},
	}
	for _, row := range rows {
		require.NoError(t, tbl.AppendRow(row))
	}
	return tbl
}

func TestNewRejectsDuplicateColumns(t *testing.T) {
	_, err := New("year", "value", "year")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeDuplicate))
}

func TestCellAndSetCell(t *testing.T) {
	tbl := newTestTable(t)

	v, err := tbl.Cell(1, "value")
	require.NoError(t, err)
	assert.Equal(t, cell.Number(0), v)

	prev, err := tbl.SetCell(1, "value", cell.Number(99))
	require.NoError(t, err)
	assert.Equal(t, cell.Number(0), prev)

	v, err = tbl.Cell(1, "value")
	require.NoError(t, err)
	assert.Equal(t, cell.Number(99), v)
}

func TestSetCellPreservesEmptyVersusZero(t *testing.T) {
	tbl := newTestTable(t)

	// Row 2 holds the empty cell, not zero.
	prev, err := tbl.SetCell(2, "value", cell.Number(0))
	require.NoError(t, err)
	assert.True(t, prev.IsEmpty())
	assert.False(t, prev.Equal(cell.Number(0)))

	// Writing the captured value back restores the empty cell exactly.
	_, err = tbl.SetCell(2, "value", prev)
	require.NoError(t, err)
	v, err := tbl.Cell(2, "value")
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
}

func TestCellErrors(t *testing.T) {
	tbl := newTestTable(t)

	_, err := tbl.Cell(0, "nope")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	_, err = tbl.Cell(3, "value")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	_, err = tbl.SetCell(-1, "value", cell.Number(1))
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestInsertColumn(t *testing.T) {
	tbl := newTestTable(t)

	require.NoError(t, tbl.InsertColumn("unit", 1, cell.Text("GWa")))
	assert.Equal(t, []string{"year", "unit", "technology", "value"}, tbl.ColumnNames())

	for row := 0; row < tbl.RowCount(); row++ {
		v, err := tbl.Cell(row, "unit")
		require.NoError(t, err)
		assert.Equal(t, cell.Text("GWa"), v)
	}

	// Lookups by name stay correct after the shift.
	v, err := tbl.Cell(0, "technology")
	require.NoError(t, err)
	assert.Equal(t, cell.Text("coal"), v)
}

func TestInsertColumnAtEnd(t *testing.T) {
	tbl := newTestTable(t)
	require.NoError(t, tbl.InsertColumn("note", tbl.ColumnCount(), cell.Empty()))
	assert.Equal(t, []string{"year", "technology", "value", "note"}, tbl.ColumnNames())
}

func TestInsertColumnErrors(t *testing.T) {
	tbl := newTestTable(t)

	err := tbl.InsertColumn("value", 0, cell.Empty())
	assert.True(t, errors.IsType(err, errors.ErrorTypeDuplicate))

	err = tbl.InsertColumn("unit", 4, cell.Empty())
	assert.True(t, errors.IsType(err, errors.ErrorTypePosition))

	err = tbl.InsertColumn("unit", -1, cell.Empty())
	assert.True(t, errors.IsType(err, errors.ErrorTypePosition))

	// Failed inserts leave the table untouched.
	assert.Equal(t, []string{"year", "technology", "value"}, tbl.ColumnNames())
}

func TestDeleteAndRestoreColumn(t *testing.T) {
	tbl := newTestTable(t)
	want := tbl.Clone()

	values, pos, err := tbl.DeleteColumn("technology")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Len(t, values, 3)
	assert.False(t, tbl.HasColumn("technology"))
	assert.Equal(t, []string{"year", "value"}, tbl.ColumnNames())

	require.NoError(t, tbl.RestoreColumn("technology", pos, values))
	assert.True(t, tbl.Equal(want))
}

func TestRestoreColumnErrors(t *testing.T) {
	tbl := newTestTable(t)

	err := tbl.RestoreColumn("value", 0, make([]cell.Value, 3))
	assert.True(t, errors.IsType(err, errors.ErrorTypeDuplicate))

	err = tbl.RestoreColumn("unit", 0, make([]cell.Value, 2))
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestReplaceColumn(t *testing.T) {
	tbl := newTestTable(t)

	next := []cell.Value{cell.Number(1), cell.Empty(), cell.Number(3)}
	prev, err := tbl.ReplaceColumn("value", next)
	require.NoError(t, err)
	assert.Equal(t, []cell.Value{cell.Number(10), cell.Number(0), cell.Empty()}, prev)

	got, err := tbl.Column("value")
	require.NoError(t, err)
	assert.Equal(t, next, got)

	// prev is a copy, detached from the live column.
	prev[0] = cell.Text("mutated")
	got, err = tbl.Column("value")
	require.NoError(t, err)
	assert.Equal(t, cell.Number(1), got[0])
}

func TestReplaceColumnLengthMismatch(t *testing.T) {
	tbl := newTestTable(t)
	_, err := tbl.ReplaceColumn("value", []cell.Value{cell.Number(1)})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestAppendRowFillsMissingColumns(t *testing.T) {
	tbl := newTestTable(t)
	require.NoError(t, tbl.AppendRow(map[string]cell.Value{"year": cell.Number(2050)}))

	row, err := tbl.Row(3)
	require.NoError(t, err)
	assert.Equal(t, cell.Number(2050), row["year"])
	assert.True(t, row["technology"].IsEmpty())
	assert.True(t, row["value"].IsEmpty())
}

func TestAppendRowRejectsUnknownColumn(t *testing.T) {
	tbl := newTestTable(t)
	err := tbl.AppendRow(map[string]cell.Value{"nope": cell.Number(1)})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	assert.Equal(t, 3, tbl.RowCount())
}

func TestCloneIsDeep(t *testing.T) {
	tbl := newTestTable(t)
	clone := tbl.Clone()
	assert.True(t, tbl.Equal(clone))

	_, err := clone.SetCell(0, "value", cell.Number(-1))
	require.NoError(t, err)
	assert.False(t, tbl.Equal(clone))

	v, err := tbl.Cell(0, "value")
	require.NoError(t, err)
	assert.Equal(t, cell.Number(10), v)
}

func TestEqualDistinguishesEmptyFromZero(t *testing.T) {
	a := newTestTable(t)
	b := newTestTable(t)
	require.True(t, a.Equal(b))

	_, err := b.SetCell(2, "value", cell.Number(0))
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}
