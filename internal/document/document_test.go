package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/config"
	"github.com/helios-model/helios/pkg/errors"
	"github.com/helios-model/helios/pkg/history"
	"github.com/helios-model/helios/pkg/testutil"
)

func newTestDocument(t *testing.T) *Document {
	t.Helper()
	return New(testutil.DemandScenario(t), nil)
}

func demandCell(t *testing.T, d *Document, row int, column string) cell.Value {
	t.Helper()
	table, _, err := d.Scenario().Parameter("demand")
	require.NoError(t, err)
	v, err := table.Cell(row, column)
	require.NoError(t, err)
	return v
}

func TestEditCellUndoRedo(t *testing.T) {
	d := newTestDocument(t)

	require.NoError(t, d.EditCell("demand", 0, "value", cell.Number(99)))
	assert.Equal(t, cell.Number(99), demandCell(t, d, 0, "value"))
	assert.Equal(t, []string{"demand"}, d.Scenario().Modified())

	assert.True(t, d.Undo())
	assert.Equal(t, cell.Number(10), demandCell(t, d, 0, "value"))

	assert.True(t, d.Redo())
	assert.Equal(t, cell.Number(99), demandCell(t, d, 0, "value"))
}

func TestEditCellUnknownParameter(t *testing.T) {
	d := newTestDocument(t)
	err := d.EditCell("nope", 0, "value", cell.Number(1))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	assert.False(t, d.CanUndo())
}

func TestFailedEditDoesNotMarkModified(t *testing.T) {
	d := newTestDocument(t)
	err := d.EditCell("demand", 99, "value", cell.Number(1))
	require.Error(t, err)
	assert.Empty(t, d.Scenario().Modified())
	assert.False(t, d.CanUndo())
}

func TestInsertAndDeleteColumn(t *testing.T) {
	d := newTestDocument(t)

	require.NoError(t, d.InsertColumn("demand", "unit", 1, cell.Text("GWa")))
	table, _, err := d.Scenario().Parameter("demand")
	require.NoError(t, err)
	assert.Equal(t, []string{"year", "unit", "technology", "value"}, table.ColumnNames())

	require.NoError(t, d.DeleteColumn("demand", "unit"))
	assert.Equal(t, []string{"year", "technology", "value"}, table.ColumnNames())

	// Undo of the delete restores the column in place.
	assert.True(t, d.Undo())
	assert.Equal(t, []string{"year", "unit", "technology", "value"}, table.ColumnNames())
}

func TestPasteTextIntoValueColumn(t *testing.T) {
	d := newTestDocument(t)

	// The reference paste: the blank line lands as the missing cell, not 0.
	require.NoError(t, d.PasteText("demand", "value", "1\n\n0\n3"))
	assert.Equal(t, cell.Number(1), demandCell(t, d, 0, "value"))
	assert.True(t, demandCell(t, d, 1, "value").IsEmpty())
	assert.Equal(t, cell.Number(0), demandCell(t, d, 2, "value"))
	assert.Equal(t, cell.Number(3), demandCell(t, d, 3, "value"))

	// Undo restores all four prior values, including the old empty at row 2.
	assert.True(t, d.Undo())
	assert.Equal(t, cell.Number(10), demandCell(t, d, 0, "value"))
	assert.Equal(t, cell.Number(0), demandCell(t, d, 1, "value"))
	assert.True(t, demandCell(t, d, 2, "value").IsEmpty())
	assert.Equal(t, cell.Number(42.5), demandCell(t, d, 3, "value"))
}

func TestPasteTextCoercionFailure(t *testing.T) {
	d := newTestDocument(t)

	err := d.PasteText("demand", "value", "1\ncoal\n3\n4")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeCoercion))

	// Nothing changed and nothing was pushed.
	assert.Equal(t, cell.Number(10), demandCell(t, d, 0, "value"))
	assert.False(t, d.CanUndo())
}

func TestPasteTextIntoTextColumnKeepsText(t *testing.T) {
	d := newTestDocument(t)

	// Non-value columns take the parsed values as-is, no numeric coercion.
	require.NoError(t, d.PasteText("demand", "technology", "wind\nwind\nhydro\nhydro"))
	assert.Equal(t, cell.Text("wind"), demandCell(t, d, 0, "technology"))
}

func TestPasteTextLengthMismatch(t *testing.T) {
	d := newTestDocument(t)

	err := d.PasteText("demand", "value", "1\n2")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	assert.Equal(t, cell.Number(10), demandCell(t, d, 0, "value"))
}

func TestCopyColumn(t *testing.T) {
	d := newTestDocument(t)

	text, err := d.CopyColumn("demand", "value")
	require.NoError(t, err)
	assert.Equal(t, "10\n0\n\n42.5", text)

	// Copy is a pure read.
	assert.False(t, d.CanUndo())
	assert.Empty(t, d.Scenario().Modified())
}

func TestCutColumn(t *testing.T) {
	d := newTestDocument(t)

	text, err := d.CutColumn("demand", "value")
	require.NoError(t, err)
	assert.Equal(t, "10\n0\n\n42.5", text, "cut returns the pre-cut text")

	for row := 0; row < 4; row++ {
		assert.True(t, demandCell(t, d, row, "value").IsEmpty())
	}

	assert.True(t, d.Undo())
	assert.Equal(t, cell.Number(10), demandCell(t, d, 0, "value"))
	assert.Equal(t, cell.Number(42.5), demandCell(t, d, 3, "value"))
}

func TestAddRemoveParameter(t *testing.T) {
	d := newTestDocument(t)

	tbl := testutil.DemandTable(t)
	require.NoError(t, d.AddParameter("capacity", tbl, testutil.DemandMetadata()))
	assert.True(t, d.Scenario().HasParameter("capacity"))

	assert.True(t, d.Undo())
	assert.False(t, d.Scenario().HasParameter("capacity"))

	require.NoError(t, d.RemoveParameter("demand"))
	assert.False(t, d.Scenario().HasParameter("demand"))

	assert.True(t, d.Undo())
	assert.True(t, d.Scenario().HasParameter("demand"))
	assert.Contains(t, d.Scenario().Modified(), "demand",
		"undoing a remove re-marks the parameter")
}

func TestReadOnlyRejectsMutators(t *testing.T) {
	d := newTestDocument(t)
	require.NoError(t, d.EditCell("demand", 0, "value", cell.Number(1)))

	d.SetReadOnly(true)
	assert.True(t, d.ReadOnly())

	err := d.EditCell("demand", 0, "value", cell.Number(2))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	_, err = d.CutColumn("demand", "value")
	require.Error(t, err)

	err = d.RemoveParameter("demand")
	require.Error(t, err)

	assert.False(t, d.Undo())
	assert.False(t, d.Redo())

	// Reads still work.
	text, err := d.CopyColumn("demand", "value")
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	d.SetReadOnly(false)
	assert.True(t, d.Undo())
}

func TestGroupedEditsUndoAsOne(t *testing.T) {
	d := newTestDocument(t)

	d.BeginGroup("Set 2020-2030 demand")
	require.NoError(t, d.EditCell("demand", 0, "value", cell.Number(1)))
	require.NoError(t, d.EditCell("demand", 1, "value", cell.Number(2)))
	d.EndGroup()

	assert.Equal(t, "Set 2020-2030 demand", d.UndoDescription())
	assert.True(t, d.Undo())
	assert.Equal(t, cell.Number(10), demandCell(t, d, 0, "value"))
	assert.Equal(t, cell.Number(0), demandCell(t, d, 1, "value"))
}

func TestSubscribe(t *testing.T) {
	d := newTestDocument(t)

	var last history.State
	cancel := d.Subscribe(func(st history.State) { last = st })
	defer cancel()

	require.NoError(t, d.EditCell("demand", 0, "value", cell.Number(1)))
	assert.True(t, last.CanUndo)
	assert.Equal(t, 1, last.UndoDepth)
}

func TestConfiguredDepth(t *testing.T) {
	cfg := config.New()
	cfg.History.MaxDepth = 2
	d := New(testutil.DemandScenario(t), cfg)

	for i := 1; i <= 4; i++ {
		require.NoError(t, d.EditCell("demand", 0, "value", cell.Number(float64(i))))
	}

	assert.True(t, d.Undo())
	assert.True(t, d.Undo())
	assert.False(t, d.Undo(), "older edits were evicted")
	assert.Equal(t, cell.Number(2), demandCell(t, d, 0, "value"))
}

func TestClose(t *testing.T) {
	d := newTestDocument(t)
	require.NoError(t, d.EditCell("demand", 0, "value", cell.Number(1)))
	d.Close()
	assert.False(t, d.CanUndo())
}
