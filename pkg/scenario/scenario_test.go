package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/dataset"
	"github.com/helios-model/helios/pkg/errors"
)

func demandTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New("year", "value")
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow(map[string]cell.Value{
		"year": cell.Number(2020), "value": cell.Number(10),
	}))
	return tbl
}

func TestAddAndGetParameter(t *testing.T) {
	sc := New("baseline")
	meta := Metadata{Dims: []string{"year"}, Unit: "GWa"}
	require.NoError(t, sc.AddParameter("demand", demandTable(t), meta))

	assert.True(t, sc.HasParameter("demand"))
	assert.Equal(t, 1, sc.Len())

	tbl, got, err := sc.Parameter("demand")
	require.NoError(t, err)
	assert.Equal(t, meta, got)
	assert.Equal(t, 1, tbl.RowCount())
}

func TestAddParameterValidation(t *testing.T) {
	sc := New("baseline")

	err := sc.AddParameter("", demandTable(t), Metadata{})
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	err = sc.AddParameter("demand", nil, Metadata{})
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestAddParameterRejectsDuplicate(t *testing.T) {
	sc := New("baseline")
	require.NoError(t, sc.AddParameter("demand", demandTable(t), Metadata{}))

	err := sc.AddParameter("demand", demandTable(t), Metadata{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeDuplicate))

	// The collection is unchanged after the rejected add.
	assert.Equal(t, 1, sc.Len())
	assert.Equal(t, []string{"demand"}, sc.ParameterNames())
}

func TestRemoveParameterReturnsStateForRestore(t *testing.T) {
	sc := New("baseline")
	meta := Metadata{Dims: []string{"year"}, Description: "final demand", Unit: "GWa"}
	tbl := demandTable(t)
	require.NoError(t, sc.AddParameter("demand", tbl, meta))

	removed, removedMeta, err := sc.RemoveParameter("demand")
	require.NoError(t, err)
	assert.Same(t, tbl, removed)
	assert.Equal(t, meta, removedMeta)
	assert.False(t, sc.HasParameter("demand"))

	// Re-adding the captured state restores the parameter verbatim.
	require.NoError(t, sc.AddParameter("demand", removed, removedMeta))
	_, got, err := sc.Parameter("demand")
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

func TestRemoveParameterNotFound(t *testing.T) {
	sc := New("baseline")
	_, _, err := sc.RemoveParameter("demand")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestParameterNamesKeepInsertionOrder(t *testing.T) {
	sc := New("baseline")
	for _, name := range []string{"demand", "capacity", "cost"} {
		require.NoError(t, sc.AddParameter(name, demandTable(t), Metadata{}))
	}
	assert.Equal(t, []string{"demand", "capacity", "cost"}, sc.ParameterNames())

	_, _, err := sc.RemoveParameter("capacity")
	require.NoError(t, err)
	assert.Equal(t, []string{"demand", "cost"}, sc.ParameterNames())
}

func TestMetadataIsCopiedBothWays(t *testing.T) {
	sc := New("baseline")
	meta := Metadata{Dims: []string{"year"}}
	require.NoError(t, sc.AddParameter("demand", demandTable(t), meta))

	// Mutating the caller's slice must not leak into the scenario.
	meta.Dims[0] = "mutated"
	_, got, err := sc.Parameter("demand")
	require.NoError(t, err)
	assert.Equal(t, []string{"year"}, got.Dims)

	// Mutating a returned copy must not leak back in.
	got.Dims[0] = "mutated"
	_, again, err := sc.Parameter("demand")
	require.NoError(t, err)
	assert.Equal(t, []string{"year"}, again.Dims)
}

func TestSets(t *testing.T) {
	sc := New("baseline")
	require.NoError(t, sc.AddSet("technology", []string{"coal", "solar"}))
	require.NoError(t, sc.AddSet("region", []string{"world"}))

	assert.Equal(t, []string{"technology", "region"}, sc.SetNames())

	err := sc.AddSet("technology", nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeDuplicate))

	values, err := sc.Set("technology")
	require.NoError(t, err)
	assert.Equal(t, []string{"coal", "solar"}, values)

	removed, err := sc.RemoveSet("technology")
	require.NoError(t, err)
	assert.Equal(t, []string{"coal", "solar"}, removed)
	assert.Equal(t, []string{"region"}, sc.SetNames())

	_, err = sc.Set("technology")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestModifiedTracking(t *testing.T) {
	sc := New("baseline")
	require.NoError(t, sc.AddParameter("demand", demandTable(t), Metadata{}))
	require.NoError(t, sc.AddParameter("cost", demandTable(t), Metadata{}))
	assert.False(t, sc.IsModified())

	sc.MarkModified("cost")
	sc.MarkModified("demand")
	sc.MarkModified("nonexistent") // ignored
	assert.True(t, sc.IsModified())
	assert.Equal(t, []string{"cost", "demand"}, sc.Modified())

	// Removing a parameter drops its modified flag.
	_, _, err := sc.RemoveParameter("cost")
	require.NoError(t, err)
	assert.Equal(t, []string{"demand"}, sc.Modified())

	sc.ClearModified()
	assert.False(t, sc.IsModified())
}

func TestDefaultOptions(t *testing.T) {
	sc := New("baseline")
	assert.Equal(t, Options{MinYear: 2020, MaxYear: 2050}, sc.Options())

	sc.SetOptions(Options{MinYear: 2025, MaxYear: 2100})
	assert.Equal(t, 2100, sc.Options().MaxYear)
}
