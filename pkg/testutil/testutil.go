// Package testutil provides testing utilities for Helios
package testutil

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/dataset"
	"github.com/helios-model/helios/pkg/scenario"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// DemandTable builds a small demand parameter table used across tests:
// columns year, technology, value with four rows.
func DemandTable(t *testing.T) *dataset.Table {
	t.Helper()

	table, err := dataset.New("year", "technology", "value")
	if err != nil {
		t.Fatalf("build demand table: %v", err)
	}

	rows := []map[string]cell.Value{
		{"year": cell.Number(2020), "technology": cell.Text("coal"), "value": cell.Number(10)},
		{"year": cell.Number(2030), "technology": cell.Text("coal"), "value": cell.Number(0)},
		{"year": cell.Number(2040), "technology": cell.Text("solar"), "value": cell.Empty()},
		{"year": cell.Number(2050), "technology": cell.Text("solar"), "value": cell.Number(42.5)},
	}
	for _, row := range rows {
		if err := table.AppendRow(row); err != nil {
			t.Fatalf("build demand table: %v", err)
		}
	}
	return table
}

// DemandMetadata returns metadata matching DemandTable.
func DemandMetadata() scenario.Metadata {
	return scenario.Metadata{
		Dims:        []string{"year", "technology"},
		Description: "final energy demand",
		Unit:        "GWa",
	}
}

// DemandScenario builds a scenario holding one demand parameter.
func DemandScenario(t *testing.T) *scenario.Scenario {
	t.Helper()

	sc := scenario.New("baseline")
	if err := sc.AddParameter("demand", DemandTable(t), DemandMetadata()); err != nil {
		t.Fatalf("build demand scenario: %v", err)
	}
	return sc
}
