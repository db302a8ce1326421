package scenario

import (
	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/dataset"
	"github.com/helios-model/helios/pkg/errors"
	"github.com/helios-model/helios/pkg/json"
)

// Snapshot is the JSON form of a scenario used by the CLI for inspection and
// replay. It is a plain value: encoding a scenario and decoding the result
// yields an equal scenario, including the zero-vs-empty cell distinction.
type Snapshot struct {
	Name       string              `json:"name"`
	Options    Options             `json:"options"`
	Sets       []SetSnapshot       `json:"sets,omitempty"`
	Parameters []ParameterSnapshot `json:"parameters"`
}

// SetSnapshot is one named set in a snapshot.
type SetSnapshot struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ParameterSnapshot is one parameter in a snapshot, row-major for readability.
type ParameterSnapshot struct {
	Name     string         `json:"name"`
	Metadata Metadata       `json:"metadata"`
	Columns  []string       `json:"columns"`
	Rows     [][]cell.Value `json:"rows"`
}

// Snapshot captures the scenario as a plain value.
func (s *Scenario) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{
		Name:    s.name,
		Options: s.options,
	}

	for _, name := range s.setOrder {
		values, err := s.Set(name)
		if err != nil {
			return nil, err
		}
		snap.Sets = append(snap.Sets, SetSnapshot{Name: name, Values: values})
	}

	for _, name := range s.paramOrder {
		table, meta, err := s.Parameter(name)
		if err != nil {
			return nil, err
		}

		ps := ParameterSnapshot{
			Name:     name,
			Metadata: meta,
			Columns:  table.ColumnNames(),
			Rows:     make([][]cell.Value, 0, table.RowCount()),
		}
		for r := 0; r < table.RowCount(); r++ {
			row := make([]cell.Value, 0, len(ps.Columns))
			for _, col := range ps.Columns {
				v, err := table.Cell(r, col)
				if err != nil {
					return nil, err
				}
				row = append(row, v)
			}
			ps.Rows = append(ps.Rows, row)
		}
		snap.Parameters = append(snap.Parameters, ps)
	}

	return snap, nil
}

// FromSnapshot rebuilds a scenario from a snapshot.
func FromSnapshot(snap *Snapshot) (*Scenario, error) {
	if snap == nil {
		return nil, errors.New(errors.ErrorTypeValidation, "snapshot is nil")
	}

	s := New(snap.Name)
	if snap.Options != (Options{}) {
		s.options = snap.Options
	}

	for _, set := range snap.Sets {
		if err := s.AddSet(set.Name, set.Values); err != nil {
			return nil, err
		}
	}

	for _, ps := range snap.Parameters {
		table, err := dataset.New(ps.Columns...)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData,
				"parameter "+ps.Name+" has invalid columns")
		}
		for i, row := range ps.Rows {
			if len(row) != len(ps.Columns) {
				return nil, errors.Newf(errors.ErrorTypeData,
					"parameter %q row %d has %d values, want %d",
					ps.Name, i, len(row), len(ps.Columns))
			}
			values := make(map[string]cell.Value, len(row))
			for c, col := range ps.Columns {
				values[col] = row[c]
			}
			if err := table.AppendRow(values); err != nil {
				return nil, err
			}
		}
		if err := s.AddParameter(ps.Name, table, ps.Metadata); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// MarshalSnapshot encodes the scenario snapshot as indented JSON.
func (s *Scenario) MarshalSnapshot() ([]byte, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// UnmarshalSnapshot decodes JSON into a scenario.
func UnmarshalSnapshot(data []byte) (*Scenario, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return FromSnapshot(&snap)
}
