// Package script parses and applies JSON edit scripts against a document.
// Scripts drive the same command path a UI would, one operation per user
// intent, and are the replay format of the helios CLI.
package script

import (
	"github.com/helios-model/helios/internal/document"
	"github.com/helios-model/helios/pkg/cell"
	"github.com/helios-model/helios/pkg/dataset"
	"github.com/helios-model/helios/pkg/errors"
	"github.com/helios-model/helios/pkg/json"
	"github.com/helios-model/helios/pkg/scenario"
	stringpool "github.com/helios-model/helios/pkg/strings"
)

// Operation names.
const (
	OpEditCell        = "edit_cell"
	OpInsertColumn    = "insert_column"
	OpDeleteColumn    = "delete_column"
	OpPaste           = "paste"
	OpCut             = "cut"
	OpAddParameter    = "add_parameter"
	OpRemoveParameter = "remove_parameter"
	OpUndo            = "undo"
	OpRedo            = "redo"
)

// Operation is one scripted edit. Fields are interpreted per Op; unused
// fields are ignored.
type Operation struct {
	Op string `json:"op"`

	// Parameter-targeting edits.
	Parameter string     `json:"parameter,omitempty"`
	Row       int        `json:"row,omitempty"`
	Column    string     `json:"column,omitempty"`
	Position  int        `json:"position,omitempty"`
	Value     cell.Value `json:"value,omitempty"`
	Fill      cell.Value `json:"fill,omitempty"`
	Text      string     `json:"text,omitempty"`

	// Parameter add/remove.
	Name     string            `json:"name,omitempty"`
	Metadata scenario.Metadata `json:"metadata,omitempty"`
	Columns  []string          `json:"columns,omitempty"`
	Rows     [][]cell.Value    `json:"rows,omitempty"`

	// Undo/redo step count; zero means one.
	Count int `json:"count,omitempty"`
}

// Script is an ordered sequence of operations.
type Script struct {
	Operations []Operation `json:"operations"`
}

// Parse decodes a JSON edit script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "invalid edit script")
	}
	return &s, nil
}

// Apply runs every operation against the document in order. The first
// failing operation aborts the run with an error naming its index; earlier
// operations stay applied, matching interactive editing semantics.
func (s *Script) Apply(doc *document.Document) error {
	for i, op := range s.Operations {
		if err := apply(doc, op); err != nil {
			return errors.Wrap(err, errors.TypeOf(err),
				stringpool.Sprintf("operation %d (%s) failed", i, op.Op))
		}
	}
	return nil
}

func apply(doc *document.Document, op Operation) error {
	switch op.Op {
	case OpEditCell:
		return doc.EditCell(op.Parameter, op.Row, op.Column, op.Value)

	case OpInsertColumn:
		return doc.InsertColumn(op.Parameter, op.Column, op.Position, op.Fill)

	case OpDeleteColumn:
		return doc.DeleteColumn(op.Parameter, op.Column)

	case OpPaste:
		return doc.PasteText(op.Parameter, op.Column, op.Text)

	case OpCut:
		_, err := doc.CutColumn(op.Parameter, op.Column)
		return err

	case OpAddParameter:
		table, err := buildTable(op.Columns, op.Rows)
		if err != nil {
			return err
		}
		return doc.AddParameter(op.Name, table, op.Metadata)

	case OpRemoveParameter:
		return doc.RemoveParameter(op.Name)

	case OpUndo:
		for n := steps(op.Count); n > 0; n-- {
			if !doc.Undo() {
				return errors.New(errors.ErrorTypeValidation, "nothing to undo")
			}
		}
		return nil

	case OpRedo:
		for n := steps(op.Count); n > 0; n-- {
			if !doc.Redo() {
				return errors.New(errors.ErrorTypeValidation, "nothing to redo")
			}
		}
		return nil

	default:
		return errors.Newf(errors.ErrorTypeValidation, "unknown op %q", op.Op)
	}
}

func steps(count int) int {
	if count <= 0 {
		return 1
	}
	return count
}

// buildTable constructs a table from script columns and row-major values.
func buildTable(columns []string, rows [][]cell.Value) (*dataset.Table, error) {
	table, err := dataset.New(columns...)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"row %d has %d values, want %d", i, len(row), len(columns))
		}
		values := make(map[string]cell.Value, len(row))
		for c, col := range columns {
			values[col] = row[c]
		}
		if err := table.AppendRow(values); err != nil {
			return nil, err
		}
	}
	return table, nil
}
