package command

import (
	"github.com/helios-model/helios/pkg/dataset"
	"github.com/helios-model/helios/pkg/errors"
	"github.com/helios-model/helios/pkg/scenario"
	stringpool "github.com/helios-model/helios/pkg/strings"
)

// AddParameter adds a named parameter to a scenario.
type AddParameter struct {
	scenario *scenario.Scenario
	name     string
	table    *dataset.Table
	meta     scenario.Metadata
}

// NewAddParameter creates a parameter add command.
func NewAddParameter(sc *scenario.Scenario, name string, table *dataset.Table, meta scenario.Metadata) *AddParameter {
	return &AddParameter{scenario: sc, name: name, table: table, meta: meta}
}

// Do adds the parameter.
func (c *AddParameter) Do() error {
	return c.scenario.AddParameter(c.name, c.table, c.meta)
}

// Undo removes the added parameter.
func (c *AddParameter) Undo() error {
	_, _, err := c.scenario.RemoveParameter(c.name)
	return err
}

// Description returns a label for undo menus.
func (c *AddParameter) Description() string {
	return stringpool.Sprintf("Add parameter '%s'", c.name)
}

// RemoveParameter removes a named parameter, capturing its table and
// metadata on Do so Undo restores both byte-for-byte.
type RemoveParameter struct {
	scenario *scenario.Scenario
	name     string

	table *dataset.Table
	meta  scenario.Metadata
}

// NewRemoveParameter creates a parameter remove command.
func NewRemoveParameter(sc *scenario.Scenario, name string) *RemoveParameter {
	return &RemoveParameter{scenario: sc, name: name}
}

// Do removes the parameter and captures it for Undo.
func (c *RemoveParameter) Do() error {
	table, meta, err := c.scenario.RemoveParameter(c.name)
	if err != nil {
		return err
	}
	c.table = table
	c.meta = meta
	return nil
}

// Undo restores the removed parameter with its captured table and metadata.
// Removal dropped the parameter's modified flag, so the restored parameter is
// re-marked: it differs from the loaded state again.
func (c *RemoveParameter) Undo() error {
	if c.table == nil {
		return errors.New(errors.ErrorTypeInternal, "remove command undone before Do")
	}
	if err := c.scenario.AddParameter(c.name, c.table, c.meta); err != nil {
		return err
	}
	c.scenario.MarkModified(c.name)
	return nil
}

// Description returns a label for undo menus.
func (c *RemoveParameter) Description() string {
	return stringpool.Sprintf("Remove parameter '%s'", c.name)
}
