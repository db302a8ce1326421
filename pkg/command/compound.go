package command

import (
	stringpool "github.com/helios-model/helios/pkg/strings"
)

// Compound groups multiple commands as one undo unit.
type Compound struct {
	name     string
	commands []Command
}

// NewCompound creates a compound command.
func NewCompound(name string, commands ...Command) *Compound {
	return &Compound{name: name, commands: commands}
}

// Add appends a command to the group.
func (c *Compound) Add(cmd Command) {
	c.commands = append(c.commands, cmd)
}

// Len returns the number of grouped commands.
func (c *Compound) Len() int {
	return len(c.commands)
}

// Do runs all commands in order. If a step fails, the already-applied steps
// are undone in reverse so the group stays atomic from the caller's view.
func (c *Compound) Do() error {
	for i, cmd := range c.commands {
		if err := cmd.Do(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.commands[j].Undo()
			}
			return err
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *Compound) Undo() error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(); err != nil {
			return err
		}
	}
	return nil
}

// Description returns the group name, or a summary when unnamed.
func (c *Compound) Description() string {
	if c.name != "" {
		return c.name
	}
	if len(c.commands) == 1 {
		return c.commands[0].Description()
	}
	return stringpool.Sprintf("%d operations", len(c.commands))
}
