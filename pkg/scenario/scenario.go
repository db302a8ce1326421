// Package scenario owns the named parameter collection for one open document.
//
// A Scenario maps unique parameter names to tables plus dimension/unit
// metadata, tracks which parameters were modified since load, and carries the
// model-wide options (year range) and set collections an energy-systems
// scenario defines alongside its parameters.
package scenario

import (
	"sort"

	"github.com/helios-model/helios/pkg/dataset"
	"github.com/helios-model/helios/pkg/errors"
)

// Metadata describes a parameter: its dimension names, a human-readable
// description, and the unit of its value column.
type Metadata struct {
	Dims        []string `json:"dims"`
	Description string   `json:"description,omitempty"`
	Unit        string   `json:"unit,omitempty"`
}

// clone returns a deep copy so captured metadata cannot alias live state.
func (m Metadata) clone() Metadata {
	out := m
	if m.Dims != nil {
		out.Dims = make([]string, len(m.Dims))
		copy(out.Dims, m.Dims)
	}
	return out
}

// Options carries scenario-wide model options.
type Options struct {
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`
}

// DefaultOptions returns the year range a fresh scenario starts with.
func DefaultOptions() Options {
	return Options{MinYear: 2020, MaxYear: 2050}
}

type parameterEntry struct {
	table *dataset.Table
	meta  Metadata
}

// Scenario is the collection of named parameters, sets, and options for one
// document. It is not synchronized; the document layer serializes access.
type Scenario struct {
	name string

	paramOrder []string
	parameters map[string]parameterEntry

	setOrder []string
	sets     map[string][]string

	modified map[string]struct{}
	options  Options
}

// New creates an empty scenario with default options.
func New(name string) *Scenario {
	return &Scenario{
		name:       name,
		parameters: make(map[string]parameterEntry),
		sets:       make(map[string][]string),
		modified:   make(map[string]struct{}),
		options:    DefaultOptions(),
	}
}

// Name returns the scenario name.
func (s *Scenario) Name() string {
	return s.name
}

// Options returns the scenario options.
func (s *Scenario) Options() Options {
	return s.options
}

// SetOptions replaces the scenario options.
func (s *Scenario) SetOptions(opts Options) {
	s.options = opts
}

// AddParameter adds a named parameter. The scenario takes ownership of the
// table; the metadata is copied.
func (s *Scenario) AddParameter(name string, table *dataset.Table, meta Metadata) error {
	if name == "" {
		return errors.New(errors.ErrorTypeValidation, "parameter name must not be empty")
	}
	if table == nil {
		return errors.Newf(errors.ErrorTypeValidation, "parameter %q has no table", name)
	}
	if _, exists := s.parameters[name]; exists {
		return errors.Newf(errors.ErrorTypeDuplicate,
			"parameter %q already exists", name)
	}

	s.parameters[name] = parameterEntry{table: table, meta: meta.clone()}
	s.paramOrder = append(s.paramOrder, name)
	return nil
}

// RemoveParameter removes a named parameter and returns its table and
// metadata so the caller can restore both verbatim.
func (s *Scenario) RemoveParameter(name string) (*dataset.Table, Metadata, error) {
	entry, exists := s.parameters[name]
	if !exists {
		return nil, Metadata{}, errors.Newf(errors.ErrorTypeNotFound,
			"parameter %q does not exist", name)
	}

	delete(s.parameters, name)
	for i, n := range s.paramOrder {
		if n == name {
			s.paramOrder = append(s.paramOrder[:i], s.paramOrder[i+1:]...)
			break
		}
	}
	delete(s.modified, name)
	return entry.table, entry.meta, nil
}

// Parameter returns the table and metadata for a named parameter. The table
// is the live object commands mutate; the metadata is a copy.
func (s *Scenario) Parameter(name string) (*dataset.Table, Metadata, error) {
	entry, exists := s.parameters[name]
	if !exists {
		return nil, Metadata{}, errors.Newf(errors.ErrorTypeNotFound,
			"parameter %q does not exist", name)
	}
	return entry.table, entry.meta.clone(), nil
}

// HasParameter reports whether a parameter exists.
func (s *Scenario) HasParameter(name string) bool {
	_, exists := s.parameters[name]
	return exists
}

// ParameterNames returns parameter names in insertion order.
func (s *Scenario) ParameterNames() []string {
	names := make([]string, len(s.paramOrder))
	copy(names, s.paramOrder)
	return names
}

// Len returns the number of parameters.
func (s *Scenario) Len() int {
	return len(s.parameters)
}

// AddSet adds a named set of labels (regions, technologies, years).
func (s *Scenario) AddSet(name string, values []string) error {
	if _, exists := s.sets[name]; exists {
		return errors.Newf(errors.ErrorTypeDuplicate, "set %q already exists", name)
	}
	copied := make([]string, len(values))
	copy(copied, values)
	s.sets[name] = copied
	s.setOrder = append(s.setOrder, name)
	return nil
}

// RemoveSet removes a named set and returns its values.
func (s *Scenario) RemoveSet(name string) ([]string, error) {
	values, exists := s.sets[name]
	if !exists {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "set %q does not exist", name)
	}
	delete(s.sets, name)
	for i, n := range s.setOrder {
		if n == name {
			s.setOrder = append(s.setOrder[:i], s.setOrder[i+1:]...)
			break
		}
	}
	return values, nil
}

// Set returns a copy of a named set's values.
func (s *Scenario) Set(name string) ([]string, error) {
	values, exists := s.sets[name]
	if !exists {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "set %q does not exist", name)
	}
	out := make([]string, len(values))
	copy(out, values)
	return out, nil
}

// SetNames returns set names in insertion order.
func (s *Scenario) SetNames() []string {
	names := make([]string, len(s.setOrder))
	copy(names, s.setOrder)
	return names
}

// MarkModified records that a parameter changed since the document was loaded.
func (s *Scenario) MarkModified(name string) {
	if _, exists := s.parameters[name]; exists {
		s.modified[name] = struct{}{}
	}
}

// Modified returns the sorted names of parameters changed since load.
func (s *Scenario) Modified() []string {
	names := make([]string, 0, len(s.modified))
	for name := range s.modified {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsModified reports whether any parameter changed since load.
func (s *Scenario) IsModified() bool {
	return len(s.modified) > 0
}

// ClearModified resets modification tracking, typically after a save.
func (s *Scenario) ClearModified() {
	s.modified = make(map[string]struct{})
}
