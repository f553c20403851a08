// Package validation binds form posts to structs and collects field errors in a ModelState.
package validation

import (
	"maps"
	"slices"
)

// ModelState is the pass/fail judgment of a bound model with optional per-field messages.
// The zero value is valid and empty.
type ModelState struct {
	errors map[string][]string
}

func NewModelState() *ModelState {
	return &ModelState{}
}

// AddError records a message for field. An empty field name marks a model-level error.
func (m *ModelState) AddError(field, message string) {
	if m.errors == nil {
		m.errors = make(map[string][]string)
	}
	m.errors[field] = append(m.errors[field], message)
}

// IsValid reports whether no error has been recorded. A nil state is valid.
func (m *ModelState) IsValid() bool {
	return m == nil || len(m.errors) == 0
}

// Errors returns a copy of every recorded message keyed by field.
func (m *ModelState) Errors() map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	out := make(map[string][]string, len(m.errors))
	for field, msgs := range m.errors {
		out[field] = slices.Clone(msgs)
	}
	return out
}

// FieldErrors returns the messages recorded for field.
func (m *ModelState) FieldErrors(field string) []string {
	if m == nil {
		return nil
	}
	return m.errors[field]
}

// Fields returns the names of the fields that have errors, sorted.
func (m *ModelState) Fields() []string {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.errors))
}
