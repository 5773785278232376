package statediff

import (
	"fmt"
	"strings"
)

// Change reports one difference between a baseline and the live value.
// This is the shape handed to downstream consumers; Path is always
// non-empty, the values are optional.
type Change struct {
	// Path addresses the differing value in dot/bracket notation,
	// rooted at the tracked property (e.g. "Address.City" or "Tags[2]").
	Path string `json:"path" validate:"required"`

	// OldValue is the baseline-side value at Path.
	// Deep-copied unless the value is atomic.
	OldValue any `json:"oldValue,omitempty"`

	// NewValue is the live-side value at Path.
	// Deep-copied unless the value is atomic.
	NewValue any `json:"newValue,omitempty"`
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Path, formatValue(c.OldValue), formatValue(c.NewValue))
}

// formatValue renders a value for display, truncating long output.
func formatValue(v any) string {
	s := fmt.Sprintf("%#v", v)
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	return s
}

// ChangeSet represents a collection of changes from one inspection.
// Changes are stored in the order the differ emitted them.
type ChangeSet struct {
	// Changes in emission order.
	Changes []Change
}

// Add adds a change to the set.
func (cs *ChangeSet) Add(c Change) {
	cs.Changes = append(cs.Changes, c)
}

// Len returns the number of changes.
func (cs *ChangeSet) Len() int {
	return len(cs.Changes)
}

// IsEmpty returns true if there are no changes.
func (cs *ChangeSet) IsEmpty() bool {
	return len(cs.Changes) == 0
}

// Paths returns the paths of all changes in emission order.
func (cs *ChangeSet) Paths() []string {
	paths := make([]string, len(cs.Changes))
	for i, c := range cs.Changes {
		paths[i] = c.Path
	}
	return paths
}

// Summary returns a human-readable summary of the changes.
func (cs *ChangeSet) Summary() string {
	if cs.IsEmpty() {
		return "no changes"
	}

	paths := cs.Paths()
	const maxListed = 5
	if len(paths) > maxListed {
		paths = append(paths[:maxListed:maxListed], "...")
	}

	noun := "changes"
	if cs.Len() == 1 {
		noun = "change"
	}
	return fmt.Sprintf("%d %s: %s", cs.Len(), noun, strings.Join(paths, ", "))
}
