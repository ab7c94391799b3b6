// Package selection tracks which group labels are active in one view.
//
// Each view owns its own Set; nothing is shared between them.
package selection

import "sort"

// Set is a selection over a fixed list of known labels.
type Set struct {
	labels []string
	known  map[string]bool
	active map[string]bool
}

// New creates a Set over labels with every label active except those in excluded.
// Excluded labels that are not known are ignored.
func New(labels []string, excluded ...string) *Set {
	s := &Set{
		labels: append([]string(nil), labels...),
		known:  make(map[string]bool, len(labels)),
		active: make(map[string]bool, len(labels)),
	}
	sort.Strings(s.labels)

	skip := make(map[string]bool, len(excluded))
	for _, e := range excluded {
		skip[e] = true
	}
	for _, l := range s.labels {
		s.known[l] = true
		if !skip[l] {
			s.active[l] = true
		}
	}
	return s
}

// Toggle flips label. Unknown labels are ignored.
func (s *Set) Toggle(label string) {
	if !s.known[label] {
		return
	}
	if s.active[label] {
		delete(s.active, label)
	} else {
		s.active[label] = true
	}
}

// SelectAll activates every known label.
func (s *Set) SelectAll() {
	for _, l := range s.labels {
		s.active[l] = true
	}
}

// DeselectAll clears the selection.
func (s *Set) DeselectAll() {
	s.active = make(map[string]bool, len(s.labels))
}

// Has reports whether label is active.
func (s *Set) Has(label string) bool {
	return s.active[label]
}

// Len is the number of active labels.
func (s *Set) Len() int {
	return len(s.active)
}

// Labels returns the known labels in sorted order.
func (s *Set) Labels() []string {
	return append([]string(nil), s.labels...)
}

// Active returns the active labels in sorted order.
func (s *Set) Active() []string {
	var out []string
	for _, l := range s.labels {
		if s.active[l] {
			out = append(out, l)
		}
	}
	return out
}

// Intersects reports whether any of groups is active.
func (s *Set) Intersects(groups []string) bool {
	if len(s.active) == 0 {
		return false
	}
	for _, g := range groups {
		if s.active[g] {
			return true
		}
	}
	return false
}
