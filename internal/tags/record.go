// Package tags loads the tag dataset and holds its record type.
package tags

import (
	"sort"
	"strings"
)

// Record is one row of the tag dataset. Records are never mutated after loading.
type Record struct {
	Tag         string
	Translation string
	JapaneseTag string
	Count       int
	Groups      []string
	Rating      int
}

// GroupList returns the record's groups joined for display.
func (r Record) GroupList() string {
	return strings.Join(r.Groups, ", ")
}

// Groups returns the distinct group labels of all records, sorted.
func Groups(records []Record) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range records {
		for _, g := range r.Groups {
			if !seen[g] {
				seen[g] = true
				labels = append(labels, g)
			}
		}
	}
	sort.Strings(labels)
	return labels
}

// GroupCounts returns how many records carry each label. A record listing a
// label twice is counted once.
func GroupCounts(records []Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		seen := make(map[string]bool, len(r.Groups))
		for _, g := range r.Groups {
			if seen[g] {
				continue
			}
			seen[g] = true
			counts[g]++
		}
	}
	return counts
}
