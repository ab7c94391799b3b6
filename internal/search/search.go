// Package search filters the tag dataset for the search view.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"tagdeck-go/internal/tags"
)

// DefaultLimit is how many matches the search table shows.
const DefaultLimit = 100

// GroupFilter decides whether a record's groups are in the active selection.
type GroupFilter interface {
	Intersects(groups []string) bool
}

// Result is one filter pass.
type Result struct {
	Rows      []tags.Record
	Total     int
	Truncated bool
}

// Filter returns the records whose translation contains term (ignoring case)
// and whose groups intersect the active selection. At most limit rows are kept;
// limit <= 0 keeps them all.
func Filter(records []tags.Record, term string, groups GroupFilter, limit int) Result {
	fold := cases.Fold()
	needle := fold.String(term)

	var res Result
	for _, r := range records {
		if !groups.Intersects(r.Groups) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(r.Translation), needle) {
			continue
		}
		res.Total++
		if limit <= 0 || len(res.Rows) < limit {
			res.Rows = append(res.Rows, r)
		}
	}
	res.Truncated = limit > 0 && res.Total > limit
	return res
}
