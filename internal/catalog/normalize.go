package catalog

import (
	"strings"
	"time"
)

// NormalizeDate maps the stored zero-date sentinel to nil; any other value
// passes through unchanged.
func NormalizeDate(raw time.Time) *time.Time {
	if raw.IsZero() {
		return nil
	}
	return &raw
}

// NormalizeAuthor turns the stored author field into the client-facing name
// list. Collab entries store space-separated names; solo entries are taken
// verbatim as a single name.
func NormalizeAuthor(raw string, collab bool) []string {
	if collab {
		if raw == "" {
			return []string{}
		}
		return strings.Split(raw, " ")
	}
	return []string{raw}
}
