package catalog

import "strings"

// resolveWhitelist validates untrusted input against a fixed allowed set.
// On a case-insensitive match it returns the canonical allowed value, never
// the raw input; otherwise the default. This is the single choke point
// between caller-supplied sort strings and query construction.
func resolveWhitelist(input string, allowed []string, def string) string {
	if input == "" {
		return def
	}
	for _, v := range allowed {
		if strings.EqualFold(input, v) {
			return v
		}
	}
	return def
}
