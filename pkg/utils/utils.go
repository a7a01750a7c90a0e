package utils

import "strings"

// TruncateString clips s to at most max runes, appending an ellipsis
// marker when anything was cut. Used to keep provider diagnostics
// bounded inside errors and logs.
func TruncateString(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
