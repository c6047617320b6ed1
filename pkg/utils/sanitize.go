package utils

import "strings"

// EscapeSQLWildcards escapes LIKE/ILIKE wildcards so user input can be
// embedded in a pattern without matching everything.
func EscapeSQLWildcards(input string) string {
	input = strings.ReplaceAll(input, "\\", "\\\\")
	input = strings.ReplaceAll(input, "%", "\\%")
	input = strings.ReplaceAll(input, "_", "\\_")
	return input
}

// SanitizeSearchQuery prepares a free-text search term for ILIKE usage,
// wrapped with % for partial matching. Input is trimmed and capped at 100
// characters.
func SanitizeSearchQuery(input string) string {
	input = strings.TrimSpace(input)
	if len(input) > 100 {
		input = input[:100]
	}
	return "%" + EscapeSQLWildcards(input) + "%"
}
