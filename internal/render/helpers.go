package render

import (
	"strings"
	"unicode/utf8"
)

// NA returns NAValue if string is empty
func NA(s string) string {
	if s == "" {
		return NAValue
	}
	return s
}

// Truncate shortens a string to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string([]rune(s)[:n-1]) + "…"
}

// Clean collapses whitespace so a value fits a single cell.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
