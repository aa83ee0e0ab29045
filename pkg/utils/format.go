// Package utils provides shared utility functions.
package utils

import "fmt"

// Truncate shortens a string to maxLen runes, appending an ellipsis
// when it was cut.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatPercent formats a signed percentage.
func FormatPercent(value int) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%d%%", sign, value)
}
