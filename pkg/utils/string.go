// Package utils provides common utility functions.
package utils

import "strings"

// NormalizeFieldName lowercases and trims a provider column name so that
// lookup tables can be written once per provider.
func NormalizeFieldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CleanNumeric prepares a scraped numeric string for parsing: collapses
// and strips whitespace (markup text nodes wrap values in newlines and
// grouping spaces), drops thousands separators and replaces the unicode
// hyphen and minus sign variants some provider pages use with the ASCII
// minus.
func CleanNumeric(s string) string {
	s = NormalizeWhitespace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "‐", "-")
	s = strings.ReplaceAll(s, "−", "-")

	return s
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
