// Package normalizer turns raw provider rows into canonical time-series
// records: field names are mapped onto the canonical mode taxonomy, known
// data-quality defects are corrected, timestamps are reconstructed, and
// placeholder rows are filtered out before aggregation.
package normalizer

import (
	"sort"

	"gridfeed/internal/models"
)

// ModeTable maps provider-specific field names to canonical modes. Tables
// are built once at startup and treated as immutable.
type ModeTable map[string]models.Mode

// Lookup classifies a raw field name. A name absent from the table
// classifies as ModeUnknown; absence is a classification outcome, not an
// error.
func (t ModeTable) Lookup(field string) models.Mode {
	if mode, ok := t[field]; ok {
		return mode
	}

	return models.ModeUnknown
}

// Fields returns the table's field names in sorted order so that passes
// over a row are deterministic.
func (t ModeTable) Fields() []string {
	fields := make([]string, 0, len(t))
	for field := range t {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	return fields
}
