package models

import "time"

// RawRow is one provider row before normalization: an opaque field→value
// map plus the row-level timestamp information. Rows are produced by a
// provider parser and consumed once by the normalization pass.
//
// Providers publish timestamps in one of two shapes: a full timestamp
// (Datetime set, Clock empty) or a fragmented "HH:MM" clock that must be
// combined with a reference date (Clock set, Datetime zero).
type RawRow struct {
	Datetime time.Time
	Clock    string
	Values   map[string]float64
}

// Value returns the named field and whether the provider reported it.
func (r RawRow) Value(name string) (float64, bool) {
	v, ok := r.Values[name]

	return v, ok
}

// HasClock reports whether the row carries a fragmented clock instead of a
// full timestamp.
func (r RawRow) HasClock() bool {
	return r.Datetime.IsZero()
}
