package normalizer

import (
	"time"

	"gridfeed/internal/models"
)

// DiscardReason explains why the row filter dropped a row. Discards are
// expected and frequent, so they are reported as a tagged verdict rather
// than errors.
type DiscardReason string

// Discard reasons.
const (
	DiscardFutureTimestamp DiscardReason = "future_timestamp"
	DiscardZeroTotal       DiscardReason = "zero_total"
	DiscardMissingField    DiscardReason = "missing_field"
	DiscardMalformedClock  DiscardReason = "malformed_clock"
)

// Verdict is the keep/discard outcome of filtering one row.
type Verdict struct {
	Reason DiscardReason
	Keep   bool
}

// Rules configures the row filter for one data source. Filter policy
// evolves per source, independent of timestamp reconstruction.
type Rules struct {
	// TotalField names a sentinel field: when present with a non-positive
	// value the provider is signalling "not yet reported" and the row is a
	// placeholder.
	TotalField string
	// RequiredField names a scalar that must be present for the row to be
	// usable (e.g. total demand on a consumption feed).
	RequiredField string
}

// Filter decides which partially-assembled rows survive into aggregation.
type Filter struct {
	now   func() time.Time
	rules Rules
}

// NewFilter creates a filter evaluating rows against the wall clock.
func NewFilter(rules Rules) *Filter {
	return NewFilterAt(rules, time.Now)
}

// NewFilterAt creates a filter with an explicit "now" reference.
func NewFilterAt(rules Rules, now func() time.Time) *Filter {
	return &Filter{
		rules: rules,
		now:   now,
	}
}

// Check applies the filter rules to a row and its reconstructed timestamp.
// A timestamp strictly after "now" is a future placeholder, not a reading.
func (f *Filter) Check(ts time.Time, row models.RawRow) Verdict {
	if ts.After(f.now()) {
		return Verdict{Reason: DiscardFutureTimestamp}
	}

	if f.rules.TotalField != "" {
		if total, ok := row.Value(f.rules.TotalField); ok && total <= 0 {
			return Verdict{Reason: DiscardZeroTotal}
		}
	}

	if f.rules.RequiredField != "" {
		if _, ok := row.Value(f.rules.RequiredField); !ok {
			return Verdict{Reason: DiscardMissingField}
		}
	}

	return Verdict{Keep: true}
}
