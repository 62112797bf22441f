// Package validator provides QA checks over normalized output series
// before they are written or handed downstream.
package validator

import (
	"fmt"
	"math"
	"time"

	"gridfeed/internal/models"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string
	Message string
	Index   int
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalRecords   int
	ValidRecords   int
	InvalidRecords int
}

// SeriesValidator validates normalized record sequences: ascending
// timestamps, no duplicate keys, canonical modes only, finite values.
type SeriesValidator struct {
	strict bool
}

// NewSeriesValidator creates a validator. In strict mode an empty series
// is an error rather than a warning.
func NewSeriesValidator(strict bool) *SeriesValidator {
	return &SeriesValidator{strict: strict}
}

// ValidateProduction validates a production series.
func (v *SeriesValidator) ValidateProduction(records []models.ProductionRecord) *ValidationResult {
	result := v.newResult(len(records))

	seen := make(map[string]bool, len(records))

	var prev time.Time

	for i, rec := range records {
		valid := true

		valid = v.checkOrder(result, i, prev, rec.Datetime) && valid
		prev = rec.Datetime

		key := fmt.Sprintf("%s|%d", rec.ZoneKey, rec.Datetime.Unix())
		if seen[key] {
			result.addError(i, "datetime", "duplicate (zoneKey, timestamp) pair")

			valid = false
		}

		seen[key] = true

		for mode, value := range rec.Production {
			if !mode.IsValid() {
				result.addError(i, "production", fmt.Sprintf("unknown mode %q", mode))

				valid = false
			}

			if !isFinite(value) {
				result.addError(i, "production", fmt.Sprintf("non-finite value for %q", mode))

				valid = false
			}
		}

		for mode, value := range rec.Storage {
			if !mode.IsStorage() {
				result.addError(i, "storage", fmt.Sprintf("mode %q is not storage-capable", mode))

				valid = false
			}

			if !isFinite(value) {
				result.addError(i, "storage", fmt.Sprintf("non-finite value for %q", mode))

				valid = false
			}
		}

		v.count(result, valid)
	}

	return v.finish(result, len(records))
}

// ValidateConsumption validates a consumption series.
func (v *SeriesValidator) ValidateConsumption(records []models.ConsumptionRecord) *ValidationResult {
	result := v.newResult(len(records))

	seen := make(map[string]bool, len(records))

	var prev time.Time

	for i, rec := range records {
		valid := true

		valid = v.checkOrder(result, i, prev, rec.Datetime) && valid
		prev = rec.Datetime

		key := fmt.Sprintf("%s|%d", rec.ZoneKey, rec.Datetime.Unix())
		if seen[key] {
			result.addError(i, "datetime", "duplicate (zoneKey, timestamp) pair")

			valid = false
		}

		seen[key] = true

		if !isFinite(rec.Consumption) {
			result.addError(i, "consumption", "non-finite value")

			valid = false
		}

		v.count(result, valid)
	}

	return v.finish(result, len(records))
}

// ValidateExchange validates an exchange series.
func (v *SeriesValidator) ValidateExchange(records []models.ExchangeRecord) *ValidationResult {
	result := v.newResult(len(records))

	seen := make(map[string]bool, len(records))

	var prev time.Time

	for i, rec := range records {
		valid := true

		valid = v.checkOrder(result, i, prev, rec.Datetime) && valid
		prev = rec.Datetime

		key := fmt.Sprintf("%s|%d", rec.SortedZoneKeys, rec.Datetime.Unix())
		if seen[key] {
			result.addError(i, "datetime", "duplicate (pair, timestamp)")

			valid = false
		}

		seen[key] = true

		if !isFinite(rec.NetFlow) {
			result.addError(i, "netFlow", "non-finite value")

			valid = false
		}

		v.count(result, valid)
	}

	return v.finish(result, len(records))
}

func (v *SeriesValidator) newResult(total int) *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Stats:   ValidationStats{TotalRecords: total},
	}
}

func (v *SeriesValidator) checkOrder(result *ValidationResult, index int, prev, current time.Time) bool {
	if index > 0 && current.Before(prev) {
		result.addError(index, "datetime", "timestamps out of order")

		return false
	}

	return true
}

func (v *SeriesValidator) count(result *ValidationResult, valid bool) {
	if valid {
		result.Stats.ValidRecords++
	} else {
		result.Stats.InvalidRecords++
	}
}

func (v *SeriesValidator) finish(result *ValidationResult, total int) *ValidationResult {
	if total == 0 {
		// Every row discarded usually signals upstream format drift.
		if v.strict {
			result.addError(0, "", "series is empty")
		} else {
			result.Warnings = append(result.Warnings, "series is empty")
		}
	}

	result.IsValid = len(result.Errors) == 0

	return result
}

func (r *ValidationResult) addError(index int, field, message string) {
	r.Errors = append(r.Errors, ValidationError{
		Index:   index,
		Field:   field,
		Message: message,
	})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
