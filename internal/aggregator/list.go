// Package aggregator accumulates validated canonical records. It owns the
// ordering and duplicate policy of the output sequence; all row-level
// validation happens before records reach an Append call.
package aggregator

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gridfeed/internal/logger"
	"gridfeed/internal/models"
)

// ErrDuplicateRecord is returned when an appended record conflicts with an
// already-accumulated (key, timestamp) pair and loses per the configured
// policy.
var ErrDuplicateRecord = errors.New("duplicate record")

// DuplicatePolicy selects which record survives a key conflict.
type DuplicatePolicy string

// Duplicate policies.
const (
	FirstWins DuplicatePolicy = "first"
	LastWins  DuplicatePolicy = "last"
)

func recordKey(key string, ts time.Time) string {
	return fmt.Sprintf("%s|%d", key, ts.Unix())
}

// ProductionBreakdownList accumulates production records keyed by
// (zone, timestamp).
type ProductionBreakdownList struct {
	index   map[string]int
	logger  *logger.Logger
	policy  DuplicatePolicy
	records []models.ProductionRecord
}

// NewProductionBreakdownList creates an empty list with the given
// duplicate policy.
func NewProductionBreakdownList(policy DuplicatePolicy, log *logger.Logger) *ProductionBreakdownList {
	return &ProductionBreakdownList{
		policy: policy,
		index:  make(map[string]int),
		logger: log,
	}
}

// Append adds a record. A duplicate (zone, timestamp) insertion either
// replaces the existing record (last-wins) or is rejected with
// ErrDuplicateRecord (first-wins).
func (l *ProductionBreakdownList) Append(rec models.ProductionRecord) error {
	key := recordKey(string(rec.ZoneKey), rec.Datetime)

	if pos, ok := l.index[key]; ok {
		if l.policy == LastWins {
			l.records[pos] = rec

			return nil
		}

		l.logger.Debug("rejected duplicate production record", "zone", rec.ZoneKey, "datetime", rec.Datetime)

		return fmt.Errorf("%w: %s @ %s", ErrDuplicateRecord, rec.ZoneKey, rec.Datetime)
	}

	l.index[key] = len(l.records)
	l.records = append(l.records, rec)

	return nil
}

// Records returns the accumulated records in ascending timestamp order.
// The returned slice is a copy; iterating it is restartable.
func (l *ProductionBreakdownList) Records() []models.ProductionRecord {
	out := make([]models.ProductionRecord, len(l.records))
	copy(out, l.records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Datetime.Before(out[j].Datetime)
	})

	return out
}

// Len returns the number of accumulated records.
func (l *ProductionBreakdownList) Len() int {
	return len(l.records)
}

// TotalConsumptionList accumulates consumption records keyed by
// (zone, timestamp).
type TotalConsumptionList struct {
	index   map[string]int
	logger  *logger.Logger
	policy  DuplicatePolicy
	records []models.ConsumptionRecord
}

// NewTotalConsumptionList creates an empty list with the given duplicate
// policy.
func NewTotalConsumptionList(policy DuplicatePolicy, log *logger.Logger) *TotalConsumptionList {
	return &TotalConsumptionList{
		policy: policy,
		index:  make(map[string]int),
		logger: log,
	}
}

// Append adds a record, resolving duplicates per policy.
func (l *TotalConsumptionList) Append(rec models.ConsumptionRecord) error {
	key := recordKey(string(rec.ZoneKey), rec.Datetime)

	if pos, ok := l.index[key]; ok {
		if l.policy == LastWins {
			l.records[pos] = rec

			return nil
		}

		l.logger.Debug("rejected duplicate consumption record", "zone", rec.ZoneKey, "datetime", rec.Datetime)

		return fmt.Errorf("%w: %s @ %s", ErrDuplicateRecord, rec.ZoneKey, rec.Datetime)
	}

	l.index[key] = len(l.records)
	l.records = append(l.records, rec)

	return nil
}

// Records returns the accumulated records in ascending timestamp order.
func (l *TotalConsumptionList) Records() []models.ConsumptionRecord {
	out := make([]models.ConsumptionRecord, len(l.records))
	copy(out, l.records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Datetime.Before(out[j].Datetime)
	})

	return out
}

// Len returns the number of accumulated records.
func (l *TotalConsumptionList) Len() int {
	return len(l.records)
}

// ExchangeList accumulates exchange records keyed by
// (sorted zone pair, timestamp).
type ExchangeList struct {
	index   map[string]int
	logger  *logger.Logger
	policy  DuplicatePolicy
	records []models.ExchangeRecord
}

// NewExchangeList creates an empty list with the given duplicate policy.
func NewExchangeList(policy DuplicatePolicy, log *logger.Logger) *ExchangeList {
	return &ExchangeList{
		policy: policy,
		index:  make(map[string]int),
		logger: log,
	}
}

// Append adds a record, resolving duplicates per policy.
func (l *ExchangeList) Append(rec models.ExchangeRecord) error {
	key := recordKey(rec.SortedZoneKeys, rec.Datetime)

	if pos, ok := l.index[key]; ok {
		if l.policy == LastWins {
			l.records[pos] = rec

			return nil
		}

		l.logger.Debug("rejected duplicate exchange record", "pair", rec.SortedZoneKeys, "datetime", rec.Datetime)

		return fmt.Errorf("%w: %s @ %s", ErrDuplicateRecord, rec.SortedZoneKeys, rec.Datetime)
	}

	l.index[key] = len(l.records)
	l.records = append(l.records, rec)

	return nil
}

// Records returns the accumulated records in ascending timestamp order.
func (l *ExchangeList) Records() []models.ExchangeRecord {
	out := make([]models.ExchangeRecord, len(l.records))
	copy(out, l.records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Datetime.Before(out[j].Datetime)
	})

	return out
}

// Len returns the number of accumulated records.
func (l *ExchangeList) Len() int {
	return len(l.records)
}
