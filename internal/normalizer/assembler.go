package normalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gridfeed/internal/models"
)

// ErrMalformedTimestamp is returned when a fragmented time value cannot be
// reconstructed into a timestamp.
var ErrMalformedTimestamp = errors.New("malformed time fragment")

// Assembler builds canonical records for one zone: it reconstructs full
// timestamps from fragmented "HH:MM" clock values and tags records with
// the zone key and source attribution.
type Assembler struct {
	location *time.Location
	zone     models.ZoneKey
	source   string
}

// NewAssembler creates an assembler for the given zone. Timestamps are
// expressed in the zone's civil timezone.
func NewAssembler(zone models.ZoneKey, location *time.Location, source string) *Assembler {
	return &Assembler{
		zone:     zone,
		location: location,
		source:   source,
	}
}

// CombineClock reconstructs a full timestamp from the reference date's
// year/month/day and a colon-separated "HH:MM" fragment. The fragment must
// split into exactly two integer components with hour in [0,23] and minute
// in [0,59]; anything else fails with ErrMalformedTimestamp. Sentinel
// fragments such as a placeholder midnight are not special-cased here;
// distinguishing them is the row filter's responsibility.
func (a *Assembler) CombineClock(reference time.Time, clock string) (time.Time, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, clock)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, clock)
	}

	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, clock)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %q out of range", ErrMalformedTimestamp, clock)
	}

	year, month, day := reference.In(a.location).Date()

	return time.Date(year, month, day, hour, minute, 0, 0, a.location), nil
}

// RowTimestamp resolves the timestamp of a raw row: a full timestamp is
// normalized into the assembler's timezone, a fragmented clock is combined
// with the reference date.
func (a *Assembler) RowTimestamp(reference time.Time, row models.RawRow) (time.Time, error) {
	if !row.HasClock() {
		return row.Datetime.In(a.location), nil
	}

	return a.CombineClock(reference, row.Clock)
}

// Production builds a production record at the given instant.
func (a *Assembler) Production(ts time.Time, production models.ProductionMix, storage models.StorageMix) models.ProductionRecord {
	return models.ProductionRecord{
		ZoneKey:    a.zone,
		Datetime:   ts,
		Production: production,
		Storage:    storage,
		Source:     a.source,
	}
}

// Consumption builds a total-consumption record at the given instant.
func (a *Assembler) Consumption(ts time.Time, consumption float64) models.ConsumptionRecord {
	return models.ConsumptionRecord{
		ZoneKey:     a.zone,
		Datetime:    ts,
		Consumption: consumption,
		Source:      a.source,
	}
}

// Exchange builds a net-flow record between the assembler's zone and the
// given neighbour. Zone keys are sorted; positive net flow means power
// into the second zone of the pair.
func (a *Assembler) Exchange(neighbour models.ZoneKey, ts time.Time, netFlow float64) models.ExchangeRecord {
	return models.ExchangeRecord{
		SortedZoneKeys: models.SortedZoneKeys(a.zone, neighbour),
		Datetime:       ts,
		NetFlow:        netFlow,
		Source:         a.source,
	}
}
