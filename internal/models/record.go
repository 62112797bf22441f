package models

import (
	"sort"
	"strings"
	"time"
)

// ZoneKey identifies an electricity zone, e.g. "CA-QC" or "US-CAL-CISO".
type ZoneKey string

// SortedZoneKeys joins two zone keys in lexicographic order as "A->B".
// Positive net flow on an exchange record means power flowing into the
// second zone of the pair.
func SortedZoneKeys(a, b ZoneKey) string {
	keys := []string{string(a), string(b)}
	sort.Strings(keys)

	return strings.Join(keys, "->")
}

// ProductionRecord is the production mix of one zone at one instant.
type ProductionRecord struct {
	Datetime   time.Time     `json:"datetime"`
	ZoneKey    ZoneKey       `json:"zoneKey"`
	Production ProductionMix `json:"production"`
	Storage    StorageMix    `json:"storage,omitempty"`
	Source     string        `json:"source"`
}

// ConsumptionRecord is the total demand of one zone at one instant.
type ConsumptionRecord struct {
	Datetime    time.Time `json:"datetime"`
	ZoneKey     ZoneKey   `json:"zoneKey"`
	Consumption float64   `json:"consumption"`
	Source      string    `json:"source"`
}

// ExchangeRecord is the net flow between two zones at one instant.
type ExchangeRecord struct {
	Datetime       time.Time `json:"datetime"`
	SortedZoneKeys string    `json:"sortedZoneKeys"`
	NetFlow        float64   `json:"netFlow"`
	Source         string    `json:"source"`
}
