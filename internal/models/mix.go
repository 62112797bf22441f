package models

// ProductionMix maps canonical modes to generated power in MW. A mode
// appears at most once; multiple raw fields mapping to the same mode
// accumulate additively.
type ProductionMix map[Mode]float64

// Add accumulates value into the mode's entry, creating it if absent.
func (p ProductionMix) Add(mode Mode, value float64) {
	p[mode] += value
}

// StorageMix maps storage-capable modes to storage flow in MW. Positive
// means net charge (absorbing power from the grid), negative means net
// discharge. Entries are derived by the value corrector, never sourced
// directly from a provider field.
type StorageMix map[Mode]float64

// Add accumulates value into the mode's entry, creating it if absent.
func (s StorageMix) Add(mode Mode, value float64) {
	s[mode] += value
}
