// Package models defines the canonical record types shared across the worker.
package models

// Mode is a canonical energy source category. The set is closed: provider
// field names are mapped onto it, never added to it.
type Mode string

// Canonical modes.
const (
	ModeBiomass    Mode = "biomass"
	ModeHydro      Mode = "hydro"
	ModeGas        Mode = "gas"
	ModeSolar      Mode = "solar"
	ModeWind       Mode = "wind"
	ModeGeothermal Mode = "geothermal"
	ModeCoal       Mode = "coal"
	ModeNuclear    Mode = "nuclear"
	ModeUnknown    Mode = "unknown"
	ModeBattery    Mode = "battery"
)

// Modes lists every canonical mode.
var Modes = []Mode{
	ModeBiomass,
	ModeHydro,
	ModeGas,
	ModeSolar,
	ModeWind,
	ModeGeothermal,
	ModeCoal,
	ModeNuclear,
	ModeUnknown,
	ModeBattery,
}

// IsValid reports whether m is one of the canonical modes.
func (m Mode) IsValid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}

	return false
}

// IsStorage reports whether the mode can both generate and absorb power.
// Sign indicates direction for these modes; for everything else a negative
// reading is a data artifact.
func (m Mode) IsStorage() bool {
	return m == ModeHydro || m == ModeBattery
}
