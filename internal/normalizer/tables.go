package normalizer

import "gridfeed/internal/models"

// Built-in per-provider tables. Config can override both tables per source
// without touching the correction algorithm.

// CaisoModes maps the CAISO fuel source CSV columns (lowercased) onto the
// canonical taxonomy.
var CaisoModes = ModeTable{
	"solar":       models.ModeSolar,
	"wind":        models.ModeWind,
	"geothermal":  models.ModeGeothermal,
	"biomass":     models.ModeBiomass,
	"biogas":      models.ModeBiomass,
	"small hydro": models.ModeHydro,
	"large hydro": models.ModeHydro,
	"coal":        models.ModeCoal,
	"nuclear":     models.ModeNuclear,
	"natural gas": models.ModeGas,
	"batteries":   models.ModeBattery,
	"other":       models.ModeUnknown,
}

// CaisoArtifacts flags the CAISO fields whose negative readings are data
// artifacts. Hydro and batteries can legitimately run negative while
// storing energy, everything else cannot.
var CaisoArtifacts = ArtifactFields{
	"solar":       true,
	"wind":        true,
	"geothermal":  true,
	"biomass":     true,
	"biogas":      true,
	"coal":        true,
	"nuclear":     true,
	"natural gas": true,
	"other":       true,
}

// HydroQuebecModes maps the Hydro-Québec open-data field names onto the
// canonical taxonomy. "autres" is almost entirely biomass.
var HydroQuebecModes = ModeTable{
	"autres":      models.ModeBiomass,
	"hydraulique": models.ModeHydro,
	"thermique":   models.ModeGas,
	"solaire":     models.ModeSolar,
	"eolien":      models.ModeWind,
}

// HydroQuebecArtifacts flags the Hydro-Québec fields whose negative
// readings are data artifacts.
var HydroQuebecArtifacts = ArtifactFields{
	"autres":    true,
	"thermique": true,
	"solaire":   true,
	"eolien":    true,
}

// DefaultModes returns the built-in mode table for a provider, or an empty
// table when the provider has none.
func DefaultModes(provider string) ModeTable {
	switch provider {
	case "caiso":
		return CaisoModes
	case "hydroquebec":
		return HydroQuebecModes
	}

	return ModeTable{}
}

// DefaultArtifacts returns the built-in artifact flag table for a
// provider.
func DefaultArtifacts(provider string) ArtifactFields {
	switch provider {
	case "caiso":
		return CaisoArtifacts
	case "hydroquebec":
		return HydroQuebecArtifacts
	}

	return ArtifactFields{}
}

// DefaultRules returns the built-in row filter rules for a provider and
// data kind. Hydro-Québec signals "not yet reported" with a zero total on
// production rows and omits demandeTotal on unusable consumption rows.
func DefaultRules(provider, kind string) Rules {
	switch provider {
	case "hydroquebec":
		switch kind {
		case "production":
			return Rules{TotalField: "total"}
		case "consumption":
			return Rules{RequiredField: "demandeTotal"}
		}
	}

	return Rules{}
}

// DefaultConsumptionField returns the demand column name of a provider's
// consumption feed.
func DefaultConsumptionField(provider string) string {
	switch provider {
	case "hydroquebec":
		return "demandeTotal"
	case "caiso":
		return "current demand"
	}

	return ""
}

// DefaultNetFlowField returns the flow column name of a provider's
// exchange feed. The CAISO CSV reports imports into California as
// positive, which matches the sorted-pair convention as-is.
func DefaultNetFlowField(provider string) string {
	switch provider {
	case "caiso":
		return "imports"
	case "cenace":
		return "netflow"
	}

	return ""
}
