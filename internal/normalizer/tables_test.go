package normalizer

import (
	"testing"

	"gridfeed/internal/models"
)

func TestDefaultModes(t *testing.T) {
	if got := DefaultModes("caiso").Lookup("natural gas"); got != models.ModeGas {
		t.Errorf("caiso natural gas = %s, want gas", got)
	}

	if got := DefaultModes("hydroquebec").Lookup("autres"); got != models.ModeBiomass {
		t.Errorf("hydroquebec autres = %s, want biomass", got)
	}

	if len(DefaultModes("cenace")) != 0 {
		t.Error("cenace has no production mode table")
	}
}

func TestDefaultArtifacts(t *testing.T) {
	caiso := DefaultArtifacts("caiso")

	if !caiso["solar"] {
		t.Error("caiso solar must be artifact-correctable")
	}

	// Hydro and batteries legitimately run negative while storing.
	if caiso["small hydro"] || caiso["large hydro"] || caiso["batteries"] {
		t.Error("caiso storage-capable fields must not be artifact-correctable")
	}
}

func TestDefaultRules(t *testing.T) {
	prod := DefaultRules("hydroquebec", "production")
	if prod.TotalField != "total" {
		t.Errorf("production TotalField = %q, want total", prod.TotalField)
	}

	cons := DefaultRules("hydroquebec", "consumption")
	if cons.RequiredField != "demandeTotal" {
		t.Errorf("consumption RequiredField = %q, want demandeTotal", cons.RequiredField)
	}

	if caiso := DefaultRules("caiso", "production"); caiso.TotalField != "" || caiso.RequiredField != "" {
		t.Errorf("caiso rules = %+v, want empty", caiso)
	}
}

func TestDefaultFieldNames(t *testing.T) {
	if got := DefaultConsumptionField("hydroquebec"); got != "demandeTotal" {
		t.Errorf("hydroquebec consumption field = %q", got)
	}

	if got := DefaultConsumptionField("caiso"); got != "current demand" {
		t.Errorf("caiso consumption field = %q", got)
	}

	if got := DefaultNetFlowField("cenace"); got != "netflow" {
		t.Errorf("cenace net flow field = %q", got)
	}

	if got := DefaultNetFlowField("caiso"); got != "imports" {
		t.Errorf("caiso net flow field = %q", got)
	}
}
