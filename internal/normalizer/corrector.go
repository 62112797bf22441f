package normalizer

import "gridfeed/internal/models"

// ArtifactFields is the set of raw field names whose negative readings are
// known sensor or reporting noise rather than real physical flow. The same
// correction rules recur across independent providers, so the policy is a
// data table, not provider code.
type ArtifactFields map[string]bool

// Contribution splits one corrected reading between the two mixes. A
// clamped artifact still contributes an explicit zero to production; a
// reading redirected to storage contributes nothing to production at all.
type Contribution struct {
	Production    float64
	Storage       float64
	HasProduction bool
	HasStorage    bool
}

// Correct applies the per-mode negative-value policy to one raw reading:
//
//   - negative readings of artifact-correctable fields clamp to a zero
//     production contribution (the reading is discarded as noise, not
//     redirected anywhere);
//   - negative readings of storage-capable modes (hydro, battery) redirect
//     their magnitude to the storage mix as a charge event;
//   - everything else passes through unchanged into production.
func Correct(mode models.Mode, value float64, negativeIsArtifact bool) Contribution {
	if negativeIsArtifact && value < 0 {
		return Contribution{Production: 0, HasProduction: true}
	}

	if mode.IsStorage() && value < 0 {
		return Contribution{Storage: -value, HasStorage: true}
	}

	return Contribution{Production: value, HasProduction: true}
}
