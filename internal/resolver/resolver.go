// Package resolver turns a user's profile choice (or manual model picks)
// into the concrete asset pair an orchestration run acts on.
package resolver

import (
	"fmt"

	"github.com/voiceflow/voiceflowd/internal/domain"
)

type Resolver struct {
	cat domain.Catalog
}

func New(cat domain.Catalog) *Resolver {
	return &Resolver{cat: cat}
}

// Resolve maps a profile id plus optional manual overrides to an effective
// selection. An empty profileID with full overrides is a pure manual
// selection. Every referenced asset id is validated against the catalog.
func (r *Resolver) Resolve(profileID string, overrides domain.Overrides) (domain.EffectiveSelection, error) {
	var sel domain.EffectiveSelection

	if profileID != "" {
		p, err := r.cat.Profile(profileID)
		if err != nil {
			return sel, fmt.Errorf("profile %q: %w", profileID, err)
		}
		sel.SttAssetID = p.SttAssetID
		sel.LlmAssetID = p.LlmAssetID
	}

	if overrides.SttAssetID != "" {
		sel.SttAssetID = overrides.SttAssetID
	}
	if overrides.LlmAssetID != "" {
		sel.LlmAssetID = overrides.LlmAssetID
	}

	if sel.SttAssetID == "" || sel.LlmAssetID == "" {
		return sel, fmt.Errorf("selection incomplete: stt=%q llm=%q", sel.SttAssetID, sel.LlmAssetID)
	}

	for _, id := range []string{sel.SttAssetID, sel.LlmAssetID} {
		if _, err := r.cat.Asset(id); err != nil {
			return domain.EffectiveSelection{}, fmt.Errorf("asset %q: %w", id, err)
		}
	}

	return sel, nil
}

// AutoSelect picks the profile tier for this machine: the highest MinRamGB
// not exceeding physical memory. Hosts below every tier get the lowest one.
// This is a threshold walk, not a scored match.
func (r *Resolver) AutoSelect(caps domain.HostCapabilities) string {
	tiers := r.cat.Profiles() // sorted by ascending MinRamGB
	if len(tiers) == 0 {
		return ""
	}

	chosen := tiers[0]
	for _, p := range tiers {
		if p.MinRamGB <= caps.PhysicalMemoryGB {
			chosen = p
		}
	}
	return chosen.ID
}

// RequiresOptionalRuntime reports whether the selection's STT asset belongs
// to a family that runs through the optional interpreter runtime. The
// orchestrator uses this to gate a warning before any download starts.
func (r *Resolver) RequiresOptionalRuntime(sel domain.EffectiveSelection) (bool, error) {
	a, err := r.cat.Asset(sel.SttAssetID)
	if err != nil {
		return false, fmt.Errorf("asset %q: %w", sel.SttAssetID, err)
	}
	return a.Family == domain.FamilyConsolidated, nil
}
