// Package catalog holds the static tables of every acquirable model asset
// and the user-facing profiles that pair them. It maps ids like "qwen3-1.7b"
// to concrete HuggingFace download manifests. New models and profiles are
// added to the tables in defaults.go; nothing here mutates after load.
package catalog

import (
	"sort"
	"strings"

	"github.com/voiceflow/voiceflowd/internal/domain"
)

// MinSingleFileBytes is the completeness floor for single-file assets.
// A GGUF smaller than this is treated as a truncated download. Multi-file
// assets are validated by presence only.
const MinSingleFileBytes int64 = 100 * 1024 * 1024

// Static is an immutable id-indexed catalog.
type Static struct {
	assets      []domain.Asset
	profiles    []domain.Profile
	assetByID   map[string]domain.Asset
	profileByID map[string]domain.Profile
}

func New(assets []domain.Asset, profiles []domain.Profile) *Static {
	s := &Static{
		assets:      assets,
		profiles:    profiles,
		assetByID:   make(map[string]domain.Asset, len(assets)),
		profileByID: make(map[string]domain.Profile, len(profiles)),
	}

	for _, a := range assets {
		s.assetByID[a.ID] = a
	}
	for _, p := range profiles {
		s.profileByID[p.ID] = p
	}

	sort.SliceStable(s.profiles, func(i, j int) bool {
		return s.profiles[i].MinRamGB < s.profiles[j].MinRamGB
	})

	return s
}

// Default returns the built-in catalog. A non-empty mirror replaces the
// HuggingFace host in every asset's download URL, for installs that fetch
// through a caching mirror.
func Default(mirror string) *Static {
	assets := defaultAssets()
	if mirror != "" {
		mirror = strings.TrimSuffix(mirror, "/")
		for i := range assets {
			assets[i].RemoteBase = strings.Replace(assets[i].RemoteBase, hfHost, mirror, 1)
		}
	}
	return New(assets, defaultProfiles())
}

// Asset looks up one asset by id.
func (s *Static) Asset(id string) (domain.Asset, error) {
	a, ok := s.assetByID[id]
	if !ok {
		return domain.Asset{}, domain.ErrUnknownAsset
	}
	return a, nil
}

// Profile looks up one profile by id.
func (s *Static) Profile(id string) (domain.Profile, error) {
	p, ok := s.profileByID[id]
	if !ok {
		return domain.Profile{}, domain.ErrUnknownProfile
	}
	return p, nil
}

// Assets returns every asset in declaration order.
func (s *Static) Assets() []domain.Asset {
	out := make([]domain.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Profiles returns every profile sorted by ascending RAM tier, which is
// the order auto-selection walks them in.
func (s *Static) Profiles() []domain.Profile {
	out := make([]domain.Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}
