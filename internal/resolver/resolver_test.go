package resolver

import (
	"errors"
	"testing"

	"github.com/voiceflow/voiceflowd/internal/catalog"
	"github.com/voiceflow/voiceflowd/internal/domain"
)

func testCatalog() domain.Catalog {
	assets := []domain.Asset{
		{ID: "stt-small", Family: domain.FamilyMoonshine, DirectoryName: "stt-small", RequiredFiles: []string{"a"}},
		{ID: "stt-big", Family: domain.FamilyConsolidated, DirectoryName: "stt-big", RequiredFiles: []string{"a"}},
		{ID: "llm-small", Family: domain.FamilyLLM, Filename: "small.gguf"},
		{ID: "llm-big", Family: domain.FamilyLLM, Filename: "big.gguf"},
	}
	profiles := []domain.Profile{
		{ID: "low", SttAssetID: "stt-small", LlmAssetID: "llm-small", MinRamGB: 8},
		{ID: "mid", SttAssetID: "stt-small", LlmAssetID: "llm-big", MinRamGB: 16},
		{ID: "high", SttAssetID: "stt-big", LlmAssetID: "llm-big", RequiresOptionalRuntime: true, MinRamGB: 32},
	}
	return catalog.New(assets, profiles)
}

func TestResolve(t *testing.T) {
	r := New(testCatalog())

	t.Run("profile resolves verbatim", func(t *testing.T) {
		sel, err := r.Resolve("mid", domain.Overrides{})
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if sel.SttAssetID != "stt-small" || sel.LlmAssetID != "llm-big" {
			t.Errorf("Resolve() = %+v, want profile ids", sel)
		}
	})

	t.Run("override replaces one field", func(t *testing.T) {
		sel, err := r.Resolve("low", domain.Overrides{LlmAssetID: "llm-big"})
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if sel.SttAssetID != "stt-small" || sel.LlmAssetID != "llm-big" {
			t.Errorf("Resolve() = %+v, want overridden llm", sel)
		}
	})

	t.Run("pure manual selection", func(t *testing.T) {
		sel, err := r.Resolve("", domain.Overrides{SttAssetID: "stt-big", LlmAssetID: "llm-small"})
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if sel.SttAssetID != "stt-big" || sel.LlmAssetID != "llm-small" {
			t.Errorf("Resolve() = %+v", sel)
		}
	})

	t.Run("unknown profile fails", func(t *testing.T) {
		_, err := r.Resolve("turbo", domain.Overrides{})
		if !errors.Is(err, domain.ErrUnknownProfile) {
			t.Errorf("error = %v, want ErrUnknownProfile", err)
		}
	})

	t.Run("unknown asset override fails", func(t *testing.T) {
		_, err := r.Resolve("low", domain.Overrides{SttAssetID: "nope"})
		if !errors.Is(err, domain.ErrUnknownAsset) {
			t.Errorf("error = %v, want ErrUnknownAsset", err)
		}
	})

	t.Run("incomplete manual selection fails", func(t *testing.T) {
		_, err := r.Resolve("", domain.Overrides{SttAssetID: "stt-small"})
		if err == nil {
			t.Error("Resolve() = nil error for half a selection")
		}
	})
}

func TestAutoSelect(t *testing.T) {
	r := New(testCatalog())

	cases := []struct {
		ramGB int
		want  string
	}{
		{4, "low"},   // below every tier: lowest wins
		{8, "low"},   // exactly the lowest tier
		{16, "mid"},  // exactly a tier boundary
		{24, "mid"},  // between tiers: round down
		{32, "high"}, // top tier
		{128, "high"},
	}

	for _, tc := range cases {
		got := r.AutoSelect(domain.HostCapabilities{PhysicalMemoryGB: tc.ramGB})
		if got != tc.want {
			t.Errorf("AutoSelect(%dGB) = %q, want %q", tc.ramGB, got, tc.want)
		}
	}
}

func TestRequiresOptionalRuntime(t *testing.T) {
	r := New(testCatalog())

	t.Run("moonshine family does not", func(t *testing.T) {
		needs, err := r.RequiresOptionalRuntime(domain.EffectiveSelection{SttAssetID: "stt-small", LlmAssetID: "llm-small"})
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if needs {
			t.Error("moonshine selection reported as needing the optional runtime")
		}
	})

	t.Run("consolidated family does", func(t *testing.T) {
		needs, err := r.RequiresOptionalRuntime(domain.EffectiveSelection{SttAssetID: "stt-big", LlmAssetID: "llm-small"})
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if !needs {
			t.Error("consolidated selection reported as not needing the optional runtime")
		}
	})
}
