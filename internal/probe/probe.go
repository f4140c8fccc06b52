// Package probe inspects the models directory and reports, per asset,
// whether every required file is present on disk. Probing is purely
// observational: results are never cached, so a probe after a download
// always reflects the filesystem as it is now.
package probe

import (
	"os"
	"path/filepath"

	"github.com/voiceflow/voiceflowd/internal/domain"
)

type Prober struct {
	// ModelsRoot is the directory all assets live under.
	ModelsRoot string

	// MinSingleFileBytes guards single-file assets against truncated
	// downloads. Multi-file assets are checked by presence only.
	MinSingleFileBytes int64
}

func New(modelsRoot string, minSingleFileBytes int64) *Prober {
	return &Prober{ModelsRoot: modelsRoot, MinSingleFileBytes: minSingleFileBytes}
}

// AssetDir returns the directory an asset's files live in: the models root
// itself for single-file assets, or the asset's own subdirectory.
func (p *Prober) AssetDir(a domain.Asset) string {
	if a.Family.IsMultiFile() {
		return filepath.Join(p.ModelsRoot, a.DirectoryName)
	}
	return p.ModelsRoot
}

// LocalPath maps one of an asset's relative file paths to its final
// on-disk location.
func (p *Prober) LocalPath(a domain.Asset, rel string) string {
	return filepath.Join(p.AssetDir(a), filepath.FromSlash(rel))
}

// FilePresent reports whether one required file of an asset is already in
// place and, for single-file families, meets the size floor. The downloader
// uses this to skip files a previous attempt completed.
func (p *Prober) FilePresent(a domain.Asset, rel string) bool {
	info, err := os.Stat(p.LocalPath(a, rel))
	if err != nil || info.IsDir() {
		return false
	}
	if !a.Family.IsMultiFile() && info.Size() < p.MinSingleFileBytes {
		return false
	}
	return true
}

// Complete reports whether every required file of the asset is present.
// A family is either 100% present or treated as absent.
func (p *Prober) Complete(a domain.Asset) bool {
	for _, rel := range a.FileList() {
		if !p.FilePresent(a, rel) {
			return false
		}
	}
	return true
}
