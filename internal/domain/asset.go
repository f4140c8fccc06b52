package domain

// Family describes the structural shape of a downloadable asset.
// It determines the file manifest and the completeness rule.
type Family string

const (
	// FamilyLLM is a single-file GGUF language model.
	FamilyLLM Family = "llm"
	// FamilyMoonshine is a multi-file ONNX speech model (Moonshine layout).
	FamilyMoonshine Family = "moonshine"
	// FamilyConsolidated is a multi-file speech model with consolidated
	// weights. Inference for this family runs through the optional
	// interpreter runtime.
	FamilyConsolidated Family = "consolidated"
)

// IsMultiFile reports whether assets of this family ship as a directory
// of required files rather than one standalone file.
func (f Family) IsMultiFile() bool {
	return f == FamilyMoonshine || f == FamilyConsolidated
}

// SttEngine returns the engine identifier persisted to settings for a
// speech family, or "" for non-speech families.
func (f Family) SttEngine() string {
	switch f {
	case FamilyMoonshine:
		return "moonshine"
	case FamilyConsolidated:
		return "whisper"
	default:
		return ""
	}
}

// Asset identifies one downloadable model bundle. Instances come from the
// static catalog and are never mutated after load.
type Asset struct {
	ID          string `json:"id"`
	Family      Family `json:"family"`
	DisplayName string `json:"display_name"`

	// SizeEstimate is the approximate total download size in bytes,
	// used for UI display only.
	SizeEstimate int64 `json:"size_estimate"`

	// Filename is set for single-file families.
	Filename string `json:"filename,omitempty"`

	// DirectoryName and RequiredFiles are set for multi-file families.
	// RequiredFiles is an ordered manifest of paths relative to the
	// asset directory; downloads process it strictly in order.
	DirectoryName string   `json:"directory_name,omitempty"`
	RequiredFiles []string `json:"required_files,omitempty"`

	// RemoteBase is the URL prefix each file path is appended to.
	RemoteBase string `json:"-"`
}

// FileList returns the ordered list of relative paths to fetch for this
// asset: the declared manifest for multi-file families, or the single
// filename otherwise.
func (a Asset) FileList() []string {
	if a.Family.IsMultiFile() {
		return a.RequiredFiles
	}
	return []string{a.Filename}
}
