package domain

// Profile is a named preset mapping to a concrete (STT, LLM) asset pair.
// Profiles are read-only catalog entries.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	SttAssetID  string `json:"stt_asset_id"`
	LlmAssetID  string `json:"llm_asset_id"`

	// RequiresOptionalRuntime is true when the profile's STT family
	// depends on an interpreter runtime that may not be installed.
	RequiresOptionalRuntime bool `json:"requires_optional_runtime"`

	// MinRamGB is the smallest physical memory this tier is intended
	// for. Auto-selection picks the highest tier not exceeding the host.
	MinRamGB int `json:"min_ram_gb"`
}

// EffectiveSelection is the resolved asset pair one orchestration run acts
// on. It exists only for the duration of that run.
type EffectiveSelection struct {
	SttAssetID string `json:"stt_asset_id"`
	LlmAssetID string `json:"llm_asset_id"`
}

// Overrides replaces one or both fields of a profile's selection when the
// user picks models manually. Empty fields keep the profile's value.
type Overrides struct {
	SttAssetID string `json:"stt_asset_id,omitempty"`
	LlmAssetID string `json:"llm_asset_id,omitempty"`
}

// HostCapabilities is what the host boundary reports about this machine.
// The orchestrator consumes it; it never probes the OS itself.
type HostCapabilities struct {
	PhysicalMemoryGB         int  `json:"physical_memory_gb"`
	OptionalRuntimeAvailable bool `json:"optional_runtime_available"`
}

// ActivationRecord is the committed state written to persistent settings
// once both assets of a selection probe complete. The write is
// all-or-nothing.
type ActivationRecord struct {
	SttEngine    string `toml:"stt_engine" json:"stt_engine"`
	SttModelID   string `toml:"stt_model" json:"stt_model"`
	LlmModelID   string `toml:"llm_model" json:"llm_model"`
	PipelineMode string `toml:"pipeline_mode" json:"pipeline_mode"`
}
