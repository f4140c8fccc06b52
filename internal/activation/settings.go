package activation

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/voiceflow/voiceflowd/internal/domain"
)

// SettingsWriter is the configuration boundary the committer persists the
// winning selection through. The desktop app owns the rest of the file.
type SettingsWriter interface {
	Apply(rec domain.ActivationRecord) error
	Current() (domain.ActivationRecord, bool)
}

// TOMLSettings reads and writes the selection keys of the shared
// settings.toml. Unrelated keys in the file are preserved verbatim; the
// write itself goes through a temp file and rename so the app never reads
// a half-written settings file.
type TOMLSettings struct {
	path string
}

func NewTOMLSettings(path string) *TOMLSettings {
	return &TOMLSettings{path: path}
}

func (s *TOMLSettings) load() (map[string]any, error) {
	doc := make(map[string]any)

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", s.path, err)
	}

	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *TOMLSettings) Apply(rec domain.ActivationRecord) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	doc["stt_engine"] = rec.SttEngine
	doc["stt_model"] = rec.SttModelID
	doc["llm_model"] = rec.LlmModelID
	doc["pipeline_mode"] = rec.PipelineMode

	raw, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write settings %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("move settings into place: %w", err)
	}
	return nil
}

// Current returns the selection currently persisted, if all its keys are set.
func (s *TOMLSettings) Current() (domain.ActivationRecord, bool) {
	doc, err := s.load()
	if err != nil {
		return domain.ActivationRecord{}, false
	}

	str := func(key string) string {
		v, _ := doc[key].(string)
		return v
	}

	rec := domain.ActivationRecord{
		SttEngine:    str("stt_engine"),
		SttModelID:   str("stt_model"),
		LlmModelID:   str("llm_model"),
		PipelineMode: str("pipeline_mode"),
	}

	if rec.SttEngine == "" || rec.SttModelID == "" || rec.LlmModelID == "" {
		return domain.ActivationRecord{}, false
	}
	return rec, true
}
