// Package activation persists a fully-downloaded selection as the active
// configuration. A commit is all-or-nothing: both assets must probe
// complete at call time or nothing is written.
package activation

import (
	"fmt"
	"sync"

	"github.com/voiceflow/voiceflowd/internal/domain"
	"github.com/voiceflow/voiceflowd/internal/infra/logger"
	"github.com/voiceflow/voiceflowd/internal/probe"
)

type Committer struct {
	cat      domain.Catalog
	prober   *probe.Prober
	settings SettingsWriter
	log      *logger.Logger

	// PipelineMode is stamped into every activation record.
	pipelineMode string

	mu              sync.Mutex
	restartRequired bool
}

func NewCommitter(cat domain.Catalog, prober *probe.Prober, settings SettingsWriter, pipelineMode string, log *logger.Logger) *Committer {
	return &Committer{
		cat:          cat,
		prober:       prober,
		settings:     settings,
		log:          log,
		pipelineMode: pipelineMode,
	}
}

// Commit re-probes both assets of the selection and, if complete, writes
// the activation record through the settings boundary. Committing the
// selection that is already active is a no-op and does not raise the
// restart flag, so re-running setup over an unchanged install never
// prompts a spurious restart.
func (c *Committer) Commit(sel domain.EffectiveSelection) error {
	stt, err := c.cat.Asset(sel.SttAssetID)
	if err != nil {
		return fmt.Errorf("stt asset %q: %w", sel.SttAssetID, err)
	}
	llm, err := c.cat.Asset(sel.LlmAssetID)
	if err != nil {
		return fmt.Errorf("llm asset %q: %w", sel.LlmAssetID, err)
	}

	// Probe at call time, never from memory: a file deleted between the
	// download and the commit must fail the commit.
	if !c.prober.Complete(stt) {
		return fmt.Errorf("stt asset %s: %w", stt.ID, domain.ErrActivationIncomplete)
	}
	if !c.prober.Complete(llm) {
		return fmt.Errorf("llm asset %s: %w", llm.ID, domain.ErrActivationIncomplete)
	}

	rec := domain.ActivationRecord{
		SttEngine:    stt.Family.SttEngine(),
		SttModelID:   stt.ID,
		LlmModelID:   llm.ID,
		PipelineMode: c.pipelineMode,
	}

	if current, ok := c.settings.Current(); ok && current == rec {
		c.log.Info("Selection %s/%s already active, nothing to commit", stt.ID, llm.ID)
		return nil
	}

	if err := c.settings.Apply(rec); err != nil {
		return fmt.Errorf("persist selection: %w", err)
	}

	c.mu.Lock()
	c.restartRequired = true
	c.mu.Unlock()

	c.log.Info("Activated stt=%s (%s) llm=%s", rec.SttModelID, rec.SttEngine, rec.LlmModelID)
	return nil
}

// RestartRequired reports whether a commit since process start changed the
// active selection. The flag is sticky until the process is relaunched.
func (c *Committer) RestartRequired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restartRequired
}
