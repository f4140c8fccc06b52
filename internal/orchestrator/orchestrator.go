// Package orchestrator drives the end-to-end model setup sequence: resolve
// the user's choice, probe local state, download whatever is missing (STT
// bundle first, then the LLM), and commit the selection once everything
// probes complete. Stages are strictly sequential; the LLM stage never
// starts on a failed STT stage.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/voiceflow/voiceflowd/internal/domain"
	"github.com/voiceflow/voiceflowd/internal/fetch"
	"github.com/voiceflow/voiceflowd/internal/infra/logger"
	"github.com/voiceflow/voiceflowd/internal/probe"
	"github.com/voiceflow/voiceflowd/internal/resolver"
)

type Stage string

const (
	StageIdle             Stage = "idle"
	StageResolvingProfile Stage = "resolving_profile"
	StageProbingStt       Stage = "probing_stt"
	StageDownloadingStt   Stage = "downloading_stt"
	StageProbingLlm       Stage = "probing_llm"
	StageDownloadingLlm   Stage = "downloading_llm"
	StageCommitting       Stage = "committing"
	StageComplete         Stage = "complete"
	StageFailed           Stage = "failed"
)

// Event is what the UI boundary sees: the current stage, its progress and,
// for StageFailed, a human-readable message naming the asset involved.
type Event struct {
	Stage    Stage   `json:"stage"`
	Fraction float64 `json:"fraction"`
	Error    string  `json:"error,omitempty"`
}

// Notifier receives every event in order. It is called from the
// orchestration goroutine; implementations must not block for long.
type Notifier func(Event)

// Committer persists a fully-downloaded selection.
type Committer interface {
	Commit(sel domain.EffectiveSelection) error
}

// History records finished acquisition jobs. Optional.
type History interface {
	SaveAcquisition(job domain.DownloadJob) error
}

// Request describes one setup run: a profile id, manual overrides, or both.
// AcknowledgeRuntime confirms the optional-runtime preflight warning.
type Request struct {
	ProfileID          string           `json:"profile_id"`
	Overrides          domain.Overrides `json:"overrides"`
	AcknowledgeRuntime bool             `json:"acknowledge_runtime"`
}

type Orchestrator struct {
	cat       domain.Catalog
	resolver  *resolver.Resolver
	prober    *probe.Prober
	fetcher   *fetch.Fetcher
	committer Committer
	history   History
	caps      domain.HostCapabilities
	log       *logger.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	state   Event
	sel     domain.EffectiveSelection
}

func New(cat domain.Catalog, prober *probe.Prober, fetcher *fetch.Fetcher, committer Committer, history History, caps domain.HostCapabilities, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		cat:       cat,
		resolver:  resolver.New(cat),
		prober:    prober,
		fetcher:   fetcher,
		committer: committer,
		history:   history,
		caps:      caps,
		log:       log,
		state:     Event{Stage: StageIdle},
	}
}

// Preflight resolves the request and reports whether the selection needs
// the optional interpreter runtime that this host does not have. The UI
// shows its warning on true and re-submits with AcknowledgeRuntime set.
// No download is started here.
func (o *Orchestrator) Preflight(req Request) (bool, domain.EffectiveSelection, error) {
	sel, err := o.resolver.Resolve(req.ProfileID, req.Overrides)
	if err != nil {
		return false, sel, err
	}

	needs, err := o.resolver.RequiresOptionalRuntime(sel)
	if err != nil {
		return false, sel, err
	}

	return needs && !o.caps.OptionalRuntimeAvailable, sel, nil
}

// Start launches one setup run in the background. Only one run may be in
// flight; a second Start returns domain.ErrSetupRunning. The notifier, if
// any, receives every stage transition and progress update.
func (o *Orchestrator) Start(req Request, notify Notifier) error {
	ctx, cancel := context.WithCancel(context.Background())
	if err := o.claim(cancel); err != nil {
		cancel()
		return err
	}

	go func() {
		defer cancel()
		_ = o.run(ctx, req, notify)
	}()

	return nil
}

// Run executes one setup sequence synchronously (the CLI path). Callers
// that want the background behavior use Start.
func (o *Orchestrator) Run(ctx context.Context, req Request, notify Notifier) error {
	runCtx, cancel := context.WithCancel(ctx)
	if err := o.claim(cancel); err != nil {
		cancel()
		return err
	}
	defer cancel()

	return o.run(runCtx, req, notify)
}

func (o *Orchestrator) claim(cancel context.CancelFunc) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return domain.ErrSetupRunning
	}
	o.running = true
	o.cancel = cancel
	return nil
}

// run walks the stage sequence. Already-complete families are skipped
// based on a fresh probe, never remembered state, so a retry after a
// partial failure downloads only what is still missing.
func (o *Orchestrator) run(ctx context.Context, req Request, notify Notifier) error {
	defer o.clearRunning()

	emit := func(stage Stage, frac float64) {
		o.setState(Event{Stage: stage, Fraction: frac})
		if notify != nil {
			notify(o.Status())
		}
	}

	fail := func(err error) error {
		o.log.Error("Setup failed: %v", err)
		o.setState(Event{Stage: StageFailed, Error: err.Error()})
		if notify != nil {
			notify(o.Status())
		}
		return err
	}

	emit(StageResolvingProfile, 0)

	warn, sel, err := o.Preflight(req)
	if err != nil {
		return fail(err)
	}
	if warn && !req.AcknowledgeRuntime {
		return fail(fmt.Errorf("selection %s: %w", sel.SttAssetID, domain.ErrRuntimeNotAcknowledged))
	}

	o.mu.Lock()
	o.sel = sel
	o.mu.Unlock()

	stt, err := o.cat.Asset(sel.SttAssetID)
	if err != nil {
		return fail(fmt.Errorf("stt asset %q: %w", sel.SttAssetID, err))
	}
	llm, err := o.cat.Asset(sel.LlmAssetID)
	if err != nil {
		return fail(fmt.Errorf("llm asset %q: %w", sel.LlmAssetID, err))
	}

	// STT stage
	if err := o.acquireStage(ctx, stt, StageProbingStt, StageDownloadingStt, emit); err != nil {
		return fail(err)
	}

	// LLM stage: only reachable once the STT asset probes complete.
	if err := o.acquireStage(ctx, llm, StageProbingLlm, StageDownloadingLlm, emit); err != nil {
		return fail(err)
	}

	emit(StageCommitting, 1)
	if err := o.committer.Commit(sel); err != nil {
		return fail(err)
	}

	o.log.Info("Setup complete: stt=%s llm=%s", sel.SttAssetID, sel.LlmAssetID)
	emit(StageComplete, 1)
	return nil
}

// acquireStage probes one asset, downloads it if incomplete and re-probes
// the result. Succeeding here means the family is 100% present on disk.
func (o *Orchestrator) acquireStage(ctx context.Context, asset domain.Asset, probing, downloading Stage, emit func(Stage, float64)) error {
	emit(probing, 0)

	if o.prober.Complete(asset) {
		o.log.Info("Asset %s already present, skipping download", asset.ID)
		return nil
	}

	emit(downloading, 0)
	err := o.fetcher.Acquire(ctx, asset, func(frac float64) {
		emit(downloading, frac)
	})
	o.recordJob(asset)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("download of %s cancelled by user", asset.ID)
		}
		return fmt.Errorf("download %s: %w", asset.ID, err)
	}

	// Post-download probe catches anything the transfer loop missed,
	// e.g. a required file removed while the download ran.
	emit(probing, 1)
	if !o.prober.Complete(asset) {
		return fmt.Errorf("asset %s incomplete after download", asset.ID)
	}

	return nil
}

func (o *Orchestrator) recordJob(asset domain.Asset) {
	if o.history == nil {
		return
	}
	if job, ok := o.fetcher.Jobs().Get(asset.Family); ok {
		if err := o.history.SaveAcquisition(job); err != nil {
			o.log.Warn("Could not record acquisition history for %s: %v", asset.ID, err)
		}
	}
}

// Cancel aborts the in-flight run, if any. The run ends in StageFailed
// with a cancellation message; nothing is committed.
func (o *Orchestrator) Cancel() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running || o.cancel == nil {
		return false
	}
	o.cancel()
	return true
}

// Status returns the latest observed event.
func (o *Orchestrator) Status() Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Selection returns the pair the current/last run resolved to.
func (o *Orchestrator) Selection() domain.EffectiveSelection {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sel
}

// Running reports whether a run is in flight.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

func (o *Orchestrator) setState(e Event) {
	o.mu.Lock()
	o.state = e
	o.mu.Unlock()
}

func (o *Orchestrator) clearRunning() {
	o.mu.Lock()
	o.running = false
	o.cancel = nil
	o.mu.Unlock()
}
