package fetch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/voiceflow/voiceflowd/internal/domain"
)

// Jobs is the per-family download job table. It is the single concurrency
// control for acquisitions: a family with a Running job rejects any further
// Acquire immediately rather than queueing it. All job mutation happens
// under the table lock so readers never see torn progress values.
type Jobs struct {
	mu   sync.Mutex
	jobs map[domain.Family]*domain.DownloadJob
}

func NewJobs() *Jobs {
	return &Jobs{jobs: make(map[domain.Family]*domain.DownloadJob)}
}

// begin registers a Running job for the family, enforcing single-flight.
func (t *Jobs) begin(a domain.Asset, totalFiles int) (*domain.DownloadJob, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if j, ok := t.jobs[a.Family]; ok && j.Status == domain.StatusRunning {
		return nil, domain.ErrDownloadInFlight
	}

	job := &domain.DownloadJob{
		ID:         ksuid.New().String(),
		AssetID:    a.ID,
		Family:     a.Family,
		Status:     domain.StatusRunning,
		TotalFiles: totalFiles,
		StartedAt:  time.Now(),
	}
	t.jobs[a.Family] = job
	return job, nil
}

// fileDone bumps the completed-file counter and resets the byte fraction
// for the next file in the manifest.
func (t *Jobs) fileDone(family domain.Family) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if j, ok := t.jobs[family]; ok {
		j.CompletedFiles++
		j.CurrentFileProgress = 0
	}
}

// byteProgress records the in-flight file's byte fraction.
func (t *Jobs) byteProgress(family domain.Family, frac float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if j, ok := t.jobs[family]; ok {
		j.CurrentFileProgress = frac
	}
}

// finish marks the family's job Succeeded or Failed. A cancellation gets a
// distinct message so the UI can word it as a user action, not a fault.
func (t *Jobs) finish(family domain.Family, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[family]
	if !ok {
		return
	}

	j.FinishedAt = time.Now()

	if err != nil {
		j.Status = domain.StatusFailed
		if errors.Is(err, context.Canceled) {
			j.Error = "cancelled by user"
		} else {
			j.Error = err.Error()
		}
		return
	}

	j.Status = domain.StatusSucceeded
	j.CompletedFiles = j.TotalFiles
	j.CurrentFileProgress = 0
}

// Get returns a copy of the family's most recent job.
func (t *Jobs) Get(family domain.Family) (domain.DownloadJob, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[family]
	if !ok {
		return domain.DownloadJob{}, false
	}
	return *j, true
}

// Fraction returns the family's current overall progress in [0,1].
func (t *Jobs) Fraction(family domain.Family) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if j, ok := t.jobs[family]; ok {
		return j.Fraction()
	}
	return 0
}

// Snapshot returns copies of every family's most recent job.
func (t *Jobs) Snapshot() []domain.DownloadJob {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.DownloadJob, 0, len(t.jobs))
	for _, j := range t.jobs {
		out = append(out, *j)
	}
	return out
}
