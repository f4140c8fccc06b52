package domain

import "time"

type JobStatus string

const (
	StatusIdle      JobStatus = "idle"
	StatusRunning   JobStatus = "running"
	StatusSucceeded JobStatus = "succeeded"
	StatusFailed    JobStatus = "failed"
)

// DownloadJob tracks one in-flight family acquisition. At most one job per
// family may be Running at a time; the fetch package enforces that.
type DownloadJob struct {
	ID      string    `json:"id"`
	AssetID string    `json:"asset_id"`
	Family  Family    `json:"family"`
	Status  JobStatus `json:"status"`

	TotalFiles     int `json:"total_files"`
	CompletedFiles int `json:"completed_files"`

	// CurrentFileProgress is the byte-level fraction [0,1] of the file
	// being transferred, meaningful for single-file assets.
	CurrentFileProgress float64 `json:"current_file_progress"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	Error      string    `json:"error,omitempty"`
}

// Fraction reports overall job progress in [0,1]: completed files over
// total, refined by the in-flight file's byte fraction.
func (j DownloadJob) Fraction() float64 {
	if j.TotalFiles == 0 {
		return 0
	}
	frac := (float64(j.CompletedFiles) + j.CurrentFileProgress) / float64(j.TotalFiles)
	if frac > 1 {
		frac = 1
	}
	return frac
}
