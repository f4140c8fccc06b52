package store

import (
	"database/sql"
	"time"

	"github.com/voiceflow/voiceflowd/internal/domain"
)

// SaveAcquisition upserts one finished (or running) job record.
func (s *PersistentStore) SaveAcquisition(job domain.DownloadJob) error {
	query := `INSERT OR REPLACE INTO acquisitions
              (id, asset_id, family, status, total_files, completed_files, error, started_at, finished_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var finished any
	if !job.FinishedAt.IsZero() {
		finished = job.FinishedAt
	}

	_, err := s.db.Exec(query,
		job.ID,
		job.AssetID,
		string(job.Family),
		string(job.Status),
		job.TotalFiles,
		job.CompletedFiles,
		job.Error,
		job.StartedAt,
		finished,
	)
	return err
}

// RecentAcquisitions returns up to limit job records, newest first.
func (s *PersistentStore) RecentAcquisitions(limit int) ([]domain.DownloadJob, error) {
	rows, err := s.db.Query(
		`SELECT id, asset_id, family, status, total_files, completed_files, error, started_at, finished_at
         FROM acquisitions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.DownloadJob
	for rows.Next() {
		var job domain.DownloadJob
		var family, status string
		var finished sql.NullTime

		err := rows.Scan(&job.ID, &job.AssetID, &family, &status,
			&job.TotalFiles, &job.CompletedFiles, &job.Error, &job.StartedAt, &finished)
		if err != nil {
			return nil, err
		}

		job.Family = domain.Family(family)
		job.Status = domain.JobStatus(status)
		if finished.Valid {
			job.FinishedAt = finished.Time
		} else {
			job.FinishedAt = time.Time{}
		}

		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}
