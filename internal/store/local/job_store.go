package local

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"niche/internal/models"
	"niche/internal/store"
)

// RecordJobEnqueue inserts a job record. Recording the same job twice is a no-op.
func (s *Store) RecordJobEnqueue(ctx context.Context, params store.JobRecordParams) error {
	payload := "{}"
	if len(params.Payload) > 0 {
		payload = string(params.Payload)
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO background_jobs (job_id, task_type, payload, queue, status, creator_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		params.JobID.String(), params.TaskType, payload, params.Queue, params.Status,
		nullableUUID(params.CreatorID), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to record job enqueue event for JobID %s: %w", params.JobID, err)
	}
	return nil
}

func (s *Store) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastErr *string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE background_jobs SET status = ?, last_error = ?, updated_at = ? WHERE job_id = ?`,
		status, lastErr, time.Now().UTC(), jobID.String())
	if err != nil {
		return fmt.Errorf("failed to update job status for job %s: %w", jobID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("job %s not found to update status: %w", jobID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, task_type, payload, queue, status, creator_id, last_error, created_at, updated_at
		FROM background_jobs
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.BackgroundJob{}
	for rows.Next() {
		var (
			job       models.BackgroundJob
			payload   []byte
			creatorID sql.NullString
			lastErr   sql.NullString
		)
		if err := rows.Scan(&job.ID, &job.JobID, &job.TaskType, &payload, &job.Queue,
			&job.Status, &creatorID, &lastErr, &job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed scanning job row: %w", err)
		}
		job.Payload = payload
		if creatorID.Valid {
			id, err := uuid.Parse(creatorID.String)
			if err != nil {
				return nil, fmt.Errorf("job %s has invalid creator_id: %w", job.JobID, err)
			}
			job.CreatorID = &id
		}
		if lastErr.Valid {
			job.LastError = &lastErr.String
		}
		jobs = append(jobs, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}
