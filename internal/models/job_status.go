package models

/*
Job status constants for background categorization jobs.
*/

const (
	JobStatusEnqueued  = "enqueued"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)
