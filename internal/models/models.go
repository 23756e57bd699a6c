package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"niche/pkg/categorizer"
)

// Creator is a marketplace creator profile together with the categories
// the matching core assigned to it.
type Creator struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Handle        string         `db:"handle" json:"handle"`
	Bio           *string        `db:"bio" json:"bio,omitempty"`
	HashtagCounts map[string]int `db:"hashtag_counts" json:"hashtag_counts,omitempty"`
	Categories    []string       `db:"categories" json:"categories"`
	CategorizedAt *time.Time     `db:"categorized_at" json:"categorized_at,omitempty"` // nil until first categorized
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// Profile returns the scoring input for the creator.
func (c *Creator) Profile() categorizer.Profile {
	return categorizer.Profile{Bio: c.Bio, HashtagCounts: c.HashtagCounts}
}

// BackgroundJob mirrors the background_jobs table schema.
type BackgroundJob struct {
	ID        int64           `db:"id" json:"id"`
	JobID     uuid.UUID       `db:"job_id" json:"job_id"` // Asynq Task ID
	TaskType  string          `db:"task_type" json:"task_type"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	Queue     string          `db:"queue" json:"queue"`
	Status    string          `db:"status" json:"status"`
	CreatorID *uuid.UUID      `db:"creator_id" json:"creator_id,omitempty"`
	LastError *string         `db:"last_error" json:"last_error,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
