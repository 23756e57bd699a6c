package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Defines task types and payloads used in Asynq.

const (
	// TypeCategorizeCreator scores a stored creator and writes the result back.
	TypeCategorizeCreator = "creator:categorize"
	// TypeReviewCreator re-checks a creator's stored categories against the catalog.
	TypeReviewCreator = "creator:review"

	// QueueCategorization is the queue both creator tasks are sent to.
	QueueCategorization = "categorization"
)

// CreatorPayload is the JSON payload shared by the creator tasks.
type CreatorPayload struct {
	CreatorID uuid.UUID `json:"creator_id"`
}

// NewCreatorTask builds a task of the given type for one creator.
func NewCreatorTask(taskType string, creatorID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(CreatorPayload{CreatorID: creatorID})
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, payload), nil
}

// DecodeCreatorPayload parses a creator task payload. A missing creator ID
// is an error.
func DecodeCreatorPayload(data []byte) (CreatorPayload, error) {
	var p CreatorPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("decode creator payload: %w", err)
	}
	if p.CreatorID == uuid.Nil {
		return p, fmt.Errorf("creator payload has no creator_id")
	}
	return p, nil
}
