package store

import (
	"context"
	"time"

	"niche/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// --- Job Client ---

type JobClient interface {
	// Enqueue records the creator the task belongs to, when there is one.
	Enqueue(ctx context.Context, task *asynq.Task, creatorID *uuid.UUID, opts ...asynq.Option) (*asynq.TaskInfo, error)
	EnqueueCategorizeJob(ctx context.Context, creatorID uuid.UUID) error
	EnqueueReviewJob(ctx context.Context, creatorID uuid.UUID) error
	Close() error
}

// --- Creator Store ---

type CreatorStore interface {
	CreateCreator(ctx context.Context, creator *models.Creator) error
	GetCreator(ctx context.Context, id uuid.UUID) (*models.Creator, error)
	GetCreatorByHandle(ctx context.Context, handle string) (*models.Creator, error)
	ListCreators(ctx context.Context, limit, offset int) ([]*models.Creator, error)
	ListCreatorIDs(ctx context.Context) ([]uuid.UUID, error)
	// UpdateCreatorProfile writes bio and hashtag counts. Categories are left untouched.
	UpdateCreatorProfile(ctx context.Context, creator *models.Creator) error
	UpdateCreatorCategories(ctx context.Context, id uuid.UUID, categories []string, categorizedAt time.Time) error

	Ping(ctx context.Context) error
}

// --- Job Store ---

// JobRecordParams holds parameters for recording a job event.
type JobRecordParams struct {
	JobID     uuid.UUID
	TaskType  string
	Payload   []byte
	Queue     string
	Status    string
	CreatorID *uuid.UUID // Optional
}

type JobStore interface {
	RecordJobEnqueue(ctx context.Context, params JobRecordParams) error
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastErr *string) error
	ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error)
}

// Store is implemented by each database backend.
type Store interface {
	CreatorStore
	JobStore
	Close() error
}
