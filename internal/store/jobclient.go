package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"niche/internal/models"
	"niche/internal/tasks"
)

const defaultMaxRetry = 5

// taskEnqueuer is the part of *asynq.Client the job client uses.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// AsynqJobClient enqueues creator tasks and records them to the JobStore.
type AsynqJobClient struct {
	client   taskEnqueuer
	jobStore JobStore
}

var _ JobClient = (*AsynqJobClient)(nil)

func NewAsynqJobClient(redisOpt asynq.RedisClientOpt, js JobStore) (*AsynqJobClient, error) {
	if js == nil {
		return nil, fmt.Errorf("JobStore cannot be nil for AsynqJobClient")
	}
	if redisOpt.Addr == "" {
		return nil, fmt.Errorf("redis address is required for AsynqJobClient")
	}
	return &AsynqJobClient{client: asynq.NewClient(redisOpt), jobStore: js}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// Enqueue enqueues a task and records the event to the JobStore. A failure to
// record is logged; the task is already queued at that point.
func (jc *AsynqJobClient) Enqueue(ctx context.Context, task *asynq.Task, creatorID *uuid.UUID, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if jc.client == nil {
		return nil, fmt.Errorf("AsynqJobClient internal client is not initialized")
	}
	info, err := jc.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"task_id": info.ID, "type": task.Type(), "queue": info.Queue}).Debug("task enqueued")

	jobUUID, err := uuid.Parse(info.ID)
	if err != nil {
		log.Warnf("Asynq task ID %q is not a UUID, job record skipped: %v", info.ID, err)
		return info, nil
	}

	params := JobRecordParams{
		JobID:     jobUUID,
		TaskType:  task.Type(),
		Payload:   task.Payload(),
		Queue:     info.Queue,
		Status:    models.JobStatusEnqueued,
		CreatorID: creatorID,
	}
	if err := jc.jobStore.RecordJobEnqueue(ctx, params); err != nil {
		log.Errorf("Failed to record job enqueue event for task %s: %v", info.ID, err)
	}
	return info, nil
}

func (jc *AsynqJobClient) EnqueueCategorizeJob(ctx context.Context, creatorID uuid.UUID) error {
	return jc.enqueueCreatorTask(ctx, tasks.TypeCategorizeCreator, creatorID)
}

func (jc *AsynqJobClient) EnqueueReviewJob(ctx context.Context, creatorID uuid.UUID) error {
	return jc.enqueueCreatorTask(ctx, tasks.TypeReviewCreator, creatorID)
}

func (jc *AsynqJobClient) enqueueCreatorTask(ctx context.Context, taskType string, creatorID uuid.UUID) error {
	task, err := tasks.NewCreatorTask(taskType, creatorID)
	if err != nil {
		return err
	}
	// Asynq task IDs default to UUIDs; set one explicitly so the job record can use it.
	_, err = jc.Enqueue(ctx, task, &creatorID,
		asynq.Queue(tasks.QueueCategorization),
		asynq.MaxRetry(defaultMaxRetry),
		asynq.TaskID(uuid.NewString()),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s job for creator %s: %w", taskType, creatorID, err)
	}
	return nil
}
