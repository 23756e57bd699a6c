package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niche/internal/models"
	"niche/internal/tasks"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	info := &asynq.TaskInfo{ID: uuid.NewString(), Queue: "default", Type: task.Type(), Payload: task.Payload()}
	for _, opt := range opts {
		switch opt.Type() {
		case asynq.QueueOpt:
			info.Queue = opt.Value().(string)
		case asynq.TaskIDOpt:
			info.ID = opt.Value().(string)
		}
	}
	return info, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type fakeJobStore struct {
	records []JobRecordParams
	err     error
}

func (f *fakeJobStore) RecordJobEnqueue(ctx context.Context, params JobRecordParams) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, params)
	return nil
}

func (f *fakeJobStore) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastErr *string) error {
	return nil
}

func (f *fakeJobStore) ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error) {
	return nil, nil
}

func TestAsynqJobClient_EnqueueCreatorJobs(t *testing.T) {
	testCases := []struct {
		name     string
		enqueue  func(jc *AsynqJobClient, id uuid.UUID) error
		taskType string
	}{
		{
			name:     "categorize",
			enqueue:  func(jc *AsynqJobClient, id uuid.UUID) error { return jc.EnqueueCategorizeJob(context.Background(), id) },
			taskType: tasks.TypeCategorizeCreator,
		},
		{
			name:     "review",
			enqueue:  func(jc *AsynqJobClient, id uuid.UUID) error { return jc.EnqueueReviewJob(context.Background(), id) },
			taskType: tasks.TypeReviewCreator,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			enq := &fakeEnqueuer{}
			js := &fakeJobStore{}
			jc := &AsynqJobClient{client: enq, jobStore: js}
			creatorID := uuid.New()

			require.NoError(t, tc.enqueue(jc, creatorID))

			require.Len(t, enq.tasks, 1)
			assert.Equal(t, tc.taskType, enq.tasks[0].Type())
			payload, err := tasks.DecodeCreatorPayload(enq.tasks[0].Payload())
			require.NoError(t, err)
			assert.Equal(t, creatorID, payload.CreatorID)

			require.Len(t, js.records, 1)
			rec := js.records[0]
			assert.Equal(t, tc.taskType, rec.TaskType)
			assert.Equal(t, tasks.QueueCategorization, rec.Queue)
			assert.Equal(t, models.JobStatusEnqueued, rec.Status)
			require.NotNil(t, rec.CreatorID)
			assert.Equal(t, creatorID, *rec.CreatorID)
			assert.NotEqual(t, uuid.Nil, rec.JobID)
		})
	}
}

func TestAsynqJobClient_EnqueueError(t *testing.T) {
	redisErr := errors.New("redis down")
	js := &fakeJobStore{}
	jc := &AsynqJobClient{client: &fakeEnqueuer{err: redisErr}, jobStore: js}

	err := jc.EnqueueCategorizeJob(context.Background(), uuid.New())

	assert.ErrorIs(t, err, redisErr)
	assert.Empty(t, js.records, "nothing should be recorded when enqueue fails")
}

func TestAsynqJobClient_RecordFailureIsNotFatal(t *testing.T) {
	enq := &fakeEnqueuer{}
	jc := &AsynqJobClient{client: enq, jobStore: &fakeJobStore{err: errors.New("db down")}}

	err := jc.EnqueueReviewJob(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Len(t, enq.tasks, 1)
}

func TestNewAsynqJobClient_Validation(t *testing.T) {
	_, err := NewAsynqJobClient(asynq.RedisClientOpt{Addr: "localhost:6379"}, nil)
	assert.Error(t, err)

	_, err = NewAsynqJobClient(asynq.RedisClientOpt{}, &fakeJobStore{})
	assert.Error(t, err)
}
