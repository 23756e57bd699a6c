package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"niche/internal/models"
	"niche/internal/store"
)

// JobService enqueues background categorization jobs and lists their records.
type JobService struct {
	client   store.JobClient
	jobStore store.JobStore
	creators store.CreatorStore
}

// NewJobService creates a JobService. client may be nil when Redis is not
// configured; enqueueing then fails with models.ErrFeatureDisabled.
func NewJobService(client store.JobClient, js store.JobStore, creators store.CreatorStore) *JobService {
	return &JobService{client: client, jobStore: js, creators: creators}
}

// EnqueueCategorization enqueues one categorize job per creator. With all
// set, ids is ignored and every stored creator is enqueued. It returns the
// number of jobs enqueued before any error.
func (s *JobService) EnqueueCategorization(ctx context.Context, ids []uuid.UUID, all bool) (int, error) {
	return s.enqueue(ctx, ids, all, store.JobClient.EnqueueCategorizeJob)
}

// EnqueueReview enqueues one review job per creator, like EnqueueCategorization.
func (s *JobService) EnqueueReview(ctx context.Context, ids []uuid.UUID, all bool) (int, error) {
	return s.enqueue(ctx, ids, all, store.JobClient.EnqueueReviewJob)
}

func (s *JobService) enqueue(ctx context.Context, ids []uuid.UUID, all bool, fn func(store.JobClient, context.Context, uuid.UUID) error) (int, error) {
	if s.client == nil {
		return 0, fmt.Errorf("%w: background jobs need redis.address", models.ErrFeatureDisabled)
	}
	if all {
		var err error
		ids, err = s.creators.ListCreatorIDs(ctx)
		if err != nil {
			return 0, fmt.Errorf("list creator ids: %w", err)
		}
	}
	for i, id := range ids {
		if err := fn(s.client, ctx, id); err != nil {
			return i, err
		}
	}
	return len(ids), nil
}

// ListJobs retrieves recorded background jobs, newest first.
func (s *JobService) ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	jobs, err := s.jobStore.ListJobs(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs from store: %w", err)
	}
	return jobs, nil
}
