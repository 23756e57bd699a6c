package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"

	"niche/internal/models"
	"niche/internal/store"
	"niche/pkg/categorizer"
)

// --- Mock CreatorStore ---
type mockCreatorStore struct {
	mock.Mock
}

func (m *mockCreatorStore) CreateCreator(ctx context.Context, creator *models.Creator) error {
	args := m.Called(ctx, creator)
	return args.Error(0)
}

func (m *mockCreatorStore) GetCreator(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Creator)
	return c, args.Error(1)
}

func (m *mockCreatorStore) GetCreatorByHandle(ctx context.Context, handle string) (*models.Creator, error) {
	args := m.Called(ctx, handle)
	c, _ := args.Get(0).(*models.Creator)
	return c, args.Error(1)
}

func (m *mockCreatorStore) ListCreators(ctx context.Context, limit, offset int) ([]*models.Creator, error) {
	args := m.Called(ctx, limit, offset)
	c, _ := args.Get(0).([]*models.Creator)
	return c, args.Error(1)
}

func (m *mockCreatorStore) ListCreatorIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockCreatorStore) UpdateCreatorProfile(ctx context.Context, creator *models.Creator) error {
	args := m.Called(ctx, creator)
	return args.Error(0)
}

func (m *mockCreatorStore) UpdateCreatorCategories(ctx context.Context, id uuid.UUID, categories []string, categorizedAt time.Time) error {
	args := m.Called(ctx, id, categories, categorizedAt)
	return args.Error(0)
}

func (m *mockCreatorStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// --- Mock JobClient ---
type mockJobClient struct {
	mock.Mock
}

func (m *mockJobClient) Enqueue(ctx context.Context, task *asynq.Task, creatorID *uuid.UUID, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, creatorID)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func (m *mockJobClient) EnqueueCategorizeJob(ctx context.Context, creatorID uuid.UUID) error {
	return m.Called(ctx, creatorID).Error(0)
}

func (m *mockJobClient) EnqueueReviewJob(ctx context.Context, creatorID uuid.UUID) error {
	return m.Called(ctx, creatorID).Error(0)
}

func (m *mockJobClient) Close() error { return nil }

// --- Mock JobStore ---
type mockJobStore struct {
	mock.Mock
}

func (m *mockJobStore) RecordJobEnqueue(ctx context.Context, params store.JobRecordParams) error {
	return m.Called(ctx, params).Error(0)
}

func (m *mockJobStore) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastErr *string) error {
	return m.Called(ctx, jobID, status, lastErr).Error(0)
}

func (m *mockJobStore) ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error) {
	args := m.Called(ctx, limit, offset)
	jobs, _ := args.Get(0).([]*models.BackgroundJob)
	return jobs, args.Error(1)
}

// --- Mock KeywordSuggester ---
type mockSuggester struct {
	mock.Mock
}

func (m *mockSuggester) SuggestKeywords(ctx context.Context, req categorizer.KeywordSuggestionRequest) (categorizer.KeywordSuggestion, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(categorizer.KeywordSuggestion), args.Error(1)
}
