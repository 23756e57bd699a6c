package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"niche/internal/models"
)

func TestJobService_NoClient(t *testing.T) {
	svc := NewJobService(nil, new(mockJobStore), new(mockCreatorStore))

	n, err := svc.EnqueueCategorization(context.Background(), []uuid.UUID{uuid.New()}, false)

	assert.ErrorIs(t, err, models.ErrFeatureDisabled)
	assert.Zero(t, n)
}

func TestJobService_EnqueueCategorization(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	testCases := []struct {
		name  string
		ids   []uuid.UUID
		all   bool
		setup func(cs *mockCreatorStore)
	}{
		{
			name:  "explicit ids",
			ids:   []uuid.UUID{a, b},
			setup: func(cs *mockCreatorStore) {},
		},
		{
			name: "all creators",
			ids:  []uuid.UUID{uuid.New()},
			all:  true,
			setup: func(cs *mockCreatorStore) {
				cs.On("ListCreatorIDs", mock.Anything).Return([]uuid.UUID{a, b}, nil).Once()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			jc := new(mockJobClient)
			cs := new(mockCreatorStore)
			tc.setup(cs)
			jc.On("EnqueueCategorizeJob", mock.Anything, a).Return(nil).Once()
			jc.On("EnqueueCategorizeJob", mock.Anything, b).Return(nil).Once()

			svc := NewJobService(jc, new(mockJobStore), cs)
			n, err := svc.EnqueueCategorization(context.Background(), tc.ids, tc.all)

			require.NoError(t, err)
			assert.Equal(t, 2, n)
			jc.AssertExpectations(t)
			cs.AssertExpectations(t)
		})
	}
}

func TestJobService_EnqueueReview_PartialFailure(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	redisErr := errors.New("redis unavailable")
	jc := new(mockJobClient)
	jc.On("EnqueueReviewJob", mock.Anything, a).Return(nil).Once()
	jc.On("EnqueueReviewJob", mock.Anything, b).Return(redisErr).Once()

	svc := NewJobService(jc, new(mockJobStore), new(mockCreatorStore))
	n, err := svc.EnqueueReview(context.Background(), []uuid.UUID{a, b, c}, false)

	assert.ErrorIs(t, err, redisErr)
	assert.Equal(t, 1, n)
	jc.AssertNotCalled(t, "EnqueueReviewJob", mock.Anything, c)
	jc.AssertExpectations(t)
}

func TestJobService_ListJobs(t *testing.T) {
	js := new(mockJobStore)
	jobs := []*models.BackgroundJob{{ID: 1, JobID: uuid.New(), Status: models.JobStatusCompleted}}
	js.On("ListJobs", mock.Anything, 20, 0).Return(jobs, nil).Once()

	svc := NewJobService(nil, js, new(mockCreatorStore))
	got, err := svc.ListJobs(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, jobs, got)
	js.AssertExpectations(t)
}
