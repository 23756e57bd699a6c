package local

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niche/internal/models"
	"niche/internal/store"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewLocalStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestStore_CreateAndGetCreator(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	creator := &models.Creator{
		Handle:        "dragonqueen",
		Bio:           strPtr("I love dragon quests 🐉"),
		HashtagCounts: map[string]int{"rpg": 4, "dnd": 1},
	}
	require.NoError(t, s.CreateCreator(ctx, creator))
	assert.NotEqual(t, uuid.Nil, creator.ID)
	assert.False(t, creator.CreatedAt.IsZero())

	got, err := s.GetCreator(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, creator.ID, got.ID)
	assert.Equal(t, "dragonqueen", got.Handle)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "I love dragon quests 🐉", *got.Bio)
	assert.Equal(t, map[string]int{"rpg": 4, "dnd": 1}, got.HashtagCounts)
	assert.Equal(t, []string{}, got.Categories)
	assert.Nil(t, got.CategorizedAt)

	byHandle, err := s.GetCreatorByHandle(ctx, "DragonQueen")
	require.NoError(t, err)
	assert.Equal(t, creator.ID, byHandle.ID)
}

func TestStore_CreateCreator_DuplicateHandle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateCreator(ctx, &models.Creator{Handle: "chef"}))
	err := s.CreateCreator(ctx, &models.Creator{Handle: "CHEF"})

	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestStore_NotFound(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	missing := uuid.New()

	_, err := s.GetCreator(ctx, missing)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetCreatorByHandle(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateCreatorProfile(ctx, &models.Creator{ID: missing})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateCreatorCategories(ctx, missing, []string{"RPG"}, time.Now())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_UpdateCreator(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	creator := &models.Creator{Handle: "fragger", HashtagCounts: map[string]int{"fps": 2}}
	require.NoError(t, s.CreateCreator(ctx, creator))

	creator.Bio = strPtr("Pro shooter")
	creator.HashtagCounts = map[string]int{"fps": 9}
	require.NoError(t, s.UpdateCreatorProfile(ctx, creator))

	categorizedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpdateCreatorCategories(ctx, creator.ID, []string{"Shooter"}, categorizedAt))

	got, err := s.GetCreator(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pro shooter", *got.Bio)
	assert.Equal(t, map[string]int{"fps": 9}, got.HashtagCounts)
	assert.Equal(t, []string{"Shooter"}, got.Categories)
	require.NotNil(t, got.CategorizedAt)
	assert.True(t, categorizedAt.Equal(*got.CategorizedAt))

	require.NoError(t, s.UpdateCreatorCategories(ctx, creator.ID, nil, categorizedAt))
	got, err = s.GetCreator(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Categories)
}

func TestStore_ListCreators(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	var created []uuid.UUID
	for _, handle := range []string{"a", "b", "c"} {
		c := &models.Creator{Handle: handle}
		require.NoError(t, s.CreateCreator(ctx, c))
		created = append(created, c.ID)
	}

	all, err := s.ListCreators(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := s.ListCreators(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	ids, err := s.ListCreatorIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, created, ids)
}

func TestStore_Jobs(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	creator := &models.Creator{Handle: "queued"}
	require.NoError(t, s.CreateCreator(ctx, creator))

	jobID := uuid.New()
	params := store.JobRecordParams{
		JobID:     jobID,
		TaskType:  "creator:categorize",
		Payload:   []byte(`{"creator_id":"` + creator.ID.String() + `"}`),
		Queue:     "categorization",
		Status:    models.JobStatusEnqueued,
		CreatorID: &creator.ID,
	}
	require.NoError(t, s.RecordJobEnqueue(ctx, params))
	require.NoError(t, s.RecordJobEnqueue(ctx, params), "recording twice should be a no-op")

	failure := "boom"
	require.NoError(t, s.UpdateJobStatus(ctx, jobID, models.JobStatusFailed, &failure))

	jobs, err := s.ListJobs(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	job := jobs[0]
	assert.Equal(t, jobID, job.JobID)
	assert.Equal(t, models.JobStatusFailed, job.Status)
	assert.Equal(t, "categorization", job.Queue)
	require.NotNil(t, job.CreatorID)
	assert.Equal(t, creator.ID, *job.CreatorID)
	require.NotNil(t, job.LastError)
	assert.Equal(t, "boom", *job.LastError)
	assert.JSONEq(t, string(params.Payload), string(job.Payload))

	err = s.UpdateJobStatus(ctx, uuid.New(), models.JobStatusCompleted, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
