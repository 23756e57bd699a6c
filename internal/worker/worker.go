// Package worker holds the Asynq handlers for background creator tasks.
package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"niche/internal/models"
	"niche/internal/services"
	"niche/internal/store"
	"niche/internal/tasks"
)

// CreatorCategorizer is the part of services.CategorizationService the
// handlers need.
type CreatorCategorizer interface {
	CategorizeCreator(ctx context.Context, id uuid.UUID, apply bool) (*services.CreatorCategorization, error)
	ReviewCreator(ctx context.Context, id uuid.UUID) (*services.CreatorReview, error)
}

// Deps holds the handler dependencies. JobStore may be nil, in which case
// job status is not tracked.
type Deps struct {
	Categorizer CreatorCategorizer
	JobStore    store.JobStore
}

// RegisterHandlers registers every creator task handler on mux.
func RegisterHandlers(mux *asynq.ServeMux, deps Deps) {
	log.Infof("Registering handler for %s", tasks.TypeCategorizeCreator)
	mux.HandleFunc(tasks.TypeCategorizeCreator, HandleCategorizeCreator(deps))
	log.Infof("Registering handler for %s", tasks.TypeReviewCreator)
	mux.HandleFunc(tasks.TypeReviewCreator, HandleReviewCreator(deps))
}

// HandleCategorizeCreator scores the creator named in the payload and saves
// the result.
func HandleCategorizeCreator(deps Deps) asynq.HandlerFunc {
	return trackJob(deps.JobStore, func(ctx context.Context, id uuid.UUID) error {
		res, err := deps.Categorizer.CategorizeCreator(ctx, id, true)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"creator_id": id,
			"categories": res.Categories,
			"changed":    res.Changed,
		}).Info("Categorize task finished")
		return nil
	})
}

// HandleReviewCreator re-checks the stored categories of the creator named
// in the payload.
func HandleReviewCreator(deps Deps) asynq.HandlerFunc {
	return trackJob(deps.JobStore, func(ctx context.Context, id uuid.UUID) error {
		res, err := deps.Categorizer.ReviewCreator(ctx, id)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"creator_id": id,
			"categories": res.Categories,
			"changed":    res.Changed,
		}).Info("Review task finished")
		return nil
	})
}

// trackJob decodes the creator payload, runs fn and mirrors the outcome into
// the job store. Bad payloads and missing creators are not retried.
func trackJob(js store.JobStore, fn func(ctx context.Context, id uuid.UUID) error) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		jobID, tracked := jobIDFromContext(ctx)
		tracked = tracked && js != nil

		setStatus := func(status string, lastErr *string) {
			if !tracked {
				return
			}
			if err := js.UpdateJobStatus(ctx, jobID, status, lastErr); err != nil {
				log.Warnf("Failed to update job %s to %s: %v", jobID, status, err)
			}
		}

		payload, err := tasks.DecodeCreatorPayload(t.Payload())
		if err != nil {
			msg := err.Error()
			setStatus(models.JobStatusFailed, &msg)
			return fmt.Errorf("%s: %w: %w", t.Type(), err, asynq.SkipRetry)
		}

		setStatus(models.JobStatusRunning, nil)
		if err := fn(ctx, payload.CreatorID); err != nil {
			msg := err.Error()
			setStatus(models.JobStatusFailed, &msg)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%s for creator %s: %w: %w", t.Type(), payload.CreatorID, err, asynq.SkipRetry)
			}
			return fmt.Errorf("%s for creator %s: %w", t.Type(), payload.CreatorID, err)
		}
		setStatus(models.JobStatusCompleted, nil)
		return nil
	}
}

func jobIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	taskID, ok := asynq.GetTaskID(ctx)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(taskID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
