package apihandlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"niche/internal/models"
)

const (
	jobTaskCategorize = "categorize"
	jobTaskReview     = "review"
)

// EnqueueJobsRequest selects creators for background categorization.
type EnqueueJobsRequest struct {
	Task       string      `json:"task"` // categorize (default) or review
	CreatorIDs []uuid.UUID `json:"creator_ids"`
	All        bool        `json:"all"`
}

func (h *APIHandler) EnqueueJobsHandler(c *gin.Context) {
	var req EnqueueJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if !req.All && len(req.CreatorIDs) == 0 {
		BadRequest(c, "creator_ids is required unless all is true")
		return
	}

	enqueue := h.App.JobService.EnqueueCategorization
	switch req.Task {
	case "", jobTaskCategorize:
	case jobTaskReview:
		enqueue = h.App.JobService.EnqueueReview
	default:
		BadRequest(c, "task must be categorize or review")
		return
	}

	n, err := enqueue(c.Request.Context(), req.CreatorIDs, req.All)
	if err != nil {
		if n > 0 {
			c.Header("X-Enqueued", strconv.Itoa(n))
		}
		ServiceError(c, "EnqueueJobsHandler", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"data": gin.H{"enqueued": n}})
}

func (h *APIHandler) ListJobsHandler(c *gin.Context) {
	limit, offset, err := parsePagination(c)
	if err != nil {
		BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	jobs, err := h.App.JobService.ListJobs(c.Request.Context(), limit, offset)
	if err != nil {
		ServiceError(c, "ListJobsHandler", err)
		return
	}
	if jobs == nil {
		jobs = []*models.BackgroundJob{}
	}
	c.JSON(http.StatusOK, gin.H{"data": jobs})
}
