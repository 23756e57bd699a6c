package apihandlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"niche/internal/models"
	"niche/internal/services"
)

// CreatorRequest is the body of creator create and update calls.
type CreatorRequest struct {
	Handle   string         `json:"handle"`
	Bio      *string        `json:"bio"`
	Hashtags map[string]int `json:"hashtags"`
}

func (h *APIHandler) CreateCreatorHandler(c *gin.Context) {
	var req CreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	creator, err := h.App.CreatorService.AddCreator(c.Request.Context(), services.AddCreatorParams{
		Handle:        req.Handle,
		Bio:           req.Bio,
		HashtagCounts: req.Hashtags,
	})
	if err != nil {
		ServiceError(c, "CreateCreatorHandler", err)
		return
	}
	log.WithFields(log.Fields{"creator_id": creator.ID, "handle": creator.Handle}).Info("API: creator created")
	c.JSON(http.StatusCreated, gin.H{"data": creator})
}

func (h *APIHandler) ListCreatorsHandler(c *gin.Context) {
	limit, offset, err := parsePagination(c)
	if err != nil {
		BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	creators, err := h.App.CreatorService.ListCreators(c.Request.Context(), limit, offset)
	if err != nil {
		ServiceError(c, "ListCreatorsHandler", err)
		return
	}
	if creators == nil {
		creators = []*models.Creator{}
	}
	c.JSON(http.StatusOK, gin.H{"data": creators})
}

// GetCreatorHandler accepts a creator ID or handle in :id.
func (h *APIHandler) GetCreatorHandler(c *gin.Context) {
	creator, ok := h.resolveCreator(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": creator})
}

// UpdateCreatorHandler replaces the creator's bio and hashtag counts.
func (h *APIHandler) UpdateCreatorHandler(c *gin.Context) {
	var req CreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	creator, ok := h.resolveCreator(c)
	if !ok {
		return
	}
	updated, err := h.App.CreatorService.UpdateProfile(c.Request.Context(), creator.ID, req.Bio, req.Hashtags)
	if err != nil {
		ServiceError(c, "UpdateCreatorHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// CategorizeCreatorHandler scores a stored creator. apply=false makes it a
// dry run.
func (h *APIHandler) CategorizeCreatorHandler(c *gin.Context) {
	apply := true
	if raw := c.Query("apply"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			BadRequest(c, "Invalid apply parameter: "+raw)
			return
		}
		apply = v
	}
	creator, ok := h.resolveCreator(c)
	if !ok {
		return
	}
	res, err := h.App.CategorizationService.CategorizeCreator(c.Request.Context(), creator.ID, apply)
	if err != nil {
		ServiceError(c, "CategorizeCreatorHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (h *APIHandler) ReviewCreatorHandler(c *gin.Context) {
	creator, ok := h.resolveCreator(c)
	if !ok {
		return
	}
	res, err := h.App.CategorizationService.ReviewCreator(c.Request.Context(), creator.ID)
	if err != nil {
		ServiceError(c, "ReviewCreatorHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (h *APIHandler) resolveCreator(c *gin.Context) (*models.Creator, bool) {
	creator, err := h.App.CreatorService.ResolveCreator(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, "resolve creator", err)
		return nil, false
	}
	return creator, true
}

func parsePagination(c *gin.Context) (limit, offset int, err error) {
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return 0, 0, err
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil {
			return 0, 0, err
		}
	}
	return limit, offset, nil
}
