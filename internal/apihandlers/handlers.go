package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"niche/internal/app"
	"niche/internal/services"
	"niche/pkg/categorizer"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// HealthHandler pings the store and reports the catalog size.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	if err := h.App.Store.Ping(c.Request.Context()); err != nil {
		Unavailable(c, "store unreachable: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"categories": h.App.Catalog.Len(),
		"jobs":       h.App.JobClient != nil,
	})
}

// CategoryResponse is one catalog entry as served by the API.
type CategoryResponse struct {
	Category string   `json:"category"`
	Slug     string   `json:"slug"`
	Keywords []string `json:"keywords"`
}

func toCategoryResponse(d categorizer.CategoryDefinition) CategoryResponse {
	return CategoryResponse{Category: d.Category, Slug: d.Slug(), Keywords: d.Keywords}
}

func (h *APIHandler) ListCategoriesHandler(c *gin.Context) {
	defs := h.App.Catalog.Definitions()
	out := make([]CategoryResponse, len(defs))
	for i, d := range defs {
		out[i] = toCategoryResponse(d)
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *APIHandler) GetCategoryHandler(c *gin.Context) {
	def, ok := h.App.Catalog.LookupSlug(c.Param("slug"))
	if !ok {
		NotFound(c, "category not found: "+c.Param("slug"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toCategoryResponse(def)})
}

// CategorizeRequest is an ad hoc profile to score.
type CategorizeRequest struct {
	Bio      *string        `json:"bio"`
	Hashtags map[string]int `json:"hashtags"`
}

// CategorizeHandler scores a profile that is not stored.
func (h *APIHandler) CategorizeHandler(c *gin.Context) {
	var req CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	hashtags, err := services.NormalizeHashtagCounts(req.Hashtags)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	res, err := h.App.CategorizationService.CategorizeProfile(c.Request.Context(), categorizer.Profile{
		Bio:           req.Bio,
		HashtagCounts: hashtags,
	})
	if err != nil {
		ServiceError(c, "CategorizeHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res})
}

// MatchRequest asks whether word occurs in text as a whole word.
type MatchRequest struct {
	Text string `json:"text"`
	Word string `json:"word" binding:"required"`
}

func (h *APIHandler) MatchHandler(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"match":  categorizer.ContainsWord(req.Text, req.Word),
		"tokens": categorizer.Tokenize(req.Text),
	}})
}

// SuggestKeywordsRequest carries optional sample bios.
type SuggestKeywordsRequest struct {
	Bios []string `json:"bios"`
}

func (h *APIHandler) SuggestKeywordsHandler(c *gin.Context) {
	def, ok := h.App.Catalog.LookupSlug(c.Param("slug"))
	if !ok {
		NotFound(c, "category not found: "+c.Param("slug"))
		return
	}
	var req SuggestKeywordsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}
	suggestion, err := h.App.SuggestionService.SuggestKeywords(c.Request.Context(), def.Category, req.Bios)
	if err != nil {
		ServiceError(c, "SuggestKeywordsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"category": def.Category,
		"keywords": suggestion.Keywords,
		"rejected": suggestion.Rejected,
	}})
}
