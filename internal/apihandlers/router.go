package apihandlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"niche/internal/app"
)

// NewRouter builds the gin engine with every API route. /metrics serves
// the app's Prometheus registry.
func NewRouter(a *app.App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	h := NewAPIHandler(a)

	router.GET("/health", h.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/categorize", h.CategorizeHandler)
		v1.POST("/match", h.MatchHandler)

		categoryGroup := v1.Group("/categories")
		{
			categoryGroup.GET("", h.ListCategoriesHandler)
			categoryGroup.GET("/:slug", h.GetCategoryHandler)
			categoryGroup.POST("/:slug/suggestions", h.SuggestKeywordsHandler)
		}

		creatorGroup := v1.Group("/creators")
		{
			creatorGroup.POST("", h.CreateCreatorHandler)
			creatorGroup.GET("", h.ListCreatorsHandler)
			creatorGroup.GET("/:id", h.GetCreatorHandler)
			creatorGroup.PUT("/:id", h.UpdateCreatorHandler)
			creatorGroup.POST("/:id/categorize", h.CategorizeCreatorHandler)
			creatorGroup.POST("/:id/review", h.ReviewCreatorHandler)
		}

		jobGroup := v1.Group("/jobs")
		{
			jobGroup.POST("", h.EnqueueJobsHandler)
			jobGroup.GET("", h.ListJobsHandler)
		}
	}
	return router
}
