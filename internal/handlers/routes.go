package handlers

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups the API handlers mounted by RegisterRoutes.
type Handlers struct {
	Health     *HealthHandler
	Directory  *DirectoryHandler
	Submission *SubmissionHandler
	Admin      *AdminHandler
}

// RegisterRoutes mounts the health endpoints and the /api/v1 routes.
func RegisterRoutes(router *gin.Engine, h Handlers) {
	useWireFieldNames()

	router.GET("/health", h.Health.Health)
	router.GET("/health/ready", h.Health.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", h.Health.Info)

		zones := v1.Group("/zones")
		{
			zones.GET("", h.Directory.ListZones)
			zones.GET("/:slug", h.Directory.ZoneDetail)
			zones.GET("/:slug/businesses", h.Directory.ZoneBusinesses)
		}

		buildings := v1.Group("/buildings")
		{
			buildings.GET("", h.Directory.ListBuildings)
			buildings.GET("/:slug", h.Directory.BuildingDetail)
			buildings.GET("/:slug/comments", h.Directory.BuildingComments)
			buildings.POST("/:slug/comments", h.Submission.AddComment)
		}

		businesses := v1.Group("/businesses")
		{
			businesses.POST("", h.Submission.CreateBusiness)
			businesses.GET("/trending", h.Directory.Trending)
			businesses.GET("/:id", h.Directory.Business)
			businesses.POST("/:id/claim", h.Submission.ClaimBusiness)
		}

		v1.GET("/search", h.Directory.Search)
		v1.GET("/search/buildings", h.Submission.BuildingMatches)
		v1.GET("/ads", h.Directory.Ads)

		admin := v1.Group("/admin")
		{
			admin.GET("/dashboard", h.Admin.Dashboard)
			admin.POST("/businesses/:id/approve", h.Admin.ApproveBusiness)
			admin.PATCH("/businesses/:id", h.Admin.UpdateBusiness)
			admin.DELETE("/businesses/:id", h.Admin.DeleteBusiness)
			admin.POST("/buildings", h.Admin.AddBuilding)
			admin.PATCH("/buildings/:id", h.Admin.UpdateBuilding)
			admin.DELETE("/buildings/:id", h.Admin.DeleteBuilding)
			admin.POST("/buildings/:id/merge", h.Admin.MergeBuildings)
			admin.POST("/zones", h.Admin.AddZone)
		}
	}
}
