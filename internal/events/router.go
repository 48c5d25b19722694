package events

import (
	"boxoffice/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller *Controller, jwtSecret string) {
	// Public browsing
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.ListEvents)   // GET /api/events
		publicEvents.GET("/:id", controller.GetEvent) // GET /api/events/:id
	}

	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)              // POST /api/admin/events
		adminEvents.PATCH("/:id/status", controller.UpdateStatus) // PATCH /api/admin/events/:id/status
	}
}
