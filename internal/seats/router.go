package seats

import (
	"boxoffice/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller, jwtSecret string) {
	// Checkout sessions are identified by holder token, not by login
	rg.POST("/seats/hold", controller.HoldSeats) // POST /api/seats/hold

	events := rg.Group("/events")
	{
		events.GET("/:id/seats", controller.GetSeatMap)            // GET /api/events/:id/seats
		events.POST("/:id/lock-seats", controller.LockSeats)       // POST /api/events/:id/lock-seats
		events.POST("/:id/release-seats", controller.ReleaseSeats) // POST /api/events/:id/release-seats
	}

	adminEvents := rg.Group("/events")
	adminEvents.Use(middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	{
		adminEvents.PUT("/:id/seats", controller.OverwriteSeats) // PUT /api/events/:id/seats
	}

	reaper := rg.Group("/admin/reaper")
	reaper.Use(middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	{
		reaper.GET("/stats", controller.ReaperStats) // GET /api/admin/reaper/stats
		reaper.POST("/run", controller.RunReaper)    // POST /api/admin/reaper/run
	}
}
