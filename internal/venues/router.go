package venues

import (
	"boxoffice/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTheaterRoutes(rg *gin.RouterGroup, controller *Controller, jwtSecret string) {
	theaters := rg.Group("/admin/theaters")
	theaters.Use(middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	{
		theaters.POST("", controller.CreateTheater)       // POST /api/admin/theaters
		theaters.GET("", controller.ListTheaters)         // GET /api/admin/theaters
		theaters.GET("/:id", controller.GetTheater)       // GET /api/admin/theaters/:id
		theaters.GET("/:id/layout", controller.GetLayout) // GET /api/admin/theaters/:id/layout
	}
}
