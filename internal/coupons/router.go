package coupons

import (
	"boxoffice/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCouponRoutes(rg *gin.RouterGroup, controller *Controller, jwtSecret string) {
	rg.GET("/coupons/:code/quote", controller.Quote) // GET /api/coupons/:code/quote?subtotal=

	admin := rg.Group("/admin/coupons")
	admin.Use(middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateCoupon) // POST /api/admin/coupons
	}
}
