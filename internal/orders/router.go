package orders

import (
	"boxoffice/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes configures checkout, order and ticket routes
func SetupOrderRoutes(rg *gin.RouterGroup, controller *Controller, jwtSecret string) {
	orders := rg.Group("/orders")
	orders.Use(middleware.JWTAuth(jwtSecret), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		orders.POST("", controller.CreateOrder)                          // POST /api/orders
		orders.GET("/:id", controller.GetOrder)                          // GET /api/orders/:id
		orders.POST("/:id/cancel", controller.CancelOrder)               // POST /api/orders/:id/cancel
		orders.POST("/:id/refund-status", controller.UpdateRefundStatus) // POST /api/orders/:id/refund-status
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth(jwtSecret), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		users.GET("/orders", controller.GetUserOrders) // GET /api/users/orders
	}

	// Door staff scan tickets
	door := rg.Group("/orders")
	door.Use(middleware.JWTAuth(jwtSecret), middleware.RequireRoles(middleware.RoleStaff, middleware.RoleAdmin))
	{
		door.POST("/verify", controller.VerifyTicket)    // POST /api/orders/verify
		door.POST("/check-in", controller.CheckInTicket) // POST /api/orders/check-in
	}

	// Ticket images are addressed by two random ids and embedded in emails
	rg.GET("/orders/:id/tickets/:ticketId/qr", controller.GetTicketQR) // GET /api/orders/:id/tickets/:ticketId/qr
}
