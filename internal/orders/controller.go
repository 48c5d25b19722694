package orders

import (
	"net/http"
	"strconv"

	"boxoffice/internal/seats"
	"boxoffice/internal/shared/middleware"
	"boxoffice/internal/shared/utils/response"
	"boxoffice/internal/shared/utils/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	validation.RegisterCustomValidators()
	return &Controller{service: service}
}

func actorFrom(ctx *gin.Context) Actor {
	userID, role := middleware.CurrentUser(ctx)
	return Actor{UserID: userID, Role: role}
}

//  CHECKOUT

// CreateOrder godoc
// @Summary Commit held seats into a paid order
// @Description Books every seat held by holder_token or none of them. An expired hold answers 410.
// @Tags orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order request"
// @Success 201 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Failure 410 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders [post]
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	order, err := c.service.Commit(ctx.Request.Context(), actorFrom(ctx), req)
	if err != nil {
		respondError(ctx, "Failed to create order", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Order created successfully", order, nil)
}

//  ORDERS

// GetOrder godoc
// @Summary Get an order with its tickets
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	order, err := c.service.GetOrder(ctx.Request.Context(), orderID, actorFrom(ctx))
	if err != nil {
		respondError(ctx, "Failed to get order", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order retrieved successfully", order, nil)
}

// GetUserOrders godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /users/orders [get]
func (c *Controller) GetUserOrders(ctx *gin.Context) {
	var query OrderListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListUserOrders(ctx.Request.Context(), actorFrom(ctx), query)
	if err != nil {
		respondError(ctx, "Failed to get orders", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Orders retrieved successfully", result, nil)
}

// CancelOrder godoc
// @Summary Cancel an order and free its seats
// @Description Cancelling an already cancelled order succeeds without effect.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders/{id}/cancel [post]
func (c *Controller) CancelOrder(ctx *gin.Context) {
	orderID, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	order, err := c.service.CancelOrder(ctx.Request.Context(), orderID, actorFrom(ctx))
	if err != nil {
		respondError(ctx, "Failed to cancel order", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order cancelled successfully", order, nil)
}

// UpdateRefundStatus godoc
// @Summary Move an order through the refund workflow
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body RefundStatusRequest true "Target status"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders/{id}/refund-status [post]
func (c *Controller) UpdateRefundStatus(ctx *gin.Context) {
	orderID, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	var req RefundStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	order, err := c.service.UpdateRefundStatus(ctx.Request.Context(), orderID, Status(req.Status), actorFrom(ctx))
	if err != nil {
		respondError(ctx, "Failed to update refund status", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Refund status updated successfully", order, nil)
}

//  TICKETS

// VerifyTicket godoc
// @Summary Check whether a ticket admits entry
// @Description Read only. Always answers 200 with a reason.
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body TicketLookupRequest true "QR payload"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders/verify [post]
func (c *Controller) VerifyTicket(ctx *gin.Context) {
	var req TicketLookupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	verification, err := c.service.VerifyTicket(ctx.Request.Context(), req.QRPayload)
	if err != nil {
		respondError(ctx, "Failed to verify ticket", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket verified", verification, nil)
}

// CheckInTicket godoc
// @Summary Consume a ticket at the door
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body TicketLookupRequest true "QR payload"
// @Success 200 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders/check-in [post]
func (c *Controller) CheckInTicket(ctx *gin.Context) {
	var req TicketLookupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	ticket, err := c.service.CheckInTicket(ctx.Request.Context(), req.QRPayload)
	if err != nil {
		respondError(ctx, "Check-in refused", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket checked in", ticket, nil)
}

// GetTicketQR godoc
// @Summary Ticket QR code as PNG
// @Tags tickets
// @Produce png
// @Param id path string true "Order ID"
// @Param ticketId path string true "Ticket ID"
// @Param size query int false "Edge length in pixels"
// @Success 200 {file} binary
// @Router /orders/{id}/tickets/{ticketId}/qr [get]
func (c *Controller) GetTicketQR(ctx *gin.Context) {
	orderID, ok := orderIDParam(ctx)
	if !ok {
		return
	}
	ticketID, err := uuid.Parse(ctx.Param("ticketId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	size := DefaultQRSize
	if raw := ctx.Query("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid size", nil, err.Error())
			return
		}
	}

	png, err := c.service.TicketQR(ctx.Request.Context(), orderID, ticketID, size)
	if err != nil {
		respondError(ctx, "Failed to render ticket", err)
		return
	}

	ctx.Header("Cache-Control", "private, max-age=3600")
	ctx.Data(http.StatusOK, "image/png", png)
}

// respondError maps order errors first and falls back to the seat taxonomy
func respondError(ctx *gin.Context, message string, err error) {
	if statusCode, code, ok := ErrorStatus(err); ok {
		response.RespondJSON(ctx, "error", statusCode, message, nil, response.ErrorDetail{
			Code:   code,
			Detail: err.Error(),
		})
		return
	}
	seats.RespondError(ctx, message, err)
}

func orderIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order ID", nil, err.Error())
		return uuid.Nil, false
	}
	return orderID, true
}
