package coupons

import (
	"errors"
	"net/http"
	"strconv"

	"boxoffice/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for coupons
type Controller struct {
	service Service
}

// NewController creates a new coupon controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateCoupon handles POST /api/admin/coupons
func (c *Controller) CreateCoupon(ctx *gin.Context) {
	var req CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	coupon, err := c.service.CreateCoupon(ctx.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrCouponInvalid) {
			statusCode = http.StatusBadRequest
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to create coupon", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Coupon created successfully", coupon, nil)
}

// Quote handles GET /api/coupons/:code/quote?subtotal=
func (c *Controller) Quote(ctx *gin.Context) {
	subtotal, err := strconv.ParseFloat(ctx.Query("subtotal"), 64)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid subtotal", nil, "subtotal must be a number")
		return
	}

	quote, err := c.service.Quote(ctx.Request.Context(), ctx.Param("code"), subtotal)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrCouponNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrCouponInvalid):
			statusCode = http.StatusUnprocessableEntity
		}
		response.RespondJSON(ctx, "error", statusCode, "Coupon cannot be applied", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon quote calculated", quote, nil)
}
