package venues

import (
	"errors"
	"net/http"

	"boxoffice/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateTheater godoc
// @Summary Create a theater seat layout
// @Tags theaters
// @Accept json
// @Produce json
// @Param request body CreateTheaterRequest true "Theater layout"
// @Success 201 {object} response.StandardApiResponse
// @Router /admin/theaters [post]
func (c *Controller) CreateTheater(ctx *gin.Context) {
	var req CreateTheaterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	theater, err := c.service.CreateTheater(ctx.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidLayout) {
			statusCode = http.StatusBadRequest
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to create theater", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Theater created successfully", theater, nil)
}

func (c *Controller) ListTheaters(ctx *gin.Context) {
	theaters, err := c.service.ListTheaters(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list theaters", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Theaters retrieved successfully", theaters, nil)
}

func (c *Controller) GetTheater(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid theater ID", nil, err.Error())
		return
	}

	theater, err := c.service.GetTheater(ctx.Request.Context(), id)
	if err != nil {
		c.respondLookupError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Theater retrieved successfully", theater, nil)
}

func (c *Controller) GetLayout(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid theater ID", nil, err.Error())
		return
	}

	layout, err := c.service.GetLayout(ctx.Request.Context(), id)
	if err != nil {
		c.respondLookupError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Layout retrieved successfully", layout, nil)
}

func (c *Controller) respondLookupError(ctx *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	if errors.Is(err, ErrTheaterNotFound) {
		statusCode = http.StatusNotFound
	}
	response.RespondJSON(ctx, "error", statusCode, "Failed to get theater", nil, err.Error())
}
