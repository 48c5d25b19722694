package seats

import (
	"context"
	"net/http"

	"boxoffice/internal/shared/utils/response"
	"boxoffice/internal/shared/utils/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Sweeper is the reaper as seen by the admin endpoints
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
	Stats() ReaperStats
}

type Controller struct {
	service Service
	reaper  Sweeper
}

func NewController(service Service, reaper Sweeper) *Controller {
	validation.RegisterCustomValidators()
	return &Controller{service: service, reaper: reaper}
}

//  SEAT HOLDING

// HoldSeats godoc
// @Summary Hold seats for a checkout session
// @Description Holds every requested seat or none. Repeating the call with the same holder token extends the hold.
// @Tags seats
// @Accept json
// @Produce json
// @Param request body HoldSeatsRequest true "Hold request"
// @Success 200 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /seats/hold [post]
func (c *Controller) HoldSeats(ctx *gin.Context) {
	var req HoldSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing or invalid event_id")
		return
	}

	c.hold(ctx, eventID, req)
}

// LockSeats godoc
// @Summary Hold seats of one event
// @Tags seats
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body HoldSeatsRequest true "Hold request"
// @Success 200 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /events/{id}/lock-seats [post]
func (c *Controller) LockSeats(ctx *gin.Context) {
	eventID, ok := eventIDParam(ctx)
	if !ok {
		return
	}

	var req HoldSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	c.hold(ctx, eventID, req)
}

func (c *Controller) hold(ctx *gin.Context, eventID uuid.UUID, req HoldSeatsRequest) {
	hold, err := c.service.HoldSeats(ctx.Request.Context(), eventID, req)
	if err != nil {
		RespondError(ctx, "Failed to hold seats", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats held successfully", hold, nil)
}

// ReleaseSeats godoc
// @Summary Release seats held by a checkout session
// @Description Seats not held by the given token are skipped.
// @Tags seats
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body ReleaseSeatsRequest true "Release request"
// @Success 200 {object} response.StandardApiResponse
// @Router /events/{id}/release-seats [post]
func (c *Controller) ReleaseSeats(ctx *gin.Context) {
	eventID, ok := eventIDParam(ctx)
	if !ok {
		return
	}

	var req ReleaseSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.ReleaseSeats(ctx.Request.Context(), eventID, req)
	if err != nil {
		RespondError(ctx, "Failed to release seats", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats released successfully", result, nil)
}

//  SEAT MAP

// GetSeatMap godoc
// @Summary Seat map of an event
// @Tags seats
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /events/{id}/seats [get]
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	eventID, ok := eventIDParam(ctx)
	if !ok {
		return
	}

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), eventID)
	if err != nil {
		RespondError(ctx, "Failed to get seat map", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

// OverwriteSeats godoc
// @Summary Manually correct seat states
// @Description Refuses seats under a live hold or booked by an order unless force is set. Never creates holds.
// @Tags seats
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body OverwriteSeatsRequest true "Overwrite request"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /events/{id}/seats [put]
func (c *Controller) OverwriteSeats(ctx *gin.Context) {
	eventID, ok := eventIDParam(ctx)
	if !ok {
		return
	}

	var req OverwriteSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.OverwriteSeats(ctx.Request.Context(), eventID, req)
	if err != nil {
		RespondError(ctx, "Failed to update seats", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats updated successfully", result, nil)
}

//  REAPER

func (c *Controller) ReaperStats(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Reaper stats retrieved successfully", c.reaper.Stats(), nil)
}

func (c *Controller) RunReaper(ctx *gin.Context) {
	released, err := c.reaper.Sweep(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Hold sweep failed", gin.H{"released": released}, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold sweep completed", gin.H{"released": released}, nil)
}

// RespondError writes a seat inventory error with its status code and offending seats
func RespondError(ctx *gin.Context, message string, err error) {
	statusCode, code, _ := ErrorStatus(err)
	detail := response.ErrorDetail{
		Code:    code,
		Detail:  err.Error(),
		SeatIDs: ConflictingSeats(err),
	}
	if statusCode == http.StatusInternalServerError {
		detail.Detail = "internal error"
	}
	response.RespondJSON(ctx, "error", statusCode, message, nil, detail)
}

func eventIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return uuid.Nil, false
	}
	return eventID, true
}
