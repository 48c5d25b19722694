package orders

import (
	"errors"
	"fmt"
	"net/http"

	"boxoffice/internal/coupons"
	"boxoffice/internal/seats"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrAlreadyCheckedIn  = errors.New("ticket already used")
	ErrTicketNotValid    = errors.New("ticket belongs to a cancelled or refunded order")
	ErrForbidden         = errors.New("order belongs to another user")

	// ErrTokenAlreadyCommitted is a hold whose token already placed an order.
	// A holder token backs one checkout; a new checkout needs a new token.
	ErrTokenAlreadyCommitted = fmt.Errorf("%w: holder token already placed an order", seats.ErrHoldInvalid)
)

// ErrorStatus maps order errors to an HTTP status and an error code.
// ok is false for errors this package does not own.
func ErrorStatus(err error) (status int, code string, ok bool) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return http.StatusNotFound, "ORDER_NOT_FOUND", true
	case errors.Is(err, ErrTicketNotFound):
		return http.StatusNotFound, "TICKET_NOT_FOUND", true
	case errors.Is(err, ErrAlreadyCheckedIn):
		return http.StatusConflict, "ALREADY_USED", true
	case errors.Is(err, ErrTicketNotValid):
		return http.StatusConflict, "TICKET_NOT_VALID", true
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", true
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", true
	case errors.Is(err, ErrTokenAlreadyCommitted):
		return http.StatusConflict, "HOLD_ALREADY_COMMITTED", true
	case errors.Is(err, coupons.ErrCouponNotFound):
		return http.StatusUnprocessableEntity, "COUPON_NOT_FOUND", true
	case errors.Is(err, coupons.ErrCouponInvalid):
		return http.StatusUnprocessableEntity, "COUPON_INVALID", true
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", false
}
