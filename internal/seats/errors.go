package seats

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"boxoffice/internal/events"
)

var (
	ErrSeatUnavailable  = errors.New("seat unavailable")
	ErrHoldInvalid      = errors.New("hold is no longer valid")
	ErrHoldExpired      = fmt.Errorf("%w: expired", ErrHoldInvalid)
	ErrSeatNotFound     = errors.New("seat not found")
	ErrEventNotFound    = events.ErrEventNotFound
	ErrEventNotOnSale   = errors.New("event is not on sale")
	ErrTooManySeats     = errors.New("too many seats requested")
	ErrNoSeatsRequested = errors.New("no seats requested")
	ErrInvalidOverwrite = errors.New("invalid seat overwrite")
)

// SeatConflictError names the seats of a batch that made it fail
type SeatConflictError struct {
	Err     error
	SeatIDs []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, strings.Join(e.SeatIDs, ", "))
}

func (e *SeatConflictError) Unwrap() error {
	return e.Err
}

// ConflictingSeats returns the seat ids carried by err, if any
func ConflictingSeats(err error) []string {
	var conflict *SeatConflictError
	if errors.As(err, &conflict) {
		return conflict.SeatIDs
	}
	return nil
}

// ErrorStatus maps seat inventory errors to an HTTP status and an error code.
// ok is false for errors this package does not own.
func ErrorStatus(err error) (status int, code string, ok bool) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return http.StatusNotFound, "EVENT_NOT_FOUND", true
	case errors.Is(err, ErrSeatNotFound):
		return http.StatusNotFound, "SEAT_NOT_FOUND", true
	case errors.Is(err, ErrHoldExpired):
		return http.StatusGone, "HOLD_EXPIRED", true
	case errors.Is(err, ErrHoldInvalid):
		return http.StatusConflict, "HOLD_INVALID", true
	case errors.Is(err, ErrSeatUnavailable):
		return http.StatusConflict, "SEAT_UNAVAILABLE", true
	case errors.Is(err, ErrEventNotOnSale):
		return http.StatusConflict, "EVENT_NOT_ON_SALE", true
	case errors.Is(err, ErrTooManySeats), errors.Is(err, ErrNoSeatsRequested), errors.Is(err, ErrInvalidOverwrite):
		return http.StatusBadRequest, "INVALID_REQUEST", true
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", false
}
