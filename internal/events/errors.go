package events

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidStatus = errors.New("invalid event status")
	ErrNoSeats       = errors.New("event would have no seats")
)
