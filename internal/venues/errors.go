package venues

import "errors"

var (
	ErrTheaterNotFound = errors.New("theater not found")
	ErrInvalidLayout   = errors.New("invalid theater layout")
)
