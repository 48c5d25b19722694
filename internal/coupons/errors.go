package coupons

import (
	"errors"
	"fmt"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponInvalid  = errors.New("coupon cannot be applied")

	ErrCouponInactive   = fmt.Errorf("%w: inactive", ErrCouponInvalid)
	ErrCouponNotStarted = fmt.Errorf("%w: not valid yet", ErrCouponInvalid)
	ErrCouponExpired    = fmt.Errorf("%w: expired", ErrCouponInvalid)
	ErrBelowMinimum     = fmt.Errorf("%w: subtotal below minimum", ErrCouponInvalid)
)
