package coupons

import (
	"context"
	"testing"
	"time"

	"boxoffice/internal/shared/testutil"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *clockwork.FakeClock) {
	t.Helper()
	db := testutil.NewTestDB(t, &Coupon{})
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	return NewService(NewRepository(db), clock), clock
}

func TestComputeDiscount(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	inactive := false
	until := clock.Now().Add(24 * time.Hour)

	for _, req := range []CreateCouponRequest{
		{Code: "flat10", DiscountType: DiscountFixed, Value: 10},
		{Code: "PCT20", DiscountType: DiscountPercentage, Value: 20, MaxDiscount: 15},
		{Code: "BIGSPEND", DiscountType: DiscountFixed, Value: 25, MinSubtotal: 100},
		{Code: "OFF", DiscountType: DiscountFixed, Value: 5, Active: &inactive},
		{Code: "TODAY", DiscountType: DiscountFixed, Value: 5, ValidUntil: &until},
	} {
		_, err := svc.CreateCoupon(ctx, req)
		require.NoError(t, err, req.Code)
	}

	tests := []struct {
		name     string
		code     string
		subtotal float64
		want     float64
		wantErr  error
	}{
		{"no code", "", 80, 0, nil},
		{"fixed", "FLAT10", 80, 10, nil},
		{"case insensitive", " flat10 ", 80, 10, nil},
		{"fixed clamps to subtotal", "FLAT10", 6, 6, nil},
		{"percentage", "PCT20", 50, 10, nil},
		{"percentage capped", "PCT20", 200, 15, nil},
		{"below minimum", "BIGSPEND", 99.99, 0, ErrBelowMinimum},
		{"inactive", "OFF", 80, 0, ErrCouponInactive},
		{"unknown", "NOPE", 80, 0, ErrCouponNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ComputeDiscount(ctx, tt.code, tt.subtotal)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}

	t.Run("expires", func(t *testing.T) {
		_, err := svc.ComputeDiscount(ctx, "TODAY", 50)
		require.NoError(t, err)

		clock.Advance(24 * time.Hour)
		_, err = svc.ComputeDiscount(ctx, "TODAY", 50)
		assert.ErrorIs(t, err, ErrCouponExpired)
		assert.ErrorIs(t, err, ErrCouponInvalid)
	})
}

func TestCreateCoupon_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCoupon(ctx, CreateCouponRequest{Code: "ZERO", DiscountType: DiscountFixed})
	assert.ErrorIs(t, err, ErrCouponInvalid)

	_, err = svc.CreateCoupon(ctx, CreateCouponRequest{Code: "HUGE", DiscountType: DiscountPercentage, Value: 120})
	assert.ErrorIs(t, err, ErrCouponInvalid)

	coupon, err := svc.CreateCoupon(ctx, CreateCouponRequest{Code: "spring", DiscountType: DiscountPercentage, Value: 10})
	require.NoError(t, err)
	assert.Equal(t, "SPRING", coupon.Code)
	assert.True(t, coupon.Active)
}

func TestQuote(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCoupon(ctx, CreateCouponRequest{Code: "HALF", DiscountType: DiscountPercentage, Value: 50})
	require.NoError(t, err)

	quote, err := svc.Quote(ctx, "half", 45.5)
	require.NoError(t, err)
	assert.Equal(t, "HALF", quote.Code)
	assert.InDelta(t, 22.75, quote.Discount, 0.001)
	assert.InDelta(t, 22.75, quote.Total, 0.001)
}
