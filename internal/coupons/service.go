package coupons

import (
	"context"
	"fmt"
	"math"

	"boxoffice/pkg/logger"

	"github.com/jonboulle/clockwork"
)

type Service interface {
	CreateCoupon(ctx context.Context, req CreateCouponRequest) (*Coupon, error)
	// ComputeDiscount returns 0 for an empty code
	ComputeDiscount(ctx context.Context, code string, subtotal float64) (float64, error)
	Quote(ctx context.Context, code string, subtotal float64) (*QuoteResponse, error)
}

type service struct {
	repo   Repository
	clock  clockwork.Clock
	logger *logger.Logger
}

func NewService(repo Repository, clock clockwork.Clock) Service {
	return &service{
		repo:   repo,
		clock:  clock,
		logger: logger.GetDefault().WithComponent("coupons"),
	}
}

func (s *service) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*Coupon, error) {
	if err := validateCouponRequest(req); err != nil {
		return nil, err
	}

	coupon := &Coupon{
		Code:         req.Code,
		DiscountType: req.DiscountType,
		Value:        req.Value,
		MaxDiscount:  req.MaxDiscount,
		MinSubtotal:  req.MinSubtotal,
		ValidFrom:    req.ValidFrom,
		ValidUntil:   req.ValidUntil,
		Active:       req.Active == nil || *req.Active,
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.Info("Coupon created", "code", coupon.Code, "type", coupon.DiscountType)
	return coupon, nil
}

func (s *service) ComputeDiscount(ctx context.Context, code string, subtotal float64) (float64, error) {
	if NormalizeCode(code) == "" {
		return 0, nil
	}

	coupon, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return 0, err
	}

	discount, err := coupon.DiscountFor(subtotal, s.clock.Now())
	if err != nil {
		return 0, err
	}
	return math.Round(discount*100) / 100, nil
}

func (s *service) Quote(ctx context.Context, code string, subtotal float64) (*QuoteResponse, error) {
	if subtotal < 0 {
		return nil, fmt.Errorf("%w: negative subtotal", ErrCouponInvalid)
	}

	discount, err := s.ComputeDiscount(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		Code:     NormalizeCode(code),
		Subtotal: subtotal,
		Discount: discount,
		Total:    math.Round((subtotal-discount)*100) / 100,
	}, nil
}

// validateCouponRequest validates a coupon request
func validateCouponRequest(req CreateCouponRequest) error {
	if req.DiscountType == DiscountFixed && req.Value <= 0 {
		return fmt.Errorf("%w: fixed discount must be greater than 0", ErrCouponInvalid)
	}

	if req.DiscountType == DiscountPercentage && (req.Value <= 0 || req.Value > 100) {
		return fmt.Errorf("%w: percentage must be between 0 and 100", ErrCouponInvalid)
	}

	if req.ValidFrom != nil && req.ValidUntil != nil && !req.ValidUntil.After(*req.ValidFrom) {
		return fmt.Errorf("%w: valid_until must be after valid_from", ErrCouponInvalid)
	}

	return nil
}
