package coupons

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DiscountNone       = "NONE"
	DiscountFixed      = "FIXED"
	DiscountPercentage = "PERCENTAGE"
)

// Coupon defines a discount code applied at checkout
type Coupon struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string     `gorm:"size:40;uniqueIndex;not null" json:"code"`
	DiscountType string     `gorm:"type:varchar(20);check:discount_type IN ('NONE', 'FIXED', 'PERCENTAGE');default:'NONE'" json:"discount_type"`
	Value        float64    `gorm:"not null;default:0" json:"value"`
	MaxDiscount  float64    `gorm:"not null;default:0" json:"max_discount"` // 0 means uncapped
	MinSubtotal  float64    `gorm:"not null;default:0" json:"min_subtotal"`
	ValidFrom    *time.Time `json:"valid_from,omitempty"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
	Active       bool       `gorm:"not null" json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Code = NormalizeCode(c.Code)
	return nil
}

// TableName sets the table name for Coupon
func (Coupon) TableName() string {
	return "coupons"
}

// DiscountFor returns the discount on subtotal at now, never more than subtotal
func (c *Coupon) DiscountFor(subtotal float64, now time.Time) (float64, error) {
	if !c.Active {
		return 0, ErrCouponInactive
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return 0, ErrCouponNotStarted
	}
	if c.ValidUntil != nil && !now.Before(*c.ValidUntil) {
		return 0, ErrCouponExpired
	}
	if subtotal < c.MinSubtotal {
		return 0, ErrBelowMinimum
	}

	var discount float64
	switch c.DiscountType {
	case DiscountNone:
		discount = 0
	case DiscountFixed:
		discount = c.Value
	case DiscountPercentage:
		discount = subtotal * (c.Value / 100)
	default:
		return 0, ErrCouponInvalid
	}

	if c.MaxDiscount > 0 && discount > c.MaxDiscount {
		discount = c.MaxDiscount
	}
	// Ensure discount doesn't exceed subtotal
	if discount > subtotal {
		discount = subtotal
	}
	return discount, nil
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CreateCouponRequest struct {
	Code         string     `json:"code" binding:"required,alphanum,min=3,max=40"`
	DiscountType string     `json:"discount_type" binding:"required,oneof=NONE FIXED PERCENTAGE"`
	Value        float64    `json:"value" binding:"min=0"`
	MaxDiscount  float64    `json:"max_discount" binding:"min=0"`
	MinSubtotal  float64    `json:"min_subtotal" binding:"min=0"`
	ValidFrom    *time.Time `json:"valid_from"`
	ValidUntil   *time.Time `json:"valid_until"`
	Active       *bool      `json:"active"`
}

type QuoteResponse struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}
