package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponNotYetValid  = errors.New("coupon is not yet valid")
	ErrInvalidUsageLimit  = errors.New("max uses must be at least 1")
	ErrInvalidMinOrder    = errors.New("minimum order amount cannot be negative")
	ErrInvalidValidWindow = errors.New("coupon end date must be after start date")
)

type Coupon struct {
	id             uuid.UUID
	code           Code
	discount       Discount
	minOrderAmount *decimal.Decimal
	maxUses        *int
	usedCount      int
	startsAt       *time.Time
	endsAt         *time.Time
	isActive       bool
	target         TargetRule
}

type Limits struct {
	MinOrderAmount *decimal.Decimal
	MaxUses        *int
	StartsAt       *time.Time
	EndsAt         *time.Time
}

func NewCoupon(
	id uuid.UUID,
	code string,
	kind DiscountType,
	value decimal.Decimal,
	limits Limits,
	target TargetRule,
) (*Coupon, error) {
	couponCode, err := NewCouponCode(code)
	if err != nil {
		return nil, err
	}

	discount, err := NewDiscount(kind, value)
	if err != nil {
		return nil, err
	}

	if limits.MinOrderAmount != nil && limits.MinOrderAmount.IsNegative() {
		return nil, ErrInvalidMinOrder
	}
	if limits.MaxUses != nil && *limits.MaxUses < 1 {
		return nil, ErrInvalidUsageLimit
	}
	if limits.StartsAt != nil && limits.EndsAt != nil && !limits.EndsAt.After(*limits.StartsAt) {
		return nil, ErrInvalidValidWindow
	}

	if target == nil {
		target = AllCart{}
	}

	return &Coupon{
		id:             id,
		code:           couponCode,
		discount:       discount,
		minOrderAmount: limits.MinOrderAmount,
		maxUses:        limits.MaxUses,
		startsAt:       limits.StartsAt,
		endsAt:         limits.EndsAt,
		isActive:       true,
		target:         target,
	}, nil
}

func ReconstructCoupon(
	id uuid.UUID,
	code string,
	discount Discount,
	limits Limits,
	usedCount int,
	isActive bool,
	target TargetRule,
) *Coupon {
	if target == nil {
		target = AllCart{}
	}
	return &Coupon{
		id:             id,
		code:           Code(NormalizeCode(code)),
		discount:       discount,
		minOrderAmount: limits.MinOrderAmount,
		maxUses:        limits.MaxUses,
		usedCount:      usedCount,
		startsAt:       limits.StartsAt,
		endsAt:         limits.EndsAt,
		isActive:       isActive,
		target:         target,
	}
}

func (c *Coupon) IsValidAt(t time.Time) bool {
	if c.startsAt != nil && t.Before(*c.startsAt) {
		return false
	}
	if c.endsAt != nil && t.After(*c.endsAt) {
		return false
	}
	return true
}

func (c *Coupon) ValidateSchedule(t time.Time) error {
	if !c.IsValidAt(t) {
		if c.startsAt != nil && t.Before(*c.startsAt) {
			return ErrCouponNotYetValid
		}
		return ErrCouponExpired
	}
	return nil
}

func (c *Coupon) UsageExhausted() bool {
	return c.maxUses != nil && c.usedCount >= *c.maxUses
}

func (c *Coupon) ID() uuid.UUID                    { return c.id }
func (c *Coupon) Code() Code                       { return c.code }
func (c *Coupon) Discount() Discount               { return c.discount }
func (c *Coupon) MinOrderAmount() *decimal.Decimal { return c.minOrderAmount }
func (c *Coupon) MaxUses() *int                    { return c.maxUses }
func (c *Coupon) UsedCount() int                   { return c.usedCount }
func (c *Coupon) StartsAt() *time.Time             { return c.startsAt }
func (c *Coupon) EndsAt() *time.Time               { return c.endsAt }
func (c *Coupon) IsActive() bool                   { return c.isActive }
func (c *Coupon) Target() TargetRule               { return c.target }
