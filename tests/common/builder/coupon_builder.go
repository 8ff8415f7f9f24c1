//go:build unit || e2e

package builder

import (
	"time"

	"storefront-pricing/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	ID             uuid.UUID
	Code           string
	DiscountType   coupon.DiscountType
	DiscountValue  decimal.Decimal
	MinOrderAmount *decimal.Decimal
	MaxUses        *int
	UsedCount      int
	StartsAt       *time.Time
	EndsAt         *time.Time
	IsActive       bool
	CategoryIDs    []uuid.UUID
	ProductIDs     []uuid.UUID
	BrandIDs       []uuid.UUID
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:            uuid.New(),
		Code:          "SAVE10",
		DiscountType:  coupon.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithPercentage(value string) *CouponBuilder {
	b.DiscountType = coupon.DiscountPercentage
	b.DiscountValue = decimal.RequireFromString(value)
	return b
}

func (b *CouponBuilder) WithFixedAmount(value string) *CouponBuilder {
	b.DiscountType = coupon.DiscountFixedAmount
	b.DiscountValue = decimal.RequireFromString(value)
	return b
}

func (b *CouponBuilder) WithMinOrder(amount string) *CouponBuilder {
	v := decimal.RequireFromString(amount)
	b.MinOrderAmount = &v
	return b
}

func (b *CouponBuilder) WithUsage(maxUses, usedCount int) *CouponBuilder {
	b.MaxUses = &maxUses
	b.UsedCount = usedCount
	return b
}

func (b *CouponBuilder) WithWindow(startsAt, endsAt *time.Time) *CouponBuilder {
	b.StartsAt = startsAt
	b.EndsAt = endsAt
	return b
}

func (b *CouponBuilder) WithCategories(ids ...uuid.UUID) *CouponBuilder {
	b.CategoryIDs = ids
	return b
}

func (b *CouponBuilder) WithProducts(ids ...uuid.UUID) *CouponBuilder {
	b.ProductIDs = ids
	return b
}

func (b *CouponBuilder) WithBrands(ids ...uuid.UUID) *CouponBuilder {
	b.BrandIDs = ids
	return b
}

func (b *CouponBuilder) AsInactive() *CouponBuilder {
	b.IsActive = false
	return b
}

func (b *CouponBuilder) limits() coupon.Limits {
	return coupon.Limits{
		MinOrderAmount: b.MinOrderAmount,
		MaxUses:        b.MaxUses,
		StartsAt:       b.StartsAt,
		EndsAt:         b.EndsAt,
	}
}

func (b *CouponBuilder) target() coupon.TargetRule {
	return coupon.NewTargetRule(b.CategoryIDs, b.ProductIDs, b.BrandIDs)
}

// Build methods
func (b *CouponBuilder) BuildNew() (*coupon.Coupon, error) {
	return coupon.NewCoupon(b.ID, b.Code, b.DiscountType, b.DiscountValue, b.limits(), b.target())
}

// BuildDomain skips creation-time validation, the way rows loaded from the
// database do.
func (b *CouponBuilder) BuildDomain() *coupon.Coupon {
	return coupon.ReconstructCoupon(
		b.ID,
		b.Code,
		coupon.ReconstructDiscount(b.DiscountType, b.DiscountValue),
		b.limits(),
		b.UsedCount,
		b.IsActive,
		b.target(),
	)
}
