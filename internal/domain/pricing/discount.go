package pricing

import (
	"storefront-pricing/internal/domain/coupon"

	"github.com/shopspring/decimal"
)

type DiscountCalculator struct{}

// Compute never returns more than 90% of the applicable subtotal, whatever the
// stored discount value.
func (DiscountCalculator) Compute(d coupon.Discount, applicable decimal.Decimal) decimal.Decimal {
	if !applicable.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch d.Type() {
	case coupon.DiscountPercentage:
		rate := decimal.Min(d.Value(), maxPercentRate)
		discount = applicable.Mul(rate).Div(hundred)
	case coupon.DiscountFixedAmount:
		discount = d.Value()
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	// the ceiling is floored to 2 places so rounding cannot lift the discount past it
	ceiling := applicable.Mul(maxDiscountRate).RoundFloor(2)
	return decimal.Min(Round(discount), ceiling)
}
