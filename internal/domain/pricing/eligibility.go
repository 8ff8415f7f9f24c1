package pricing

import (
	"errors"

	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/pkg/clock"

	"github.com/shopspring/decimal"
)

type CouponEligibilityChecker struct {
	EnforceSchedule bool
	Clock           clock.Clock
}

// Check runs the rules in order and reports the first failure.
func (c CouponEligibilityChecker) Check(cp *coupon.Coupon, applicable decimal.Decimal) error {
	if !cp.IsActive() {
		return Reject(KindInvalidCouponCode, "coupon %s is not valid", cp.Code())
	}

	if c.EnforceSchedule {
		if err := cp.ValidateSchedule(c.Clock.Now()); err != nil {
			if errors.Is(err, coupon.ErrCouponNotYetValid) {
				return Reject(KindCouponNotStarted, "coupon %s is not active yet", cp.Code())
			}
			return Reject(KindCouponExpired, "coupon %s has expired", cp.Code())
		}
	}

	if cp.UsageExhausted() {
		return Reject(KindUsageLimitExceeded, "coupon %s has reached its usage limit", cp.Code())
	}

	if floor := cp.MinOrderAmount(); floor != nil && applicable.LessThan(*floor) {
		return Reject(KindMinOrderNotMet, "minimum order amount of ₹%s is required for coupon %s", formatAmount(*floor), cp.Code())
	}
	return nil
}
