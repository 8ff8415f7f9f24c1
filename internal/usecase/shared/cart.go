package shared

import (
	"context"

	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/domain/pricing"
	"storefront-pricing/internal/infra"

	"github.com/google/uuid"
)

// LoadCoupon looks a coupon up by its normalised code. Unknown and inactive
// codes are reported the same way.
func LoadCoupon(ctx context.Context, reads PricingReads, code string) (*coupon.Coupon, error) {
	normalized := coupon.NormalizeCode(code)
	if normalized == "" {
		return nil, pricing.Reject(pricing.KindInvalidCouponCode, "coupon code is required")
	}

	cp, err := reads.CouponByCode(ctx, normalized)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, pricing.Reject(pricing.KindInvalidCouponCode, "coupon %s is not valid", normalized)
		}
		return nil, err
	}
	if !cp.IsActive() {
		return nil, pricing.Reject(pricing.KindInvalidCouponCode, "coupon %s is not valid", normalized)
	}
	return cp, nil
}

// LoadCart resolves the persisted cart of userID into pricing requests, in
// cart order.
func LoadCart(ctx context.Context, reads PricingReads, userID uuid.UUID) ([]pricing.LineRequest, error) {
	items, err := reads.CartItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pricing.Reject(pricing.KindEmptyCart, "cart is empty")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.VariantID)
	}
	variants, err := reads.VariantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	reqs := make([]pricing.LineRequest, 0, len(items))
	for _, item := range items {
		v, ok := variants[item.VariantID]
		if !ok {
			return nil, pricing.Reject(pricing.KindUnknownVariant, "variant %s is no longer available", item.VariantID)
		}
		reqs = append(reqs, pricing.LineRequest{Variant: v, Quantity: item.Quantity})
	}
	return reqs, nil
}
