package pricing

import (
	"fmt"

	"storefront-pricing/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is a priced cart line.
type LineItem struct {
	VariantID         uuid.UUID
	ProductID         uuid.UUID
	CategoryIDs       []uuid.UUID
	BrandID           *uuid.UUID
	Quantity          int
	UnitPrice         decimal.Decimal
	OriginalUnitPrice decimal.Decimal
	PriceSource       PriceSource
}

func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type MatchResult struct {
	MatchedSubtotal  decimal.Decimal
	MatchedCount     int
	FullCartSubtotal decimal.Decimal
}

// WholeCartMatch is used when only a cart total is known and no line items
// are available to match against.
func WholeCartMatch(cartTotal decimal.Decimal) MatchResult {
	return MatchResult{MatchedSubtotal: cartTotal, FullCartSubtotal: cartTotal}
}

type CouponTargetMatcher struct{}

func (CouponTargetMatcher) Match(rule coupon.TargetRule, items []LineItem) (MatchResult, error) {
	var result MatchResult
	for _, item := range items {
		subtotal := item.Subtotal()
		result.FullCartSubtotal = result.FullCartSubtotal.Add(subtotal)

		ok, err := lineMatches(rule, item)
		if err != nil {
			return MatchResult{}, err
		}
		if ok {
			result.MatchedSubtotal = result.MatchedSubtotal.Add(subtotal)
			result.MatchedCount++
		}
	}

	if coupon.IsTargeted(rule) && result.MatchedCount == 0 {
		return MatchResult{}, Reject(KindNoApplicableItems, "coupon does not apply to any item in the cart")
	}
	return result, nil
}

func lineMatches(rule coupon.TargetRule, item LineItem) (bool, error) {
	switch r := rule.(type) {
	case nil, coupon.AllCart:
		return true, nil
	case coupon.ByCategory:
		return r.IDs.HasAny(item.CategoryIDs), nil
	case coupon.ByProduct:
		return r.IDs.Has(item.ProductID), nil
	case coupon.ByBrand:
		return item.BrandID != nil && r.IDs.Has(*item.BrandID), nil
	case coupon.Combined:
		return r.Products.Has(item.ProductID) ||
			(item.BrandID != nil && r.Brands.Has(*item.BrandID)) ||
			r.Categories.HasAny(item.CategoryIDs), nil
	default:
		return false, fmt.Errorf("unsupported coupon target rule %T", rule)
	}
}
