package pricing

import (
	"storefront-pricing/internal/domain/catalog"
	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Settings struct {
	EnforceCouponSchedule bool
	ShippingFlatRate      decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	CODFee                decimal.Decimal
	MinimumCharge         decimal.Decimal
}

// Engine composes the pricing components. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	Resolver      SlabPriceResolver
	MOQ           MOQGate
	Matcher       CouponTargetMatcher
	Discounts     DiscountCalculator
	Eligibility   CouponEligibilityChecker
	Shipping      ShippingPolicy
	Surcharges    Surcharges
	MinimumCharge decimal.Decimal
	Clock         clock.Clock
}

func NewEngine(settings Settings, clk clock.Clock) *Engine {
	return &Engine{
		Eligibility: CouponEligibilityChecker{
			EnforceSchedule: settings.EnforceCouponSchedule,
			Clock:           clk,
		},
		Shipping: ShippingPolicy{
			FlatRate:      settings.ShippingFlatRate,
			FreeThreshold: settings.FreeShippingThreshold,
		},
		Surcharges:    Surcharges{CODFee: settings.CODFee},
		MinimumCharge: settings.MinimumCharge,
		Clock:         clk,
	}
}

type LineRequest struct {
	Variant  catalog.Variant
	Quantity int
}

type VariantQuote struct {
	VariantID       uuid.UUID
	Quantity        int
	MinimumQuantity int
	PriceQuote
	LineTotal decimal.Decimal
}

// Quote prices a single variant without any coupon, as the product page does.
func (e *Engine) Quote(v catalog.Variant, requested int) (VariantQuote, error) {
	quantity, err := e.MOQ.Clamp(v, requested)
	if err != nil {
		return VariantQuote{}, err
	}
	quote, err := e.Resolver.Resolve(v, quantity, e.Clock.Now())
	if err != nil {
		return VariantQuote{}, err
	}
	return VariantQuote{
		VariantID:       v.ID,
		Quantity:        quantity,
		MinimumQuantity: e.MOQ.Minimum(v),
		PriceQuote:      quote,
		LineTotal:       Round(quote.Price.Mul(decimal.NewFromInt(int64(quantity)))),
	}, nil
}

// PriceLines runs the MOQ gate and the slab resolver for every request, in
// request order.
func (e *Engine) PriceLines(reqs []LineRequest) ([]LineItem, decimal.Decimal, error) {
	now := e.Clock.Now()
	items := make([]LineItem, 0, len(reqs))
	subtotal := decimal.Zero
	for _, req := range reqs {
		quantity, err := e.MOQ.Clamp(req.Variant, req.Quantity)
		if err != nil {
			return nil, decimal.Zero, err
		}
		quote, err := e.Resolver.Resolve(req.Variant, quantity, now)
		if err != nil {
			return nil, decimal.Zero, err
		}
		item := LineItem{
			VariantID:         req.Variant.ID,
			ProductID:         req.Variant.ProductID,
			CategoryIDs:       req.Variant.CategoryIDs,
			BrandID:           req.Variant.BrandID,
			Quantity:          quantity,
			UnitPrice:         quote.Price,
			OriginalUnitPrice: quote.OriginalPrice,
			PriceSource:       quote.Source,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.Subtotal())
	}
	return items, subtotal, nil
}

type AppliedCoupon struct {
	CouponID           uuid.UUID
	Code               coupon.Code
	DiscountType       coupon.DiscountType
	DiscountValue      decimal.Decimal
	DiscountAmount     decimal.Decimal
	ApplicableSubtotal decimal.Decimal
	MatchedItems       int
	FinalAmount        decimal.Decimal
}

// ApplyCoupon matches the coupon against priced lines, then checks
// eligibility against the matched subtotal and computes the discount.
func (e *Engine) ApplyCoupon(cp *coupon.Coupon, items []LineItem) (AppliedCoupon, error) {
	if len(items) == 0 {
		return AppliedCoupon{}, Reject(KindEmptyCart, "cart is empty")
	}
	match, err := e.Matcher.Match(cp.Target(), items)
	if err != nil {
		return AppliedCoupon{}, err
	}
	return e.ApplyCouponToMatch(cp, match)
}

func (e *Engine) ApplyCouponToMatch(cp *coupon.Coupon, match MatchResult) (AppliedCoupon, error) {
	if !match.FullCartSubtotal.IsPositive() {
		return AppliedCoupon{}, Reject(KindEmptyCart, "cart is empty")
	}
	if err := e.Eligibility.Check(cp, match.MatchedSubtotal); err != nil {
		return AppliedCoupon{}, err
	}
	discount := e.Discounts.Compute(cp.Discount(), match.MatchedSubtotal)
	return AppliedCoupon{
		CouponID:           cp.ID(),
		Code:               cp.Code(),
		DiscountType:       cp.Discount().Type(),
		DiscountValue:      cp.Discount().Value(),
		DiscountAmount:     discount,
		ApplicableSubtotal: Round(match.MatchedSubtotal),
		MatchedItems:       match.MatchedCount,
		FinalAmount:        Round(match.FullCartSubtotal.Sub(discount)),
	}, nil
}

type CartTotals struct {
	Items        []LineItem
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	ShippingCost decimal.Decimal
	Surcharge    decimal.Decimal
	Total        decimal.Decimal
	Coupon       *AppliedCoupon
}

// PriceCart produces the order totals. cp may be nil.
func (e *Engine) PriceCart(reqs []LineRequest, cp *coupon.Coupon, method PaymentMethod) (CartTotals, error) {
	if len(reqs) == 0 {
		return CartTotals{}, Reject(KindEmptyCart, "cart is empty")
	}

	items, subtotal, err := e.PriceLines(reqs)
	if err != nil {
		return CartTotals{}, err
	}

	totals := CartTotals{Items: items, Subtotal: Round(subtotal), Discount: decimal.Zero}
	if cp != nil {
		applied, err := e.ApplyCoupon(cp, items)
		if err != nil {
			return CartTotals{}, err
		}
		totals.Coupon = &applied
		totals.Discount = applied.DiscountAmount
	}

	discounted := subtotal.Sub(totals.Discount)
	totals.ShippingCost = Round(e.Shipping.Cost(discounted))
	totals.Surcharge = Round(e.Surcharges.For(method))
	totals.Total = Round(decimal.Max(
		discounted.Add(totals.ShippingCost).Add(totals.Surcharge),
		e.MinimumCharge,
	))
	return totals, nil
}
