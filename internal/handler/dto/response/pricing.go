package response

import (
	"storefront-pricing/internal/domain/catalog"
	"storefront-pricing/internal/domain/pricing"
	"storefront-pricing/internal/usecase/commands"
	"storefront-pricing/internal/usecase/queries"

	"github.com/shopspring/decimal"
)

// All money fields are rendered with exactly two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type AppliedCouponResponse struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	DiscountType       string `json:"discountType"`
	DiscountValue      string `json:"discountValue"`
	DiscountAmount     string `json:"discountAmount"`
	ApplicableSubtotal string `json:"applicableSubtotal"`
	MatchedItems       int    `json:"matchedItems"`
	FinalAmount        string `json:"finalAmount"`
}

func FromAppliedCoupon(a *pricing.AppliedCoupon) *AppliedCouponResponse {
	if a == nil {
		return nil
	}
	return &AppliedCouponResponse{
		ID:                 a.CouponID.String(),
		Code:               a.Code.String(),
		DiscountType:       string(a.DiscountType),
		DiscountValue:      money(a.DiscountValue),
		DiscountAmount:     money(a.DiscountAmount),
		ApplicableSubtotal: money(a.ApplicableSubtotal),
		MatchedItems:       a.MatchedItems,
		FinalAmount:        money(a.FinalAmount),
	}
}

type VerifyCouponResponse struct {
	Valid  bool                   `json:"valid"`
	Coupon *AppliedCouponResponse `json:"coupon"`
}

func FromVerifiedCoupon(a *pricing.AppliedCoupon) *VerifyCouponResponse {
	return &VerifyCouponResponse{Valid: true, Coupon: FromAppliedCoupon(a)}
}

type ApplyCouponResponse struct {
	Valid     bool                   `json:"valid"`
	Coupon    *AppliedCouponResponse `json:"coupon"`
	CartTotal string                 `json:"cartTotal"`
}

func FromApplyCouponResult(r *queries.ApplyCouponResult) *ApplyCouponResponse {
	return &ApplyCouponResponse{
		Valid:     true,
		Coupon:    FromAppliedCoupon(&r.Coupon),
		CartTotal: money(r.CartTotal),
	}
}

type SlabResponse struct {
	MinQty int    `json:"minQty"`
	MaxQty *int   `json:"maxQty"`
	Price  string `json:"price"`
}

type VariantPriceResponse struct {
	VariantID       string        `json:"variantId"`
	Quantity        int           `json:"quantity"`
	MinimumQuantity int           `json:"minimumQuantity"`
	UnitPrice       string        `json:"unitPrice"`
	OriginalPrice   string        `json:"originalPrice"`
	PriceSource     string        `json:"priceSource"`
	IsDiscounted    bool          `json:"isDiscounted"`
	LineTotal       string        `json:"lineTotal"`
	Slab            *SlabResponse `json:"slab,omitempty"`
}

func FromVariantQuote(q *pricing.VariantQuote) *VariantPriceResponse {
	return &VariantPriceResponse{
		VariantID:       q.VariantID.String(),
		Quantity:        q.Quantity,
		MinimumQuantity: q.MinimumQuantity,
		UnitPrice:       money(q.Price),
		OriginalPrice:   money(q.OriginalPrice),
		PriceSource:     string(q.Source),
		IsDiscounted:    q.IsDiscounted(),
		LineTotal:       money(q.LineTotal),
		Slab:            fromSlab(q.MatchedSlab),
	}
}

func fromSlab(s *catalog.Slab) *SlabResponse {
	if s == nil {
		return nil
	}
	return &SlabResponse{MinQty: s.MinQty, MaxQty: s.MaxQty, Price: money(s.Price)}
}

type CartLineResponse struct {
	VariantID         string `json:"variantId"`
	Quantity          int    `json:"quantity"`
	UnitPrice         string `json:"unitPrice"`
	OriginalUnitPrice string `json:"originalUnitPrice"`
	PriceSource       string `json:"priceSource"`
	LineTotal         string `json:"lineTotal"`
}

type CartTotalsResponse struct {
	Items        []CartLineResponse     `json:"items"`
	Subtotal     string                 `json:"subtotal"`
	Discount     string                 `json:"discount"`
	ShippingCost string                 `json:"shippingCost"`
	Surcharge    string                 `json:"surcharge"`
	Total        string                 `json:"total"`
	Coupon       *AppliedCouponResponse `json:"coupon,omitempty"`
}

func FromCartTotals(t *pricing.CartTotals) *CartTotalsResponse {
	items := make([]CartLineResponse, len(t.Items))
	for i, it := range t.Items {
		items[i] = CartLineResponse{
			VariantID:         it.VariantID.String(),
			Quantity:          it.Quantity,
			UnitPrice:         money(it.UnitPrice),
			OriginalUnitPrice: money(it.OriginalUnitPrice),
			PriceSource:       string(it.PriceSource),
			LineTotal:         money(it.Subtotal()),
		}
	}
	return &CartTotalsResponse{
		Items:        items,
		Subtotal:     money(t.Subtotal),
		Discount:     money(t.Discount),
		ShippingCost: money(t.ShippingCost),
		Surcharge:    money(t.Surcharge),
		Total:        money(t.Total),
		Coupon:       FromAppliedCoupon(t.Coupon),
	}
}

type CheckoutResponse struct {
	OrderID string              `json:"orderId"`
	Totals  *CartTotalsResponse `json:"totals"`
}

func FromPlaceOrderResult(r *commands.PlaceOrderResult) *CheckoutResponse {
	return &CheckoutResponse{
		OrderID: r.OrderID.String(),
		Totals:  FromCartTotals(&r.Totals),
	}
}
