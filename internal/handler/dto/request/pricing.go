package request

import (
	"storefront-pricing/internal/domain/pricing"
	"storefront-pricing/internal/usecase/commands"
	"storefront-pricing/internal/usecase/queries"

	"github.com/google/uuid"
)

type VariantPriceQuery struct {
	Quantity int `form:"quantity" binding:"min=0"`
}

type CartTotalsQuery struct {
	Coupon        string `form:"coupon" binding:"max=64"`
	PaymentMethod string `form:"paymentMethod" binding:"omitempty,oneof=prepaid cod"`
}

func (q *CartTotalsQuery) ToInput(userID uuid.UUID) queries.CartTotalsInput {
	return queries.CartTotalsInput{
		UserID:        userID,
		CouponCode:    q.Coupon,
		PaymentMethod: paymentMethodOrDefault(q.PaymentMethod),
	}
}

type CheckoutRequest struct {
	CouponCode    string `json:"couponCode" binding:"max=64"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=prepaid cod"`
}

func (r *CheckoutRequest) ToInput(userID uuid.UUID) commands.PlaceOrderInput {
	return commands.PlaceOrderInput{
		UserID:        userID,
		CouponCode:    r.CouponCode,
		PaymentMethod: paymentMethodOrDefault(r.PaymentMethod),
	}
}

type ListOrdersQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q *ListOrdersQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}

func paymentMethodOrDefault(raw string) pricing.PaymentMethod {
	if raw == "" {
		return pricing.PaymentPrepaid
	}
	return pricing.PaymentMethod(raw)
}
