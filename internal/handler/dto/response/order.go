package response

import (
	"storefront-pricing/internal/usecase/queries"
)

type OrderSummaryResponse struct {
	ID            string  `json:"id"`
	CouponCode    *string `json:"couponCode"`
	PaymentMethod string  `json:"paymentMethod"`
	Subtotal      string  `json:"subtotal"`
	Discount      string  `json:"discount"`
	ShippingCost  string  `json:"shippingCost"`
	Surcharge     string  `json:"surcharge"`
	Total         string  `json:"total"`
	ItemCount     int     `json:"itemCount"`
	CreatedAt     int64   `json:"createdAt"`
}

type OrderListResponse struct {
	Orders     []*OrderSummaryResponse `json:"orders"`
	NextCursor *string                 `json:"nextCursor"`
}

func FromOrderList(items []*queries.OrderSummary, next *queries.Cursor) *OrderListResponse {
	res := &OrderListResponse{Orders: make([]*OrderSummaryResponse, len(items))}
	for i, o := range items {
		res.Orders[i] = &OrderSummaryResponse{
			ID:            o.ID.String(),
			CouponCode:    o.CouponCode,
			PaymentMethod: o.PaymentMethod,
			Subtotal:      money(o.Subtotal),
			Discount:      money(o.Discount),
			ShippingCost:  money(o.ShippingCost),
			Surcharge:     money(o.Surcharge),
			Total:         money(o.Total),
			ItemCount:     o.ItemCount,
			CreatedAt:     o.CreatedAt.Unix(),
		}
	}
	if next != nil {
		after := next.After
		res.NextCursor = &after
	}
	return res
}
