package request

import (
	"storefront-pricing/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VerifyCouponRequest struct {
	Code      string            `json:"code" binding:"required,max=64"`
	CartTotal decimal.Decimal   `json:"cartTotal" swaggertype:"string" example:"1499.00"`
	CartItems []CartItemRequest `json:"cartItems" binding:"omitempty,dive"`
}

type CartItemRequest struct {
	ProductID   uuid.UUID       `json:"productId" binding:"required"`
	VariantID   uuid.UUID       `json:"productVariantId" binding:"required"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"499.00"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	BrandID     *uuid.UUID      `json:"brandId"`
	CategoryIDs []uuid.UUID     `json:"categoryIds"`
}

func (r *VerifyCouponRequest) ToInput() queries.VerifyCouponInput {
	items := make([]queries.VerifyCartItem, 0, len(r.CartItems))
	for _, it := range r.CartItems {
		items = append(items, queries.VerifyCartItem{
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			Price:       it.Price,
			Quantity:    it.Quantity,
			BrandID:     it.BrandID,
			CategoryIDs: it.CategoryIDs,
		})
	}
	return queries.VerifyCouponInput{
		Code:      r.Code,
		CartTotal: r.CartTotal,
		Items:     items,
	}
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}
