package queries

import (
	"context"
	"log/slog"

	"storefront-pricing/internal/domain/catalog"
	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/domain/pricing"
	"storefront-pricing/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VerifyCouponInput struct {
	Code      string
	CartTotal decimal.Decimal
	Items     []VerifyCartItem
}

// VerifyCartItem is a cart line as described by the client. Its price is
// taken as given; authenticated flows re-price from the catalog instead.
type VerifyCartItem struct {
	ProductID   uuid.UUID
	VariantID   uuid.UUID
	Price       decimal.Decimal
	Quantity    int
	BrandID     *uuid.UUID
	CategoryIDs []uuid.UUID
}

type ApplyCouponResult struct {
	Coupon    pricing.AppliedCoupon
	CartTotal decimal.Decimal
}

type CartTotalsInput struct {
	UserID        uuid.UUID
	CouponCode    string
	PaymentMethod pricing.PaymentMethod
}

type PricingQueries interface {
	VerifyCoupon(ctx context.Context, in VerifyCouponInput) (*pricing.AppliedCoupon, error)
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*ApplyCouponResult, error)
	QuoteVariant(ctx context.Context, variantID uuid.UUID, quantity int) (*pricing.VariantQuote, error)
	CartTotals(ctx context.Context, in CartTotalsInput) (*pricing.CartTotals, error)
}

type pricingQueriesImpl struct {
	uow    shared.UnitOfWork
	engine *pricing.Engine
	logger *slog.Logger
}

func NewPricingQueries(uow shared.UnitOfWork, engine *pricing.Engine, logger *slog.Logger) PricingQueries {
	return &pricingQueriesImpl{uow: uow, engine: engine, logger: logger}
}

func (q *pricingQueriesImpl) VerifyCoupon(ctx context.Context, in VerifyCouponInput) (*pricing.AppliedCoupon, error) {
	items, err := verifyLineItems(in.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 && !in.CartTotal.IsPositive() {
		return nil, pricing.Reject(pricing.KindEmptyCart, "cart is empty")
	}

	var cp *coupon.Coupon
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.PricingReads) error {
		var lerr error
		cp, lerr = shared.LoadCoupon(ctx, reads, in.Code)
		return lerr
	})
	if err != nil {
		return nil, err
	}

	var applied pricing.AppliedCoupon
	if len(items) > 0 {
		applied, err = q.engine.ApplyCoupon(cp, items)
	} else {
		applied, err = q.engine.ApplyCouponToMatch(cp, pricing.WholeCartMatch(in.CartTotal))
	}
	if err != nil {
		q.logger.Info("coupon verification rejected", "code", cp.Code().String(), "reason", err.Error())
		return nil, err
	}
	return &applied, nil
}

func verifyLineItems(in []VerifyCartItem) ([]pricing.LineItem, error) {
	items := make([]pricing.LineItem, 0, len(in))
	for _, it := range in {
		if it.Quantity <= 0 {
			return nil, pricing.Reject(pricing.KindInvalidQuantity, "quantity must be at least 1")
		}
		if it.Price.IsNegative() {
			return nil, pricing.Reject(pricing.KindInvalidPricing, "price of variant %s cannot be negative", it.VariantID)
		}
		items = append(items, pricing.LineItem{
			VariantID:         it.VariantID,
			ProductID:         it.ProductID,
			CategoryIDs:       it.CategoryIDs,
			BrandID:           it.BrandID,
			Quantity:          it.Quantity,
			UnitPrice:         it.Price,
			OriginalUnitPrice: it.Price,
			PriceSource:       pricing.SourceDefault,
		})
	}
	return items, nil
}

func (q *pricingQueriesImpl) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*ApplyCouponResult, error) {
	var (
		cp   *coupon.Coupon
		reqs []pricing.LineRequest
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.PricingReads) error {
		var lerr error
		if cp, lerr = shared.LoadCoupon(ctx, reads, code); lerr != nil {
			return lerr
		}
		reqs, lerr = shared.LoadCart(ctx, reads, userID)
		return lerr
	})
	if err != nil {
		return nil, err
	}

	items, subtotal, err := q.engine.PriceLines(reqs)
	if err != nil {
		return nil, err
	}
	applied, err := q.engine.ApplyCoupon(cp, items)
	if err != nil {
		return nil, err
	}
	return &ApplyCouponResult{Coupon: applied, CartTotal: pricing.Round(subtotal)}, nil
}

func (q *pricingQueriesImpl) QuoteVariant(ctx context.Context, variantID uuid.UUID, quantity int) (*pricing.VariantQuote, error) {
	if quantity < 0 {
		return nil, pricing.Reject(pricing.KindInvalidQuantity, "quantity cannot be negative")
	}

	var variants map[uuid.UUID]catalog.Variant
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.PricingReads) error {
		var lerr error
		variants, lerr = reads.VariantsByIDs(ctx, []uuid.UUID{variantID})
		return lerr
	})
	if err != nil {
		return nil, err
	}

	v, ok := variants[variantID]
	if !ok {
		return nil, pricing.Reject(pricing.KindUnknownVariant, "variant %s not found", variantID)
	}
	quote, err := q.engine.Quote(v, quantity)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (q *pricingQueriesImpl) CartTotals(ctx context.Context, in CartTotalsInput) (*pricing.CartTotals, error) {
	var (
		cp   *coupon.Coupon
		reqs []pricing.LineRequest
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.PricingReads) error {
		var lerr error
		if in.CouponCode != "" {
			if cp, lerr = shared.LoadCoupon(ctx, reads, in.CouponCode); lerr != nil {
				return lerr
			}
		}
		reqs, lerr = shared.LoadCart(ctx, reads, in.UserID)
		return lerr
	})
	if err != nil {
		return nil, err
	}

	totals, err := q.engine.PriceCart(reqs, cp, in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
