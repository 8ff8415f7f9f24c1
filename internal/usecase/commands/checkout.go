package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/domain/pricing"
	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/pkg/clock"
	"storefront-pricing/internal/pkg/errs"
	"storefront-pricing/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderCreationFailed    = errs.New("order creation failed")
	ErrIdempotencyKeyReused   = errs.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
	ErrCartChanged            = errs.New("cart changed during checkout")
)

const (
	checkoutEndpoint  = "POST /api/checkout"
	idempotencyWindow = 24 * time.Hour
)

type PlaceOrderInput struct {
	UserID        uuid.UUID
	CouponCode    string
	PaymentMethod pricing.PaymentMethod
	// IdempotencyKey is optional. A retried checkout with the same key and
	// body returns the stored result instead of placing a second order.
	IdempotencyKey *uuid.UUID
}

type PlaceOrderResult struct {
	OrderID  uuid.UUID
	Totals   pricing.CartTotals
	Replayed bool `json:"-"`
}

type CheckoutCommands interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error)
}

type checkoutUseCaseImpl struct {
	uow    shared.UnitOfWork
	engine *pricing.Engine
	events shared.EventPublisher
	clock  clock.Clock
	logger *slog.Logger
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	engine *pricing.Engine,
	events shared.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutUseCaseImpl{uow: uow, engine: engine, events: events, clock: clk, logger: logger}
}

// PlaceOrder re-prices the persisted cart and, in one transaction, redeems the
// coupon, stores the order and clears the cart. The redemption is a
// conditional increment, so concurrent checkouts cannot exceed max uses.
func (uc *checkoutUseCaseImpl) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	var result *PlaceOrderResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		if in.IdempotencyKey != nil {
			replayed, derr := uc.claimIdempotencyKey(ctx, tx, in)
			if derr != nil {
				return derr
			}
			if replayed != nil {
				result = replayed
				return nil
			}
		}

		var cp *coupon.Coupon
		if in.CouponCode != "" {
			var derr error
			if cp, derr = shared.LoadCoupon(ctx, tx.Reads(), in.CouponCode); derr != nil {
				return derr
			}
		}

		reqs, derr := shared.LoadCart(ctx, tx.Reads(), in.UserID)
		if derr != nil {
			return derr
		}

		totals, derr := uc.engine.PriceCart(reqs, cp, in.PaymentMethod)
		if derr != nil {
			return derr
		}

		var couponID *uuid.UUID
		if totals.Coupon != nil {
			redeemed, derr := tx.Coupons().IncrementUsage(ctx, tx.DB(), cp.ID())
			if derr != nil {
				return errs.Mark(derr, ErrOrderCreationFailed)
			}
			if !redeemed {
				return pricing.Reject(pricing.KindUsageLimitExceeded, "coupon %s has reached its usage limit", cp.Code())
			}
			id := cp.ID()
			couponID = &id
		}

		orderID, derr := tx.Orders().Create(ctx, tx.DB(), toOrderRecord(in, couponID, totals))
		if derr != nil {
			return errs.Mark(derr, ErrOrderCreationFailed)
		}

		// every priced line must be the one deleted, or another request
		// touched the cart after it was read
		cleared, derr := tx.Carts().Clear(ctx, tx.DB(), in.UserID)
		if derr != nil {
			return errs.Mark(derr, ErrOrderCreationFailed)
		}
		if cleared != int64(len(reqs)) {
			return errs.Wrapf(ErrCartChanged, "priced %d lines, cleared %d", len(reqs), cleared)
		}

		result = &PlaceOrderResult{OrderID: orderID, Totals: totals}

		if in.IdempotencyKey != nil {
			if derr = uc.completeIdempotencyKey(ctx, tx, in, result); derr != nil {
				return derr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		uc.publishEvents(ctx, in.UserID, result)
	}
	return result, nil
}

// claimIdempotencyKey returns the stored result when the key was already used
// for the same request. The claim and the order share one transaction, so a
// rejected checkout releases the key.
func (uc *checkoutUseCaseImpl) claimIdempotencyKey(ctx context.Context, tx shared.Tx, in PlaceOrderInput) (*PlaceOrderResult, error) {
	now := uc.clock.Now()
	requestHash := calculateRequestHash(in)

	claimed, err := tx.Idempotency().Claim(ctx, tx.DB(), *in.IdempotencyKey, in.UserID,
		checkoutEndpoint, requestHash, now, now.Add(idempotencyWindow))
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if claimed {
		return nil, nil
	}

	existing, err := tx.Idempotency().Get(ctx, tx.DB(), *in.IdempotencyKey, in.UserID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}
	if existing.Response == nil {
		return nil, errs.Wrap(ErrIdempotencyCheckFailed, "completed request missing stored result")
	}

	var replayed PlaceOrderResult
	if err := json.Unmarshal(existing.Response, &replayed); err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	replayed.Replayed = true
	return &replayed, nil
}

func (uc *checkoutUseCaseImpl) completeIdempotencyKey(ctx context.Context, tx shared.Tx, in PlaceOrderInput, result *PlaceOrderResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return errs.Mark(err, ErrOrderCreationFailed)
	}
	if err := tx.Idempotency().Complete(ctx, tx.DB(), *in.IdempotencyKey, in.UserID, result.OrderID, body); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		return errs.Mark(err, ErrOrderCreationFailed)
	}
	return nil
}

func calculateRequestHash(in PlaceOrderInput) string {
	data, _ := json.Marshal(struct {
		CouponCode    string `json:"coupon_code"`
		PaymentMethod string `json:"payment_method"`
	}{
		CouponCode:    coupon.NormalizeCode(in.CouponCode),
		PaymentMethod: string(in.PaymentMethod),
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Events are best effort; the order is already committed.
func (uc *checkoutUseCaseImpl) publishEvents(ctx context.Context, userID uuid.UUID, result *PlaceOrderResult) {
	now := uc.clock.Now()
	orderKey := result.OrderID.String()

	events := []shared.Event{{
		Type:       shared.EventOrderPlaced,
		Key:        orderKey,
		OccurredAt: now,
		Payload: map[string]any{
			"order_id": orderKey,
			"user_id":  userID.String(),
			"subtotal": result.Totals.Subtotal.StringFixed(2),
			"discount": result.Totals.Discount.StringFixed(2),
			"total":    result.Totals.Total.StringFixed(2),
			"items":    len(result.Totals.Items),
		},
	}}

	if applied := result.Totals.Coupon; applied != nil {
		events = append(events, shared.Event{
			Type:       shared.EventCouponRedeemed,
			Key:        applied.CouponID.String(),
			OccurredAt: now,
			Payload: map[string]any{
				"coupon_id":       applied.CouponID.String(),
				"code":            applied.Code.String(),
				"order_id":        orderKey,
				"discount_amount": applied.DiscountAmount.StringFixed(2),
			},
		})
	}

	if err := uc.events.Publish(ctx, events...); err != nil {
		uc.logger.Warn("failed to publish checkout events",
			"order_id", orderKey,
			"error", err.Error())
	}
}

func toOrderRecord(in PlaceOrderInput, couponID *uuid.UUID, totals pricing.CartTotals) shared.OrderRecord {
	items := make([]shared.OrderItemRecord, 0, len(totals.Items))
	for _, item := range totals.Items {
		items = append(items, shared.OrderItemRecord{
			VariantID:   item.VariantID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   pricing.Round(item.Subtotal()),
			PriceSource: string(item.PriceSource),
		})
	}
	return shared.OrderRecord{
		UserID:        in.UserID,
		CouponID:      couponID,
		PaymentMethod: string(in.PaymentMethod),
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		ShippingCost:  totals.ShippingCost,
		Surcharge:     totals.Surcharge,
		Total:         totals.Total,
		Items:         items,
	}
}
