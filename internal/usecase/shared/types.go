package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItemSnapshot struct {
	VariantID uuid.UUID
	Quantity  int
}

type OrderRecord struct {
	UserID        uuid.UUID
	CouponID      *uuid.UUID
	PaymentMethod string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	ShippingCost  decimal.Decimal
	Surcharge     decimal.Decimal
	Total         decimal.Decimal
	Items         []OrderItemRecord
}

type OrderItemRecord struct {
	VariantID   uuid.UUID
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	PriceSource string
}

// IdempotencyRecord is a stored checkout attempt. Response is nil until the
// order commits.
type IdempotencyRecord struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	OrderID     *uuid.UUID
	Response    []byte
	ExpiresAt   time.Time
}

const (
	EventCouponRedeemed = "coupon.redeemed"
	EventOrderPlaced    = "order.placed"
)

type Event struct {
	Type       string
	Key        string
	OccurredAt time.Time
	Payload    any
}
