package shared

import (
	"context"
	"time"

	"storefront-pricing/internal/domain/catalog"
	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction so one pricing request sees one snapshot of coupon, slab and cart rows
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads PricingReads) error) error
}

type Tx interface {
	Coupons() CouponRepository
	Orders() OrderRepository
	Carts() CartRepository
	Idempotency() IdempotencyRepository
	Reads() PricingReads
	DB() db.DBTX
}

type PricingReads interface {
	CouponByCode(ctx context.Context, code string) (*coupon.Coupon, error)
	VariantsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Variant, error)
	CartItemsByUser(ctx context.Context, userID uuid.UUID) ([]CartItemSnapshot, error)
}

type CouponRepository interface {
	// IncrementUsage reports false when the coupon is inactive or its usage limit is already reached.
	IncrementUsage(ctx context.Context, tx db.DBTX, couponID uuid.UUID) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, order OrderRecord) (uuid.UUID, error)
}

type CartRepository interface {
	// Clear returns the number of cart lines deleted.
	Clear(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error)
}

type IdempotencyRepository interface {
	// Claim inserts the key, or takes over one that expired before now. It
	// reports false when a live record for the key already exists.
	Claim(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*IdempotencyRecord, error)
	Complete(ctx context.Context, tx db.DBTX, key, userID, orderID uuid.UUID, response []byte) error
}
