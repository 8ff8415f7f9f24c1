package repository

import (
	"context"

	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/db"

	"github.com/google/uuid"
)

// The usage check and the increment are one statement, so two concurrent
// checkouts cannot both take the last redemption.
const incrementCouponUsage = `
UPDATE coupons
SET used_count = used_count + 1, updated_at = now()
WHERE id = $1
  AND is_active
  AND (max_uses IS NULL OR used_count < max_uses)`

type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

func (r *CouponRepository) IncrementUsage(ctx context.Context, tx db.DBTX, couponID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx, incrementCouponUsage, couponID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment coupon usage", err)
	}
	return tag.RowsAffected() == 1, nil
}
