package readstore

import (
	"context"

	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/db"
	"storefront-pricing/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getCouponByCode = `
SELECT id, code, discount_type, discount_value, min_order_amount, max_uses,
       used_count, starts_at, ends_at, is_active
FROM coupons
WHERE code = $1`

const getCouponTargets = `
SELECT 'category' AS kind, category_id::text FROM coupon_categories WHERE coupon_id = $1
UNION ALL
SELECT 'product', product_id::text FROM coupon_products WHERE coupon_id = $1
UNION ALL
SELECT 'brand', brand_id::text FROM coupon_brands WHERE coupon_id = $1`

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

// FindByCode expects an already normalised (upper-cased) code.
func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var (
		id            uuid.UUID
		storedCode    string
		discountType  string
		discountValue pgtype.Numeric
		minOrder      pgtype.Numeric
		maxUses       pgtype.Int4
		usedCount     int32
		startsAt      pgtype.Timestamptz
		endsAt        pgtype.Timestamptz
		isActive      bool
	)
	err := r.db.QueryRow(ctx, getCouponByCode, code).Scan(
		&id, &storedCode, &discountType, &discountValue, &minOrder, &maxUses,
		&usedCount, &startsAt, &endsAt, &isActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	value, err := pgconv.DecimalFromNumeric(discountValue)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid coupon discount value", err)
	}
	minOrderAmount, err := pgconv.DecimalPtrFromNumeric(minOrder)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid coupon minimum order amount", err)
	}

	target, err := r.findTarget(ctx, id)
	if err != nil {
		return nil, err
	}

	return coupon.ReconstructCoupon(
		id,
		storedCode,
		coupon.ReconstructDiscount(coupon.DiscountType(discountType), value),
		coupon.Limits{
			MinOrderAmount: minOrderAmount,
			MaxUses:        pgconv.IntPtrFromPgtype(maxUses),
			StartsAt:       pgconv.TimePtrFromPgtype(startsAt),
			EndsAt:         pgconv.TimePtrFromPgtype(endsAt),
		},
		int(usedCount),
		isActive,
		target,
	), nil
}

func (r *CouponReadStore) findTarget(ctx context.Context, couponID uuid.UUID) (coupon.TargetRule, error) {
	rows, err := r.db.Query(ctx, getCouponTargets, couponID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load coupon targets", err)
	}
	defer rows.Close()

	var categories, products, brands []string
	for rows.Next() {
		var kind, id string
		if err := rows.Scan(&kind, &id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon target", err)
		}
		switch kind {
		case "category":
			categories = append(categories, id)
		case "product":
			products = append(products, id)
		case "brand":
			brands = append(brands, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coupon targets", err)
	}

	categoryIDs, err := pgconv.ParseUUIDs(categories)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid coupon category target", err)
	}
	productIDs, err := pgconv.ParseUUIDs(products)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid coupon product target", err)
	}
	brandIDs, err := pgconv.ParseUUIDs(brands)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid coupon brand target", err)
	}
	return coupon.NewTargetRule(categoryIDs, productIDs, brandIDs), nil
}
