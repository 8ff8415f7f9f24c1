package readstore

import (
	"context"
	"time"

	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/db"
	"storefront-pricing/internal/pkg/pgconv"
	"storefront-pricing/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderSummaryColumns = `
SELECT o.id, c.code, o.payment_method, o.subtotal, o.discount, o.shipping_cost,
       o.surcharge, o.total,
       (SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id)::int AS item_count,
       o.created_at
FROM orders o
LEFT JOIN coupons c ON c.id = o.coupon_id`

const getOrdersByUserFirstPage = orderSummaryColumns + `
WHERE o.user_id = $1
ORDER BY o.created_at DESC, o.id DESC
LIMIT $2`

const getOrdersByUserKeyset = orderSummaryColumns + `
WHERE o.user_id = $1 AND (o.created_at, o.id) < ($2, $3)
ORDER BY o.created_at DESC, o.id DESC
LIMIT $4`

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderSummary, error) {
	rows, err := r.db.Query(ctx, getOrdersByUserFirstPage, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	return collectOrderSummaries(rows)
}

func (r *OrderReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.OrderSummary, error) {
	rows, err := r.db.Query(ctx, getOrdersByUserKeyset, userID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	return collectOrderSummaries(rows)
}

func collectOrderSummaries(rows pgx.Rows) ([]*queries.OrderSummary, error) {
	defer rows.Close()

	var out []*queries.OrderSummary
	for rows.Next() {
		var (
			o                                              queries.OrderSummary
			code                                           pgtype.Text
			subtotal, discount, shipping, surcharge, total pgtype.Numeric
			itemCount                                      int32
		)
		if err := rows.Scan(&o.ID, &code, &o.PaymentMethod, &subtotal, &discount, &shipping,
			&surcharge, &total, &itemCount, &o.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		o.CouponCode = pgconv.StringPtrFromPgtype(code)
		o.Subtotal = pgconv.DecimalOrZero(subtotal)
		o.Discount = pgconv.DecimalOrZero(discount)
		o.ShippingCost = pgconv.DecimalOrZero(shipping)
		o.Surcharge = pgconv.DecimalOrZero(surcharge)
		o.Total = pgconv.DecimalOrZero(total)
		o.ItemCount = int(itemCount)
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return out, nil
}
