package repository

import (
	"context"

	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/db"
	"storefront-pricing/internal/pkg/pgconv"
	"storefront-pricing/internal/usecase/shared"

	"github.com/google/uuid"
)

const insertOrder = `
INSERT INTO orders (user_id, coupon_id, payment_method, subtotal, discount, shipping_cost, surcharge, total)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

const insertOrderItem = `
INSERT INTO order_items (order_id, variant_id, quantity, unit_price, line_total, price_source)
VALUES ($1, $2, $3, $4, $5, $6)`

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, order shared.OrderRecord) (uuid.UUID, error) {
	var orderID uuid.UUID
	err := tx.QueryRow(ctx, insertOrder,
		order.UserID,
		pgconv.UUIDPtrToPgtype(order.CouponID),
		order.PaymentMethod,
		pgconv.DecimalToNumeric(order.Subtotal),
		pgconv.DecimalToNumeric(order.Discount),
		pgconv.DecimalToNumeric(order.ShippingCost),
		pgconv.DecimalToNumeric(order.Surcharge),
		pgconv.DecimalToNumeric(order.Total),
	).Scan(&orderID)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err)
	}

	for _, item := range order.Items {
		_, err := tx.Exec(ctx, insertOrderItem,
			orderID,
			item.VariantID,
			item.Quantity,
			pgconv.DecimalToNumeric(item.UnitPrice),
			pgconv.DecimalToNumeric(item.LineTotal),
			item.PriceSource,
		)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create order item", err)
		}
	}
	return orderID, nil
}
