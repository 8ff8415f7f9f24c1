package readstore

import (
	"context"

	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/db"
	"storefront-pricing/internal/usecase/shared"

	"github.com/google/uuid"
)

const getCartItemsByUser = `
SELECT variant_id, quantity
FROM cart_items
WHERE user_id = $1
ORDER BY created_at, variant_id`

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(dbtx db.DBTX) *CartReadStore {
	return &CartReadStore{db: dbtx}
}

func (r *CartReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]shared.CartItemSnapshot, error) {
	rows, err := r.db.Query(ctx, getCartItemsByUser, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load cart", err)
	}
	defer rows.Close()

	var items []shared.CartItemSnapshot
	for rows.Next() {
		var (
			item     shared.CartItemSnapshot
			quantity int32
		)
		if err := rows.Scan(&item.VariantID, &quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart item", err)
		}
		item.Quantity = int(quantity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate cart items", err)
	}
	return items, nil
}
