package repository

import (
	"context"

	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/db"

	"github.com/google/uuid"
)

const clearCart = `DELETE FROM cart_items WHERE user_id = $1`

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Clear deletes the cart and reports how many lines it removed.
func (r *CartRepository) Clear(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, clearCart, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to clear cart", err)
	}
	return tag.RowsAffected(), nil
}
