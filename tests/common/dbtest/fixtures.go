//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"storefront-pricing/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both the pool and a pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateBrand(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO brands (name) VALUES ($1) RETURNING id", name).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateCategory(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO categories (name) VALUES ($1) RETURNING id", name).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateProduct links the product to every given category.
func CreateProduct(t *testing.T, db DBLike, name string, brandID *uuid.UUID, categoryIDs ...uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	var id uuid.UUID
	err := db.QueryRow(ctx,
		"INSERT INTO products (name, brand_id) VALUES ($1, $2) RETURNING id", name, brandID).Scan(&id)
	require.NoError(t, err)

	for _, categoryID := range categoryIDs {
		_, err := db.Exec(ctx,
			"INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)", id, categoryID)
		require.NoError(t, err)
	}
	return id
}

// CreateVariant persists the builder's pricing fields under b.ProductID, which must already exist.
// Brand and category data come from the product row, not the builder.
func CreateVariant(t *testing.T, db DBLike, b *builder.VariantBuilder) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	var (
		moqActive   bool
		moqMin      = 1
		flashPrice  any
		flashStarts *time.Time
		flashEnds   *time.Time
		salePrice   any
	)
	if b.MOQ != nil {
		moqActive = b.MOQ.IsActive
		moqMin = b.MOQ.MinQuantity
	}
	if b.FlashSale != nil {
		flashPrice = b.FlashSale.Price.String()
		flashStarts = &b.FlashSale.StartsAt
		flashEnds = &b.FlashSale.EndsAt
	}
	if b.SalePrice != nil {
		salePrice = b.SalePrice.String()
	}

	_, err := db.Exec(ctx, `
		INSERT INTO product_variants (
			id, product_id, sku, base_price, sale_price, stock, moq_active, moq_min_quantity,
			flash_sale_price, flash_sale_starts_at, flash_sale_ends_at
		) VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9::numeric, $10, $11)`,
		b.ID, b.ProductID, "SKU-"+b.ID.String()[:8], b.BasePrice.String(), salePrice, b.Stock,
		moqActive, moqMin, flashPrice, flashStarts, flashEnds)
	require.NoError(t, err)

	for _, slab := range b.Slabs {
		_, err := db.Exec(ctx,
			"INSERT INTO pricing_slabs (variant_id, min_qty, max_qty, price) VALUES ($1, $2, $3, $4::numeric)",
			b.ID, slab.MinQty, slab.MaxQty, slab.Price.String())
		require.NoError(t, err)
	}
	return b.ID
}

func CreateCoupon(t *testing.T, db DBLike, b *builder.CouponBuilder) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	minOrder := "0"
	if b.MinOrderAmount != nil {
		minOrder = b.MinOrderAmount.String()
	}

	_, err := db.Exec(ctx, `
		INSERT INTO coupons (
			id, code, discount_type, discount_value, min_order_amount, max_uses, used_count,
			starts_at, ends_at, is_active
		) VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9, $10)`,
		b.ID, strings.ToUpper(b.Code), string(b.DiscountType), b.DiscountValue.String(), minOrder,
		b.MaxUses, b.UsedCount, b.StartsAt, b.EndsAt, b.IsActive)
	require.NoError(t, err)

	link := func(table, column string, ids []uuid.UUID) {
		for _, id := range ids {
			_, err := db.Exec(ctx,
				fmt.Sprintf("INSERT INTO %s (coupon_id, %s) VALUES ($1, $2)", table, column), b.ID, id)
			require.NoError(t, err)
		}
	}
	link("coupon_categories", "category_id", b.CategoryIDs)
	link("coupon_products", "product_id", b.ProductIDs)
	link("coupon_brands", "brand_id", b.BrandIDs)

	return b.ID
}

func AddCartItem(t *testing.T, db DBLike, userID, variantID uuid.UUID, quantity int) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO cart_items (user_id, variant_id, quantity) VALUES ($1, $2, $3)",
		userID, variantID, quantity)
	require.NoError(t, err)
}

func CouponUsedCount(t *testing.T, db DBLike, couponID uuid.UUID) int {
	t.Helper()

	var used int
	err := db.QueryRow(context.Background(),
		"SELECT used_count FROM coupons WHERE id = $1", couponID).Scan(&used)
	require.NoError(t, err)
	return used
}

func CountRows(t *testing.T, db DBLike, query string, args ...any) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), query, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO brands (name) VALUES ('Unbranded')
		ON CONFLICT (name) DO NOTHING;
	`)
	return err
}

// every table in migrations/; children first so the list reads in FK order
var resetTables = []string{
	"idempotency_keys",
	"order_items",
	"orders",
	"cart_items",
	"coupon_brands",
	"coupon_products",
	"coupon_categories",
	"coupons",
	"pricing_slabs",
	"product_variants",
	"product_categories",
	"products",
	"categories",
	"brands",
}

// ResetDB empties the catalog, coupons, carts and orders, then reseeds
// reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(resetTables, ", ")+" CASCADE"); err != nil {
		return fmt.Errorf("reset tables: %w", err)
	}
	return SeedReferenceData(pool)
}
