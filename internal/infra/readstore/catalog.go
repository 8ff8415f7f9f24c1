package readstore

import (
	"context"

	"storefront-pricing/internal/domain/catalog"
	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/db"
	"storefront-pricing/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getVariantsByIDs = `
SELECT v.id, v.product_id, p.brand_id, v.base_price, v.sale_price, v.stock,
       v.moq_active, v.moq_min_quantity,
       v.flash_sale_price, v.flash_sale_starts_at, v.flash_sale_ends_at,
       ARRAY(
           SELECT pc.category_id::text FROM product_categories pc
           WHERE pc.product_id = v.product_id
           ORDER BY pc.category_id
       ) AS category_ids
FROM product_variants v
JOIN products p ON p.id = v.product_id
WHERE v.id = ANY($1::uuid[]) AND v.is_active AND p.is_active`

const getSlabsByVariantIDs = `
SELECT variant_id, min_qty, max_qty, price
FROM pricing_slabs
WHERE variant_id = ANY($1::uuid[])
ORDER BY variant_id, min_qty`

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

// FindVariants returns the active variants among ids with their slabs.
// Missing or inactive ids are simply absent from the result.
func (r *CatalogReadStore) FindVariants(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Variant, error) {
	variants := make(map[uuid.UUID]catalog.Variant, len(ids))
	if len(ids) == 0 {
		return variants, nil
	}

	rows, err := r.db.Query(ctx, getVariantsByIDs, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load variants", err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate variants", err)
	}
	rows.Close()

	if err := r.attachSlabs(ctx, ids, variants); err != nil {
		return nil, err
	}
	return variants, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVariant(row rowScanner) (catalog.Variant, error) {
	var (
		v           catalog.Variant
		brandID     pgtype.UUID
		basePrice   pgtype.Numeric
		salePrice   pgtype.Numeric
		stock       int32
		moqActive   bool
		moqMin      pgtype.Int4
		flashPrice  pgtype.Numeric
		flashStarts pgtype.Timestamptz
		flashEnds   pgtype.Timestamptz
		categoryIDs []string
	)
	err := row.Scan(&v.ID, &v.ProductID, &brandID, &basePrice, &salePrice, &stock,
		&moqActive, &moqMin, &flashPrice, &flashStarts, &flashEnds, &categoryIDs)
	if err != nil {
		return catalog.Variant{}, infra.WrapRepoErr("failed to scan variant", err)
	}

	v.BrandID = pgconv.UUIDPtrFromPgtype(brandID)
	v.Stock = int(stock)
	if v.BasePrice, err = pgconv.DecimalFromNumeric(basePrice); err != nil {
		return catalog.Variant{}, infra.WrapRepoErr("invalid variant base price", err)
	}
	if v.SalePrice, err = pgconv.DecimalPtrFromNumeric(salePrice); err != nil {
		return catalog.Variant{}, infra.WrapRepoErr("invalid variant sale price", err)
	}
	if v.CategoryIDs, err = pgconv.ParseUUIDs(categoryIDs); err != nil {
		return catalog.Variant{}, infra.WrapRepoErr("invalid product category id", err)
	}
	if moqMin.Valid {
		v.MOQ = &catalog.MOQ{IsActive: moqActive, MinQuantity: int(moqMin.Int32)}
	}
	if flashPrice.Valid && flashStarts.Valid && flashEnds.Valid {
		v.FlashSale = &catalog.FlashSale{
			Price:    pgconv.DecimalOrZero(flashPrice),
			StartsAt: flashStarts.Time,
			EndsAt:   flashEnds.Time,
		}
	}
	return v, nil
}

func (r *CatalogReadStore) attachSlabs(ctx context.Context, ids []uuid.UUID, variants map[uuid.UUID]catalog.Variant) error {
	rows, err := r.db.Query(ctx, getSlabsByVariantIDs, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to load pricing slabs", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			variantID uuid.UUID
			minQty    int32
			maxQty    pgtype.Int4
			price     pgtype.Numeric
		)
		if err := rows.Scan(&variantID, &minQty, &maxQty, &price); err != nil {
			return infra.WrapRepoErr("failed to scan pricing slab", err)
		}
		v, ok := variants[variantID]
		if !ok {
			continue
		}
		// A NULL price is kept as zero so the resolver rejects the slab if it matches.
		v.Slabs = append(v.Slabs, catalog.Slab{
			MinQty: int(minQty),
			MaxQty: pgconv.IntPtrFromPgtype(maxQty),
			Price:  pgconv.DecimalOrZero(price),
		})
		variants[variantID] = v
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate pricing slabs", err)
	}
	return nil
}
