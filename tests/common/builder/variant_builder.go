//go:build unit || e2e

package builder

import (
	"time"

	"storefront-pricing/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VariantBuilder struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	BrandID     *uuid.UUID
	CategoryIDs []uuid.UUID
	BasePrice   decimal.Decimal
	SalePrice   *decimal.Decimal
	MOQ         *catalog.MOQ
	Slabs       []catalog.Slab
	FlashSale   *catalog.FlashSale
	Stock       int
}

func NewVariantBuilder() *VariantBuilder {
	return &VariantBuilder{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		BasePrice: decimal.NewFromInt(120),
		Stock:     100,
	}
}

func (b *VariantBuilder) With(mutate func(*VariantBuilder)) *VariantBuilder {
	mutate(b)
	return b
}

func (b *VariantBuilder) WithBasePrice(price string) *VariantBuilder {
	b.BasePrice = decimal.RequireFromString(price)
	return b
}

func (b *VariantBuilder) WithSalePrice(price string) *VariantBuilder {
	p := decimal.RequireFromString(price)
	b.SalePrice = &p
	return b
}

func (b *VariantBuilder) WithSlab(minQty int, maxQty *int, price string) *VariantBuilder {
	b.Slabs = append(b.Slabs, catalog.Slab{MinQty: minQty, MaxQty: maxQty, Price: decimal.RequireFromString(price)})
	return b
}

func (b *VariantBuilder) WithMOQ(minQuantity int) *VariantBuilder {
	b.MOQ = &catalog.MOQ{IsActive: true, MinQuantity: minQuantity}
	return b
}

func (b *VariantBuilder) WithFlashSale(price string, startsAt, endsAt time.Time) *VariantBuilder {
	b.FlashSale = &catalog.FlashSale{Price: decimal.RequireFromString(price), StartsAt: startsAt, EndsAt: endsAt}
	return b
}

func (b *VariantBuilder) WithStock(stock int) *VariantBuilder {
	b.Stock = stock
	return b
}

func (b *VariantBuilder) WithProduct(productID uuid.UUID) *VariantBuilder {
	b.ProductID = productID
	return b
}

func (b *VariantBuilder) WithBrand(brandID uuid.UUID) *VariantBuilder {
	b.BrandID = &brandID
	return b
}

func (b *VariantBuilder) WithCategories(ids ...uuid.UUID) *VariantBuilder {
	b.CategoryIDs = ids
	return b
}

// Build methods
func (b *VariantBuilder) BuildDomain() catalog.Variant {
	return catalog.Variant{
		ID:          b.ID,
		ProductID:   b.ProductID,
		BrandID:     b.BrandID,
		CategoryIDs: b.CategoryIDs,
		BasePrice:   b.BasePrice,
		SalePrice:   b.SalePrice,
		MOQ:         b.MOQ,
		Slabs:       b.Slabs,
		FlashSale:   b.FlashSale,
		Stock:       b.Stock,
	}
}
