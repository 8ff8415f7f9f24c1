package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is the purchasable SKU as the pricing engine sees it. Catalog admin
// flows own these rows; the engine only reads them.
type Variant struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	BrandID     *uuid.UUID
	CategoryIDs []uuid.UUID
	BasePrice   decimal.Decimal
	SalePrice   *decimal.Decimal
	MOQ         *MOQ
	Slabs       []Slab
	FlashSale   *FlashSale
	// Stock of 0 means the stock level is unknown and is not enforced.
	Stock int
}

// ReferencePrice is the price a buyer would pay without any tier applied.
func (v Variant) ReferencePrice() decimal.Decimal {
	if v.SalePrice != nil {
		return *v.SalePrice
	}
	return v.BasePrice
}

func (v Variant) HasStockLimit() bool {
	return v.Stock > 0
}

type MOQ struct {
	IsActive    bool
	MinQuantity int
}

// Slab is a quantity tier. MaxQty nil means the tier is open ended.
type Slab struct {
	MinQty int
	MaxQty *int
	Price  decimal.Decimal
}

func (s Slab) Covers(quantity int) bool {
	if quantity < s.MinQty {
		return false
	}
	return s.MaxQty == nil || quantity <= *s.MaxQty
}

type FlashSale struct {
	Price    decimal.Decimal
	StartsAt time.Time
	EndsAt   time.Time
}

func (f FlashSale) IsActiveAt(t time.Time) bool {
	return !t.Before(f.StartsAt) && t.Before(f.EndsAt)
}
