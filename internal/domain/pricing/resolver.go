package pricing

import (
	"slices"
	"time"

	"storefront-pricing/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

type PriceSource string

const (
	SourceSlab      PriceSource = "SLAB"
	SourceDefault   PriceSource = "DEFAULT"
	SourceFlashSale PriceSource = "FLASH_SALE"
)

type PriceQuote struct {
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Source        PriceSource
	MatchedSlab   *catalog.Slab
}

// IsDiscounted reports whether the buyer pays less than the reference price.
func (q PriceQuote) IsDiscounted() bool {
	return q.Price.LessThan(q.OriginalPrice)
}

type SlabPriceResolver struct{}

// Resolve returns the unit price for quantity. An active flash sale wins over
// every slab. Otherwise the slab with the highest MinQty that still covers the
// quantity wins, and with no covering slab the reference price applies.
func (SlabPriceResolver) Resolve(v catalog.Variant, quantity int, now time.Time) (PriceQuote, error) {
	original := v.ReferencePrice()
	if !original.IsPositive() {
		return PriceQuote{}, Reject(KindInvalidPricing, "variant %s has no valid price", v.ID)
	}

	if v.FlashSale != nil && v.FlashSale.IsActiveAt(now) {
		if !v.FlashSale.Price.IsPositive() {
			return PriceQuote{}, Reject(KindInvalidPricing, "variant %s has an invalid flash sale price", v.ID)
		}
		return PriceQuote{Price: v.FlashSale.Price, OriginalPrice: original, Source: SourceFlashSale}, nil
	}

	slabs := slices.Clone(v.Slabs)
	slices.SortStableFunc(slabs, func(a, b catalog.Slab) int {
		return b.MinQty - a.MinQty
	})

	for i := range slabs {
		slab := slabs[i]
		if !slab.Covers(quantity) {
			continue
		}
		if !slab.Price.IsPositive() {
			return PriceQuote{}, Reject(KindInvalidPricing, "pricing slab from %d units of variant %s has no price", slab.MinQty, v.ID)
		}
		return PriceQuote{Price: slab.Price, OriginalPrice: original, Source: SourceSlab, MatchedSlab: &slab}, nil
	}

	return PriceQuote{Price: original, OriginalPrice: original, Source: SourceDefault}, nil
}
