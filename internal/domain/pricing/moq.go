package pricing

import "storefront-pricing/internal/domain/catalog"

type MOQGate struct{}

func (MOQGate) Minimum(v catalog.Variant) int {
	if v.MOQ != nil && v.MOQ.IsActive && v.MOQ.MinQuantity > 1 {
		return v.MOQ.MinQuantity
	}
	return 1
}

func (g MOQGate) IsValid(v catalog.Variant, quantity int) bool {
	return g.Validate(v, quantity) == nil
}

func (g MOQGate) Validate(v catalog.Variant, quantity int) error {
	if minimum := g.Minimum(v); quantity < minimum {
		return Reject(KindInvalidQuantity, "minimum order quantity is %d", minimum)
	}
	if v.HasStockLimit() && quantity > v.Stock {
		return Reject(KindInvalidQuantity, "only %d units available", v.Stock)
	}
	return nil
}

// Clamp resolves an unspecified (zero) quantity to the effective minimum.
// Any other quantity is returned as is or rejected; it is never raised.
func (g MOQGate) Clamp(v catalog.Variant, requested int) (int, error) {
	quantity := requested
	if quantity == 0 {
		quantity = g.Minimum(v)
	}
	if err := g.Validate(v, quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}
