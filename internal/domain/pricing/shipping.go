package pricing

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentPrepaid PaymentMethod = "prepaid"
	PaymentCOD     PaymentMethod = "cod"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentPrepaid || m == PaymentCOD
}

// ShippingPolicy charges a flat rate unless the discounted subtotal reaches
// FreeThreshold. A zero threshold disables free shipping.
type ShippingPolicy struct {
	FlatRate      decimal.Decimal
	FreeThreshold decimal.Decimal
}

func (p ShippingPolicy) Cost(discountedSubtotal decimal.Decimal) decimal.Decimal {
	if p.FreeThreshold.IsPositive() && discountedSubtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.FlatRate
}

type Surcharges struct {
	CODFee decimal.Decimal
}

func (s Surcharges) For(method PaymentMethod) decimal.Decimal {
	if method == PaymentCOD {
		return s.CODFee
	}
	return decimal.Zero
}
