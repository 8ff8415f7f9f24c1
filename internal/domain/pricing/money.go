package pricing

import "github.com/shopspring/decimal"

var (
	hundred         = decimal.NewFromInt(100)
	maxPercentRate  = decimal.NewFromInt(90)
	maxDiscountRate = decimal.RequireFromString("0.9")
)

// Round applies the display rounding: 2 places, half away from zero.
// It is only called where a value leaves the engine.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
