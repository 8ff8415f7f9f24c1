package coupon

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountType    = errors.New("discount type must be PERCENTAGE or FIXED_AMOUNT")
	ErrInvalidDiscountValue   = errors.New("discount value must be greater than zero")
	ErrInvalidDiscountPercent = errors.New("percentage discount must not exceed 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

type Code string

// NewCouponCode normalises user input. Codes are stored upper-cased, so lookups
// are case-insensitive.
func NewCouponCode(code string) (Code, error) {
	code = NormalizeCode(code)
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func NormalizeCode(code string) string {
	return strings.TrimSpace(strings.ToUpper(code))
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountPercentage, DiscountFixedAmount:
		return true
	default:
		return false
	}
}

func (t DiscountType) String() string {
	return string(t)
}

type Discount struct {
	kind  DiscountType
	value decimal.Decimal
}

// NewDiscount applies the admin-side validation rules. Rows loaded from storage
// go through ReconstructDiscount instead, since older rows may predate them.
func NewDiscount(kind DiscountType, value decimal.Decimal) (Discount, error) {
	if !kind.IsValid() {
		return Discount{}, ErrInvalidDiscountType
	}
	if !value.IsPositive() {
		return Discount{}, ErrInvalidDiscountValue
	}
	if kind == DiscountPercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{kind: kind, value: value}, nil
}

func ReconstructDiscount(kind DiscountType, value decimal.Decimal) Discount {
	return Discount{kind: kind, value: value}
}

func (d Discount) Type() DiscountType     { return d.kind }
func (d Discount) Value() decimal.Decimal { return d.value }

func (d Discount) IsPercentage() bool {
	return d.kind == DiscountPercentage
}

func (d Discount) IsFixed() bool {
	return d.kind == DiscountFixedAmount
}
