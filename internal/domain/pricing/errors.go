package pricing

import (
	"errors"
	"fmt"
)

// Kind classifies an expected business-rule rejection.
type Kind string

const (
	KindInvalidCouponCode  Kind = "INVALID_COUPON_CODE"
	KindNoApplicableItems  Kind = "NO_APPLICABLE_ITEMS"
	KindMinOrderNotMet     Kind = "MIN_ORDER_NOT_MET"
	KindUsageLimitExceeded Kind = "USAGE_LIMIT_EXCEEDED"
	KindEmptyCart          Kind = "EMPTY_CART"
	KindInvalidQuantity    Kind = "INVALID_QUANTITY"
	KindCouponExpired      Kind = "COUPON_EXPIRED"
	KindCouponNotStarted   Kind = "COUPON_NOT_STARTED"
	KindUnknownVariant     Kind = "UNKNOWN_VARIANT"
	KindInvalidPricing     Kind = "INVALID_PRICING"
)

// Error is returned for every rejection the engine makes. Two errors are
// equal under errors.Is when their kinds match, so the Err* values below work
// as sentinels regardless of the message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return e.Msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidCouponCode  = &Error{Kind: KindInvalidCouponCode}
	ErrNoApplicableItems  = &Error{Kind: KindNoApplicableItems}
	ErrMinOrderNotMet     = &Error{Kind: KindMinOrderNotMet}
	ErrUsageLimitExceeded = &Error{Kind: KindUsageLimitExceeded}
	ErrEmptyCart          = &Error{Kind: KindEmptyCart}
	ErrInvalidQuantity    = &Error{Kind: KindInvalidQuantity}
	ErrCouponExpired      = &Error{Kind: KindCouponExpired}
	ErrCouponNotStarted   = &Error{Kind: KindCouponNotStarted}
	ErrUnknownVariant     = &Error{Kind: KindUnknownVariant}
	ErrInvalidPricing     = &Error{Kind: KindInvalidPricing}
)

func Reject(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the rejection kind from anywhere in an error chain.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}
