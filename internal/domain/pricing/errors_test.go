//go:build unit

package pricing_test

import (
	"fmt"
	"testing"

	"storefront-pricing/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := fmt.Errorf("apply coupon: %w", pricing.Reject(pricing.KindMinOrderNotMet, "minimum order amount of ₹500.00 is required"))

	assert.ErrorIs(t, err, pricing.ErrMinOrderNotMet)
	assert.NotErrorIs(t, err, pricing.ErrEmptyCart)

	kind, ok := pricing.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, pricing.KindMinOrderNotMet, kind)

	_, ok = pricing.KindOf(fmt.Errorf("boom"))
	assert.False(t, ok)

	assert.Equal(t, "EMPTY_CART", pricing.ErrEmptyCart.Error())
}
