//go:build unit

package pricing_test

import (
	"testing"

	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(price string, qty int, productID uuid.UUID, brandID *uuid.UUID, categoryIDs ...uuid.UUID) pricing.LineItem {
	return pricing.LineItem{
		VariantID:   uuid.New(),
		ProductID:   productID,
		BrandID:     brandID,
		CategoryIDs: categoryIDs,
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func TestCouponTargetMatcher(t *testing.T) {
	matcher := pricing.CouponTargetMatcher{}
	c1, c2 := uuid.New(), uuid.New()
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	b1 := uuid.New()

	items := []pricing.LineItem{
		line("100", 2, p1, nil, c1),
		line("50", 1, p2, &b1, c2),
		line("30", 3, p3, nil),
	}

	tests := []struct {
		name        string
		rule        coupon.TargetRule
		wantMatched string
		wantCount   int
		wantErr     error
	}{
		{name: "対象なしはカート全体", rule: coupon.AllCart{}, wantMatched: "340", wantCount: 3},
		{name: "カテゴリ一致", rule: coupon.ByCategory{IDs: coupon.NewIDSet(c1)}, wantMatched: "200", wantCount: 1},
		{name: "商品一致", rule: coupon.ByProduct{IDs: coupon.NewIDSet(p3)}, wantMatched: "90", wantCount: 1},
		{name: "ブランド一致", rule: coupon.ByBrand{IDs: coupon.NewIDSet(b1)}, wantMatched: "50", wantCount: 1},
		{
			name:        "組み合わせはいずれかに一致",
			rule:        coupon.Combined{Categories: coupon.NewIDSet(c1), Products: coupon.NewIDSet(p3), Brands: coupon.NewIDSet()},
			wantMatched: "290",
			wantCount:   2,
		},
		{
			name:    "一致なしは拒否",
			rule:    coupon.ByCategory{IDs: coupon.NewIDSet(uuid.New())},
			wantErr: pricing.ErrNoApplicableItems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matcher.Match(tt.rule, items)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatched, got.MatchedSubtotal.String())
			assert.Equal(t, tt.wantCount, got.MatchedCount)
			assert.Equal(t, "340", got.FullCartSubtotal.String())
		})
	}

	t.Run("カテゴリ対象はブランドに関係なく一致", func(t *testing.T) {
		other := uuid.New()
		got, err := matcher.Match(coupon.ByCategory{IDs: coupon.NewIDSet(c2)}, []pricing.LineItem{line("50", 1, p2, &other, c2)})
		require.NoError(t, err)
		assert.Equal(t, 1, got.MatchedCount)
	})

	t.Run("C1対象でC2のみのカートは拒否", func(t *testing.T) {
		_, err := matcher.Match(coupon.ByCategory{IDs: coupon.NewIDSet(c1)}, []pricing.LineItem{line("50", 1, p2, nil, c2)})
		require.ErrorIs(t, err, pricing.ErrNoApplicableItems)
	})
}
