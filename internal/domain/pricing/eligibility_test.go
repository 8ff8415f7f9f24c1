//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"storefront-pricing/internal/domain/pricing"
	"storefront-pricing/internal/pkg/clock"
	"storefront-pricing/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponEligibilityChecker(t *testing.T) {
	checker := pricing.CouponEligibilityChecker{EnforceSchedule: true, Clock: clock.NewMockClock(now)}
	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		build   func(*builder.CouponBuilder)
		amount  string
		wantErr error
	}{
		{name: "有効", build: func(b *builder.CouponBuilder) {}, amount: "100"},
		{name: "無効化済み", build: func(b *builder.CouponBuilder) { b.AsInactive() }, amount: "100", wantErr: pricing.ErrInvalidCouponCode},
		{name: "開始前", build: func(b *builder.CouponBuilder) { b.WithWindow(&tomorrow, nil) }, amount: "100", wantErr: pricing.ErrCouponNotStarted},
		{name: "期限切れ", build: func(b *builder.CouponBuilder) { b.WithWindow(&past, &yesterday) }, amount: "100", wantErr: pricing.ErrCouponExpired},
		{name: "利用上限到達", build: func(b *builder.CouponBuilder) { b.WithUsage(1, 1) }, amount: "100", wantErr: pricing.ErrUsageLimitExceeded},
		{name: "利用上限未満", build: func(b *builder.CouponBuilder) { b.WithUsage(2, 1) }, amount: "100"},
		{name: "最低注文額未満", build: func(b *builder.CouponBuilder) { b.WithMinOrder("500") }, amount: "499.99", wantErr: pricing.ErrMinOrderNotMet},
		{name: "最低注文額ちょうど", build: func(b *builder.CouponBuilder) { b.WithMinOrder("500") }, amount: "500"},
		{
			name:    "無効化が最優先",
			build:   func(b *builder.CouponBuilder) { b.AsInactive().WithUsage(1, 1).WithMinOrder("1000") },
			amount:  "1",
			wantErr: pricing.ErrInvalidCouponCode,
		},
		{
			name:    "利用上限は最低注文額より先",
			build:   func(b *builder.CouponBuilder) { b.WithUsage(1, 1).WithMinOrder("1000") },
			amount:  "1",
			wantErr: pricing.ErrUsageLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := builder.NewCouponBuilder().With(tt.build).BuildDomain()
			err := checker.Check(c, decimal.RequireFromString(tt.amount))
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("最低注文額のメッセージに金額を含む", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithMinOrder("500").BuildDomain()
		err := checker.Check(c, decimal.NewFromInt(100))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500.00")
	})

	t.Run("期間チェック無効時は期限切れでも通る", func(t *testing.T) {
		lenient := pricing.CouponEligibilityChecker{EnforceSchedule: false, Clock: clock.NewMockClock(now)}
		c := builder.NewCouponBuilder().WithWindow(&past, &yesterday).BuildDomain()
		assert.NoError(t, lenient.Check(c, decimal.NewFromInt(100)))
	})
}
