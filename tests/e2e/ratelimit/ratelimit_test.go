//go:build e2e

package ratelimit_test

import (
	"net/http"
	"testing"
	"time"

	"storefront-pricing/internal/handler/dto/request"
	"storefront-pricing/internal/pkg/config"
	"storefront-pricing/tests/common/builder"
	"storefront-pricing/tests/common/dbtest"
	"storefront-pricing/tests/common/httptest"
	"storefront-pricing/tests/e2e"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const verifyURL = "/api/coupons/verify"

// RateLimitSuite runs the verify endpoint against an in-memory redis with a
// limit of 2 requests per minute.
type RateLimitSuite struct {
	e2e.SharedSuite
	redis *miniredis.Miniredis
}

func (s *RateLimitSuite) SetupSuite() {
	s.redis = miniredis.RunT(s.T())
	s.ConfigOverrides = append(s.ConfigOverrides, func(cfg *config.Config) {
		cfg.Redis = config.RedisConfig{Addr: s.redis.Addr()}
		cfg.RateLimit = config.RateLimitConfig{Enabled: true, Limit: 2, Window: time.Minute}
	})
	s.SharedSuite.SetupSuite()
}

func (s *RateLimitSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	s.redis.FlushAll()
}

func TestRateLimitSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RateLimitSuite))
}

func (s *RateLimitSuite) TestVerifyRateLimit() {
	body := request.VerifyCouponRequest{Code: "SAVE10", CartTotal: decimal.NewFromInt(600)}

	s.Run("Normal case: requests within the window are allowed", func() {
		t := s.T()
		dbtest.CreateCoupon(t, s.DB, builder.NewCouponBuilder().WithCode("SAVE10"))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, body, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.AssertHeaders(t, w, map[string]string{
			"X-RateLimit-Limit":     "2",
			"X-RateLimit-Remaining": "1",
		})
	})

	s.Run("Error case: third request in the window is rejected", func() {
		t := s.T()
		dbtest.CreateCoupon(t, s.DB, builder.NewCouponBuilder().WithCode("SAVE10"))

		for range 2 {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, body, "")
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, body, "")
		httptest.AssertErrorResponse(t, w, http.StatusTooManyRequests, "Too many requests")
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		httptest.AssertHeaders(t, w, map[string]string{"X-RateLimit-Remaining": "0"})
	})

	s.Run("Normal case: counter resets after the window", func() {
		t := s.T()
		dbtest.CreateCoupon(t, s.DB, builder.NewCouponBuilder().WithCode("SAVE10"))

		for range 3 {
			httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, body, "")
		}
		s.redis.FastForward(time.Minute + time.Second)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, body, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Normal case: redis outage fails open", func() {
		t := s.T()
		dbtest.CreateCoupon(t, s.DB, builder.NewCouponBuilder().WithCode("SAVE10"))

		s.redis.SetError("LOADING redis is loading")
		defer s.redis.SetError("")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyURL, body, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}
