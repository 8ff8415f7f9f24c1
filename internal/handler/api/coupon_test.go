//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/domain/pricing"
	"storefront-pricing/internal/handler/api"
	resdto "storefront-pricing/internal/handler/dto/response"
	"storefront-pricing/internal/usecase/queries"
	"storefront-pricing/tests/common/httptest"
	"storefront-pricing/tests/common/testutil"
	queriesmock "storefront-pricing/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CouponHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockPricingQueries
	handler     *api.CouponHandler
	userID      uuid.UUID
}

func (s *CouponHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockPricingQueries(s.mockCtrl)
	s.handler = api.NewCouponHandler(s.mockQueries)
	s.userID = uuid.New()

	s.router.POST("/coupons/verify", s.handler.Verify)
	s.router.POST("/coupons/apply", mockAuth(s.userID), s.handler.Apply)
}

func (s *CouponHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCouponHandlerSuite(t *testing.T) {
	suite.Run(t, new(CouponHandlerTestSuite))
}

// Mock authentication middleware for testing
func mockAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", userID)
		c.Set("user_role", "customer")
		c.Next()
	}
}

func sampleAppliedCoupon() *pricing.AppliedCoupon {
	return &pricing.AppliedCoupon{
		CouponID:           uuid.New(),
		Code:               coupon.Code("SAVE10"),
		DiscountType:       coupon.DiscountPercentage,
		DiscountValue:      decimal.NewFromInt(10),
		DiscountAmount:     decimal.RequireFromString("20.5"),
		ApplicableSubtotal: decimal.NewFromInt(205),
		MatchedItems:       1,
		FinalAmount:        decimal.RequireFromString("334.5"),
	}
}

type testCaseCoupon struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestVerify
// ================================================================================

func (s *CouponHandlerTestSuite) TestVerify() {
	url := "/coupons/verify"
	reqBody := map[string]any{
		"code":      "SAVE10",
		"cartTotal": "355.00",
		"cartItems": []map[string]any{
			{
				"productId":        uuid.New().String(),
				"productVariantId": uuid.New().String(),
				"price":            "102.50",
				"quantity":         2,
				"categoryIds":      []string{uuid.New().String()},
			},
		},
	}

	s.Run("success: returns 200 with two-decimal money fields", func() {
		applied := sampleAppliedCoupon()
		s.mockQueries.EXPECT().VerifyCoupon(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in queries.VerifyCouponInput) (*pricing.AppliedCoupon, error) {
				s.Equal("SAVE10", in.Code)
				s.Require().Len(in.Items, 1)
				s.Equal("102.5", in.Items[0].Price.String())
				s.Equal(2, in.Items[0].Quantity)
				return applied, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.VerifyCouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Valid)
		s.Equal("SAVE10", body.Coupon.Code)
		s.Equal("PERCENTAGE", body.Coupon.DiscountType)
		s.Equal("10.00", body.Coupon.DiscountValue)
		s.Equal("20.50", body.Coupon.DiscountAmount)
		s.Equal("205.00", body.Coupon.ApplicableSubtotal)
		s.Equal("334.50", body.Coupon.FinalAmount)
	})

	s.Run("success: cartItems may be omitted", func() {
		s.mockQueries.EXPECT().VerifyCoupon(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in queries.VerifyCouponInput) (*pricing.AppliedCoupon, error) {
				s.Empty(in.Items)
				s.Equal("355", in.CartTotal.String())
				return sampleAppliedCoupon(), nil
			}).Times(1)

		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("cartItems", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseCoupon{
			{name: "missing field: code (required)", mutate: testutil.Field("code", nil), expectCode: http.StatusBadRequest},
			{name: "empty code", mutate: testutil.Field("code", ""), expectCode: http.StatusBadRequest},
			{name: "cartTotal is not a number", mutate: testutil.Field("cartTotal", "abc"), expectCode: http.StatusBadRequest},
			{name: "quantity 0", mutate: func(m map[string]any) {
				m["cartItems"].([]any)[0].(map[string]any)["quantity"] = 0
			}, expectCode: http.StatusBadRequest},
			{name: "invalid variant id", mutate: func(m map[string]any) {
				m["cartItems"].([]any)[0].(map[string]any)["productVariantId"] = "not-a-uuid"
			}, expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: business rejections map to status and kind", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{name: "unknown code", err: pricing.Reject(pricing.KindInvalidCouponCode, "coupon NOPE is not valid"), expectCode: http.StatusNotFound, expectMsg: "not valid"},
			{name: "min order not met", err: pricing.Reject(pricing.KindMinOrderNotMet, "minimum order amount of ₹500.00 is required for coupon SAVE10"), expectCode: http.StatusUnprocessableEntity, expectMsg: "₹500.00"},
			{name: "no applicable items", err: pricing.Reject(pricing.KindNoApplicableItems, "no cart items match coupon SAVE10"), expectCode: http.StatusUnprocessableEntity},
			{name: "usage limit", err: pricing.Reject(pricing.KindUsageLimitExceeded, "coupon SAVE10 has reached its usage limit"), expectCode: http.StatusConflict},
			{name: "unexpected failure", err: errors.New("connection reset"), expectCode: http.StatusInternalServerError, expectMsg: "Internal server error"},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().VerifyCoupon(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
				if kind, ok := pricing.KindOf(tc.err); ok {
					s.Contains(rec.Body.String(), `"kind":"`+string(kind)+`"`)
				}
			})
		}
	})
}

// ================================================================================
// TestApply
// ================================================================================

func (s *CouponHandlerTestSuite) TestApply() {
	url := "/coupons/apply"

	s.Run("success: applies coupon to the saved cart", func() {
		s.mockQueries.EXPECT().ApplyCoupon(gomock.Any(), s.userID, "save10").
			Return(&queries.ApplyCouponResult{Coupon: *sampleAppliedCoupon(), CartTotal: decimal.NewFromInt(355)}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "save10"}, "bearer-token")

		var body resdto.ApplyCouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Valid)
		s.Equal("355.00", body.CartTotal)
		s.Equal("20.50", body.Coupon.DiscountAmount)
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "SAVE10"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 without code", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 422 on empty cart", func() {
		s.mockQueries.EXPECT().ApplyCoupon(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, pricing.Reject(pricing.KindEmptyCart, "cart is empty")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "SAVE10"}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "cart is empty")
	})
}
