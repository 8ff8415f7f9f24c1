//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"storefront-pricing/internal/domain/pricing"
	"storefront-pricing/internal/handler/api"
	resdto "storefront-pricing/internal/handler/dto/response"
	"storefront-pricing/internal/pkg/errs"
	"storefront-pricing/internal/usecase/commands"
	"storefront-pricing/internal/usecase/queries"
	"storefront-pricing/tests/common/httptest"
	commandsmock "storefront-pricing/tests/mock/commands"
	queriesmock "storefront-pricing/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	mockOrders   *queriesmock.MockOrderQueries
	handler      *api.CheckoutHandler
	userID       uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockOrders = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands, s.mockOrders)
	s.userID = uuid.New()

	s.router.POST("/checkout", mockAuth(s.userID), s.handler.Checkout)
	s.router.GET("/orders", mockAuth(s.userID), s.handler.ListOrders)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

// ================================================================================
// TestCheckout
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	url := "/checkout"
	orderID := uuid.New()
	result := &commands.PlaceOrderResult{
		OrderID: orderID,
		Totals: pricing.CartTotals{
			Subtotal:     decimal.NewFromInt(200),
			Discount:     decimal.NewFromInt(20),
			ShippingCost: decimal.NewFromInt(50),
			Surcharge:    decimal.NewFromInt(40),
			Total:        decimal.NewFromInt(270),
		},
	}

	s.Run("success: returns 201 with order id", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), commands.PlaceOrderInput{
			UserID:        s.userID,
			CouponCode:    "SAVE10",
			PaymentMethod: pricing.PaymentCOD,
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"couponCode": "SAVE10", "paymentMethod": "cod"}, "bearer-token")

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(orderID.String(), body.OrderID)
		s.Equal("270.00", body.Totals.Total)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/orders/" + orderID.String()})
	})

	s.Run("success: forwards the Idempotency-Key and flags replays", func() {
		key := uuid.New()
		replayed := *result
		replayed.Replayed = true
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), commands.PlaceOrderInput{
			UserID:         s.userID,
			PaymentMethod:  pricing.PaymentPrepaid,
			IdempotencyKey: &key,
		}).Return(&replayed, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url,
			map[string]any{"paymentMethod": "prepaid"}, map[string]string{"Idempotency-Key": key.String()}, "bearer-token")

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(orderID.String(), body.OrderID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("error: 400 on malformed Idempotency-Key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url,
			map[string]any{"paymentMethod": "prepaid"}, map[string]string{"Idempotency-Key": "not-a-uuid"}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid Idempotency-Key header")
	})

	s.Run("error: 409 when the Idempotency-Key was used for another request", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrIdempotencyKeyReused).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url,
			map[string]any{"paymentMethod": "cod"}, map[string]string{"Idempotency-Key": uuid.NewString()}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Idempotency-Key was already used")
	})

	s.Run("error: 409 when the cart changed while the order was placed", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrapf(commands.ErrCartChanged, "priced %d lines, cleared %d", 2, 0)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"paymentMethod": "prepaid"}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Cart changed during checkout")
	})

	s.Run("error: 400 on validation errors", func() {
		cases := []struct {
			name string
			body map[string]any
		}{
			{name: "missing paymentMethod", body: map[string]any{"couponCode": "SAVE10"}},
			{name: "unknown paymentMethod", body: map[string]any{"paymentMethod": "card"}},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, tc.body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 409 when the coupon was used up concurrently", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			Return(nil, pricing.Reject(pricing.KindUsageLimitExceeded, "coupon SAVE10 has reached its usage limit")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"couponCode": "SAVE10", "paymentMethod": "prepaid"}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "usage limit")
	})

	s.Run("error: 500 when persisting the order fails", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("insert failed"), commands.ErrOrderCreationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"paymentMethod": "prepaid"}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Order creation failed")
	})
}

// ================================================================================
// TestListOrders
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestListOrders() {
	code := "SAVE10"
	items := []*queries.OrderSummary{{
		ID:            uuid.New(),
		CouponCode:    &code,
		PaymentMethod: "cod",
		Subtotal:      decimal.NewFromInt(200),
		Discount:      decimal.NewFromInt(20),
		ShippingCost:  decimal.NewFromInt(50),
		Surcharge:     decimal.NewFromInt(40),
		Total:         decimal.NewFromInt(270),
		ItemCount:     1,
		CreatedAt:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}

	s.Run("success: returns page and next cursor", func() {
		next := &queries.Cursor{After: "next-page"}
		s.mockOrders.EXPECT().ListByUser(gomock.Any(), s.userID, (*queries.Cursor)(nil), 10).
			Return(items, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=10", nil, "bearer-token")

		var body resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Orders, 1)
		s.Equal("270.00", body.Orders[0].Total)
		s.Equal("SAVE10", *body.Orders[0].CouponCode)
		s.Require().NotNil(body.NextCursor)
		s.Equal("next-page", *body.NextCursor)
	})

	s.Run("success: forwards the cursor", func() {
		s.mockOrders.EXPECT().ListByUser(gomock.Any(), s.userID, &queries.Cursor{After: "abc"}, 0).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?after=abc", nil, "bearer-token")

		var body resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Orders)
		s.Nil(body.NextCursor)
	})

	s.Run("error: 400 on invalid cursor", func() {
		s.mockOrders.EXPECT().ListByUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?after=zzz", nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})

	s.Run("error: 400 on limit over 100", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=101", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}
