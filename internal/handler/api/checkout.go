package api

import (
	"net/http"

	reqdto "storefront-pricing/internal/handler/dto/request"
	resdto "storefront-pricing/internal/handler/dto/response"
	"storefront-pricing/internal/handler/httperr"
	"storefront-pricing/internal/handler/middleware"
	"storefront-pricing/internal/pkg/errs"
	"storefront-pricing/internal/usecase/commands"
	"storefront-pricing/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

var errInvalidIdempotencyKey = errs.New("invalid idempotency key format")

type CheckoutHandler struct {
	cmds   commands.CheckoutCommands
	orders queries.OrderQueries
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, orders queries.OrderQueries) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, orders: orders}
}

// @Summary Checkout
// @Description Place an order for the caller's saved cart. The coupon is redeemed in the same transaction.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "UUID; retries with the same key and body return the original order"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, middleware.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	in := req.ToInput(userID)
	in.IdempotencyKey = idempotencyKey

	result, err := h.cmds.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrIdempotencyKeyReused):
			httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency-Key was already used with a different request", nil)
		case errs.Is(err, commands.ErrCartChanged):
			httperr.AbortWithError(c, http.StatusConflict, err, "Cart changed during checkout", nil)
		case errs.Is(err, commands.ErrOrderCreationFailed), errs.Is(err, commands.ErrIdempotencyCheckFailed):
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Order creation failed", nil)
		default:
			httperr.AbortWithPricingError(c, err)
		}
		return
	}

	if result.Replayed {
		c.Header("Idempotent-Replayed", "true")
	}
	c.Header("Location", "/api/orders/"+result.OrderID.String())
	c.JSON(http.StatusCreated, resdto.FromPlaceOrderResult(result))
}

// The header is optional; nil means the request is not deduplicated.
func getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader(idempotencyKeyHeader)
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Mark(err, errInvalidIdempotencyKey)
	}
	return &key, nil
}

// @Summary List orders
// @Description The caller's orders, newest first, keyset paginated
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param after query string false "Cursor from the previous page"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/orders [get]
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, middleware.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	var query reqdto.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	items, next, err := h.orders.ListByUser(c.Request.Context(), userID, query.Cursor(), query.Limit)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderList(items, next))
}
