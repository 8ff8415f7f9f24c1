package api

import (
	"net/http"

	reqdto "storefront-pricing/internal/handler/dto/request"
	resdto "storefront-pricing/internal/handler/dto/response"
	"storefront-pricing/internal/handler/httperr"
	"storefront-pricing/internal/handler/middleware"
	"storefront-pricing/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PricingHandler struct {
	q queries.PricingQueries
}

func NewPricingHandler(q queries.PricingQueries) *PricingHandler {
	return &PricingHandler{q: q}
}

// @Summary Variant price
// @Description Unit price for a quantity, with bulk slab and flash sale applied. quantity=0 quotes the minimum order quantity.
// @Tags pricing
// @Produce json
// @Param id path string true "Variant ID"
// @Param quantity query int false "Quantity"
// @Success 200 {object} resdto.VariantPriceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/variants/{id}/price [get]
func (h *PricingHandler) VariantPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var query reqdto.VariantPriceQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid query", nil)
		return
	}

	quote, err := h.q.QuoteVariant(c.Request.Context(), id, query.Quantity)
	if err != nil {
		httperr.AbortWithPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVariantQuote(quote))
}

// @Summary Cart totals
// @Description Totals for the caller's saved cart with optional coupon and payment method
// @Tags pricing
// @Produce json
// @Security BearerAuth
// @Param coupon query string false "Coupon code"
// @Param paymentMethod query string false "prepaid or cod" Enums(prepaid, cod)
// @Success 200 {object} resdto.CartTotalsResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/cart/totals [get]
func (h *PricingHandler) CartTotals(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, middleware.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	var query reqdto.CartTotalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	totals, err := h.q.CartTotals(c.Request.Context(), query.ToInput(userID))
	if err != nil {
		httperr.AbortWithPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartTotals(totals))
}
