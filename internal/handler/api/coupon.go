package api

import (
	"net/http"

	reqdto "storefront-pricing/internal/handler/dto/request"
	resdto "storefront-pricing/internal/handler/dto/response"
	"storefront-pricing/internal/handler/httperr"
	"storefront-pricing/internal/handler/middleware"
	"storefront-pricing/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	q queries.PricingQueries
}

func NewCouponHandler(q queries.PricingQueries) *CouponHandler {
	return &CouponHandler{q: q}
}

// @Summary Verify coupon
// @Description Preview a coupon against client-supplied cart lines. Without cartItems the whole cartTotal is discounted.
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyCouponRequest true "Verify coupon request"
// @Success 200 {object} resdto.VerifyCouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/coupons/verify [post]
func (h *CouponHandler) Verify(c *gin.Context) {
	var req reqdto.VerifyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	applied, err := h.q.VerifyCoupon(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVerifiedCoupon(applied))
}

// @Summary Apply coupon
// @Description Apply a coupon to the caller's saved cart, re-priced from the catalog
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApplyCouponRequest true "Apply coupon request"
// @Success 200 {object} resdto.ApplyCouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/coupons/apply [post]
func (h *CouponHandler) Apply(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, middleware.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.q.ApplyCoupon(c.Request.Context(), userID, req.Code)
	if err != nil {
		httperr.AbortWithPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromApplyCouponResult(result))
}
