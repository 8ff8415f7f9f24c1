package httperr

import (
	"errors"
	"net/http"

	"storefront-pricing/internal/domain/pricing"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

type KindDetail struct {
	Kind string `json:"kind"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithPricingError renders business rejections with their kind and
// message. Anything else becomes an opaque 500.
func AbortWithPricingError(c *gin.Context, err error) {
	var pe *pricing.Error
	if !errors.As(err, &pe) {
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	msg := pe.Msg
	if msg == "" {
		msg = string(pe.Kind)
	}
	AbortWithError(c, StatusForKind(pe.Kind), err, msg, KindDetail{Kind: string(pe.Kind)})
}

func StatusForKind(kind pricing.Kind) int {
	switch kind {
	case pricing.KindInvalidCouponCode, pricing.KindUnknownVariant:
		return http.StatusNotFound
	case pricing.KindUsageLimitExceeded:
		return http.StatusConflict
	case pricing.KindEmptyCart,
		pricing.KindNoApplicableItems,
		pricing.KindMinOrderNotMet,
		pricing.KindInvalidQuantity,
		pricing.KindCouponExpired,
		pricing.KindCouponNotStarted,
		pricing.KindInvalidPricing:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
