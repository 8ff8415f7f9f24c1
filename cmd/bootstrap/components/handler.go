package components

import (
	"storefront-pricing/internal/handler"
	"storefront-pricing/internal/handler/api"
	"storefront-pricing/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCouponHandler,
		api.NewPricingHandler,
		api.NewCheckoutHandler,
		middleware.NewAuthMiddleware,
		func(coupon *api.CouponHandler, pricing *api.PricingHandler, checkout *api.CheckoutHandler) handler.Handlers {
			return handler.Handlers{Coupon: coupon, Pricing: pricing, Checkout: checkout}
		},
	),
	fx.Invoke(handler.NewRouter),
)
