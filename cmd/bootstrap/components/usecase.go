package components

import (
	"storefront-pricing/internal/domain/pricing"
	"storefront-pricing/internal/pkg/clock"
	"storefront-pricing/internal/pkg/config"
	"storefront-pricing/internal/usecase/commands"
	"storefront-pricing/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPricingEngine,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPricingQueries,
		queries.NewOrderQueries,
	),
)

func NewPricingEngine(cfg config.Config, clk clock.Clock) *pricing.Engine {
	return pricing.NewEngine(pricing.Settings{
		EnforceCouponSchedule: cfg.Pricing.EnforceCouponSchedule,
		ShippingFlatRate:      cfg.Pricing.ShippingFlatRate,
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		CODFee:                cfg.Pricing.CODFee,
		MinimumCharge:         cfg.Pricing.MinimumCharge,
	}, clk)
}
