package components

import (
	"storefront-pricing/internal/infra/readstore"
	"storefront-pricing/internal/infra/uow"
	"storefront-pricing/internal/usecase/queries"
	"storefront-pricing/internal/usecase/shared"

	"go.uber.org/fx"
)

// Pricing reads and checkout writes go through the unit of work, which builds
// its own stores per transaction. Only order history reads the pool directly.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
	),
)
