package bootstrap

import (
	"context"
	"log/slog"

	"storefront-pricing/internal/infra/kafka"
	"storefront-pricing/internal/pkg/config"
	"storefront-pricing/internal/usecase/shared"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	if !cfg.Kafka.Enabled {
		logger.Info("kafka disabled, events will be dropped")
		return kafka.NopPublisher{}, nil
	}

	producer, err := kafka.NewProducer(cfg.Kafka, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})
	logger.Info("kafka producer ready", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return producer, nil
}
