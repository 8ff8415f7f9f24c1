package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"storefront-pricing/internal/pkg/config"
	"storefront-pricing/internal/pkg/errs"
	"storefront-pricing/internal/usecase/shared"

	"github.com/IBM/sarama"
)

type envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Producer publishes domain events to a single topic. Messages are keyed so
// events for the same order or coupon land on the same partition.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

func NewProducer(cfg config.KafkaConfig, logger *slog.Logger) (*Producer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.ClientID
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 3
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Idempotent = true
	saramaCfg.Net.MaxOpenRequests = 1

	p, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create kafka producer")
	}
	return newProducer(p, cfg.Topic, logger), nil
}

func newProducer(p sarama.SyncProducer, topic string, logger *slog.Logger) *Producer {
	return &Producer{producer: p, topic: topic, logger: logger}
}

func (p *Producer) Publish(ctx context.Context, events ...shared.Event) error {
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.publish(ev); err != nil {
			return err
		}
	}
	return nil
}

func (p *Producer) publish(ev shared.Event) error {
	body, err := json.Marshal(envelope{Type: ev.Type, OccurredAt: ev.OccurredAt.UTC(), Data: ev.Payload})
	if err != nil {
		return errs.Wrap(err, fmt.Sprintf("failed to encode event %s", ev.Type))
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.Key),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(ev.Type)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return errs.Wrap(err, fmt.Sprintf("failed to send event %s", ev.Type))
	}

	p.logger.Debug("event published",
		"type", ev.Type,
		"key", ev.Key,
		"partition", partition,
		"offset", offset)
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

// NopPublisher drops events. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...shared.Event) error { return nil }
