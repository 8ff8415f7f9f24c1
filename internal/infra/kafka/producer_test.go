//go:build unit

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront-pricing/internal/usecase/shared"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProducer_Publish(t *testing.T) {
	occurredAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("正常系: イベントがエンベロープ付きで送信される", func(t *testing.T) {
		mp := mocks.NewSyncProducer(t, sarama.NewConfig())
		mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var got map[string]any
			if err := json.Unmarshal(val, &got); err != nil {
				return err
			}
			if got["type"] != shared.EventOrderPlaced {
				return errors.New("unexpected event type")
			}
			data, ok := got["data"].(map[string]any)
			if !ok || data["total"] != "549.00" {
				return errors.New("unexpected payload")
			}
			return nil
		})

		p := newProducer(mp, "pricing.events", discardLogger())
		err := p.Publish(context.Background(), shared.Event{
			Type:       shared.EventOrderPlaced,
			Key:        "order-1",
			OccurredAt: occurredAt,
			Payload:    map[string]string{"total": "549.00"},
		})

		require.NoError(t, err)
		require.NoError(t, mp.Close())
	})

	t.Run("正常系: 複数イベントを順に送信", func(t *testing.T) {
		mp := mocks.NewSyncProducer(t, sarama.NewConfig())
		mp.ExpectSendMessageAndSucceed()
		mp.ExpectSendMessageAndSucceed()

		p := newProducer(mp, "pricing.events", discardLogger())
		err := p.Publish(context.Background(),
			shared.Event{Type: shared.EventOrderPlaced, Key: "order-1", OccurredAt: occurredAt},
			shared.Event{Type: shared.EventCouponRedeemed, Key: "coupon-1", OccurredAt: occurredAt},
		)

		require.NoError(t, err)
		require.NoError(t, mp.Close())
	})

	t.Run("異常系: ブローカー不在でエラー", func(t *testing.T) {
		mp := mocks.NewSyncProducer(t, sarama.NewConfig())
		mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

		p := newProducer(mp, "pricing.events", discardLogger())
		err := p.Publish(context.Background(), shared.Event{Type: shared.EventOrderPlaced, Key: "order-1"})

		require.Error(t, err)
		assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
		require.NoError(t, mp.Close())
	})

	t.Run("異常系: キャンセル済みコンテキストでは送信しない", func(t *testing.T) {
		mp := mocks.NewSyncProducer(t, sarama.NewConfig())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := newProducer(mp, "pricing.events", discardLogger())
		err := p.Publish(ctx, shared.Event{Type: shared.EventOrderPlaced})

		assert.ErrorIs(t, err, context.Canceled)
		require.NoError(t, mp.Close())
	})
}

func TestNopPublisher(t *testing.T) {
	err := NopPublisher{}.Publish(context.Background(), shared.Event{Type: shared.EventOrderPlaced})
	assert.NoError(t, err)
}
