//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"

	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/readstore"
	"storefront-pricing/internal/usecase/shared"
	dbmock "storefront-pricing/tests/mock/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCartReadStore_FindByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("カートの行を順番通りに返す", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := dbmock.NewMockDBTX(ctrl)
		first, second := uuid.New(), uuid.New()

		mockDB.EXPECT().Query(ctx, gomock.Any(), userID).
			Return(newFakeRows([]any{first, int32(2)}, []any{second, int32(1)}), nil)

		got, err := readstore.NewCartReadStore(mockDB).FindByUser(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, []shared.CartItemSnapshot{
			{VariantID: first, Quantity: 2},
			{VariantID: second, Quantity: 1},
		}, got)
	})

	t.Run("空のカートは空で返す", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := dbmock.NewMockDBTX(ctrl)

		mockDB.EXPECT().Query(ctx, gomock.Any(), userID).Return(newFakeRows(), nil)

		got, err := readstore.NewCartReadStore(mockDB).FindByUser(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("行の読み込み中の失敗はDB障害", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := dbmock.NewMockDBTX(ctrl)
		rows := newFakeRows()
		rows.err = errors.New("connection reset")

		mockDB.EXPECT().Query(ctx, gomock.Any(), userID).Return(rows, nil)

		_, err := readstore.NewCartReadStore(mockDB).FindByUser(ctx, userID)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
