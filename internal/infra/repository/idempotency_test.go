//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/repository"
	dbmock "storefront-pricing/tests/mock/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Idempotency Tests
// =============================================================================

func TestIdempotencyRepository_Claim(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := now.Add(24 * time.Hour)

	testCases := []struct {
		name        string
		tag         pgconn.CommandTag
		execErr     error
		wantClaimed bool
		expectKind  infra.RepositoryErrorKind
	}{
		{name: "success: new key inserted", tag: pgconn.NewCommandTag("INSERT 0 1"), wantClaimed: true},
		{name: "success: live key is not claimed again", tag: pgconn.NewCommandTag("INSERT 0 0"), wantClaimed: false},
		{name: "error: database error occurs", execErr: errors.New("connection reset"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			key, userID := uuid.New(), uuid.New()
			mockDB := dbmock.NewMockDBTX(ctrl)
			mockDB.EXPECT().
				Exec(ctx, gomock.Any(), key, userID, "POST /api/checkout", "hash", now, expiresAt).
				Return(tc.tag, tc.execErr)

			claimed, err := repository.NewIdempotencyRepository().
				Claim(ctx, mockDB, key, userID, "POST /api/checkout", "hash", now, expiresAt)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantClaimed, claimed)
		})
	}
}

func TestIdempotencyRepository_Complete(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		tag        pgconn.CommandTag
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: response stored", tag: pgconn.NewCommandTag("UPDATE 1")},
		{name: "error: key missing", tag: pgconn.NewCommandTag("UPDATE 0"), expectKind: infra.KindNotFound},
		{name: "error: order does not exist", execErr: &pgconn.PgError{Code: "23503"}, expectKind: infra.KindForeignKeyViolated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			key, userID, orderID := uuid.New(), uuid.New(), uuid.New()
			body := []byte(`{"OrderID":"x"}`)
			mockDB := dbmock.NewMockDBTX(ctrl)
			mockDB.EXPECT().Exec(ctx, gomock.Any(), key, userID, orderID, body).Return(tc.tag, tc.execErr)

			err := repository.NewIdempotencyRepository().Complete(ctx, mockDB, key, userID, orderID, body)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				return
			}
			require.NoError(t, err)
		})
	}
}
