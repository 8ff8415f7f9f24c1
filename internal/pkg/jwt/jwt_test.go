//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"storefront-pricing/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	userID := uuid.New()

	t.Run("発行したトークンを検証できる", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, jwt.RoleCustomer)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, jwt.RoleCustomer, claims.Role)
	})

	t.Run("別の鍵で署名されたトークンは無効", func(t *testing.T) {
		token, err := jwt.NewService("other", time.Hour).GenerateToken(userID, jwt.RoleCustomer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("期限切れ", func(t *testing.T) {
		token, err := jwt.NewService("secret", -time.Minute).GenerateToken(userID, jwt.RoleCustomer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("発行者が一致しないトークンは無効", func(t *testing.T) {
		strict := jwt.NewService("secret", time.Hour, jwt.WithIssuer("storefront-session"))
		token, err := jwt.NewService("secret", time.Hour, jwt.WithIssuer("elsewhere")).GenerateToken(userID, jwt.RoleCustomer)
		require.NoError(t, err)

		_, err = strict.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("許容範囲内の時刻ずれは有効", func(t *testing.T) {
		lenient := jwt.NewService("secret", time.Hour, jwt.WithLeeway(2*time.Minute))
		token, err := jwt.NewService("secret", -time.Minute).GenerateToken(userID, jwt.RoleCustomer)
		require.NoError(t, err)

		_, err = lenient.ValidateToken(token)
		require.NoError(t, err)
	})

	t.Run("ロールのないトークンは無効", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("不正な文字列", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
