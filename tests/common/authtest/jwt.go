//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"storefront-pricing/internal/pkg/config"
	"storefront-pricing/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the session service does for the
// configured secret and issuer.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := h.service(h.cfg.Duration).GenerateToken(userID, jwt.RoleCustomer)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := h.service(-time.Minute).GenerateToken(userID, jwt.RoleCustomer)
	require.NoError(t, err)
	return token
}

// CreateForeignIssuerToken is signed with the right key by another issuer.
func (h *JWTHelper) CreateForeignIssuerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Duration, jwt.WithIssuer("someone-else")).
		GenerateToken(userID, jwt.RoleCustomer)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) service(d time.Duration) *jwt.Service {
	return jwt.NewService(h.cfg.Secret, d, jwt.WithIssuer(h.cfg.Issuer))
}
