//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper plays the identity provider for tests.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) service() *jwt.Service {
	return jwt.NewService(h.cfg.Secret, h.cfg.Issuer, 0)
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := h.service().GenerateToken(userID, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := h.service().GenerateToken(userID, -time.Minute)
	require.NoError(t, err)
	return token
}

// CreateForeignToken signs with a key the service does not trust.
func (h *JWTHelper) CreateForeignToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService("not-"+h.cfg.Secret, h.cfg.Issuer, 0).GenerateToken(userID, time.Hour)
	require.NoError(t, err)
	return token
}
