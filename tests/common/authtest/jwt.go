//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"booking-marketplace/internal/domain/user"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const tokenTTL = 15 * time.Minute

// JWTHelper mints tokens the way the identity service does, using the same config the app verifies with.
type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret, jwt.WithIssuer(cfg.Issuer), jwt.WithAudience(cfg.Audience))}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role, tokenTTL)
	require.NoError(t, err)
	return token
}

// ExpiredToken is already past its expiry when returned; no sleeping needed.
func (h *JWTHelper) ExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role, -time.Hour)
	require.NoError(t, err)
	return token
}
