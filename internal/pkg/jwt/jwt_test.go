//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"booking-marketplace/internal/domain/user"
	"booking-marketplace/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(opts ...jwt.Option) *jwt.Service {
	return jwt.NewService("secret", append([]jwt.Option{
		jwt.WithIssuer("identity"),
		jwt.WithAudience("booking"),
	}, opts...)...)
}

func TestValidateToken(t *testing.T) {
	userID := uuid.New()

	t.Run("success: round trip keeps the actor", func(t *testing.T) {
		svc := newService()
		token, err := svc.GenerateToken(userID, user.RoleShopOwner, time.Minute)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, user.RoleShopOwner.String(), claims.Role)
		assert.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("error: expired", func(t *testing.T) {
		svc := newService()
		token, err := svc.GenerateToken(userID, user.RoleCustomer, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("success: leeway absorbs small clock drift", func(t *testing.T) {
		svc := newService(jwt.WithLeeway(time.Minute))
		token, err := svc.GenerateToken(userID, user.RoleCustomer, -10*time.Second)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.NoError(t, err)
	})

	t.Run("error: foreign issuer", func(t *testing.T) {
		token, err := jwt.NewService("secret", jwt.WithIssuer("someone-else"), jwt.WithAudience("booking")).
			GenerateToken(userID, user.RoleAdmin, time.Minute)
		require.NoError(t, err)

		_, err = newService().ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("error: wrong audience", func(t *testing.T) {
		token, err := jwt.NewService("secret", jwt.WithIssuer("identity"), jwt.WithAudience("billing")).
			GenerateToken(userID, user.RoleCustomer, time.Minute)
		require.NoError(t, err)

		_, err = newService().ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("error: signed with another key", func(t *testing.T) {
		token, err := jwt.NewService("other", jwt.WithIssuer("identity"), jwt.WithAudience("booking")).
			GenerateToken(userID, user.RoleCustomer, time.Minute)
		require.NoError(t, err)

		_, err = newService().ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("error: unsigned token", func(t *testing.T) {
		unsigned := gojwt.NewWithClaims(gojwt.SigningMethodNone, jwt.Claims{
			UserID: userID,
			Role:   user.RoleAdmin.String(),
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "identity",
				Audience:  gojwt.ClaimStrings{"booking"},
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		})
		token, err := unsigned.SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = newService().ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("error: subject disagrees with user id", func(t *testing.T) {
		forged := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
			UserID: userID,
			Role:   user.RoleCustomer.String(),
			RegisteredClaims: gojwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				Issuer:    "identity",
				Audience:  gojwt.ClaimStrings{"booking"},
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		})
		token, err := forged.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = newService().ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
