package security_test

import (
	"testing"

	"gracehub-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	manager := security.NewTokenManager("unit-test-secret", 15, 1440)

	t.Run("access token round trip preserves identity and capabilities", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(42, "user@example.com", []string{"admin", "pastor"})
		require.NoError(t, err)

		claims, err := manager.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int32(42), claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
		assert.Equal(t, []string{"admin", "pastor"}, claims.Capabilities)
	})

	t.Run("refresh token carries no capabilities", func(t *testing.T) {
		token, err := manager.GenerateRefreshToken(42, "user@example.com")
		require.NoError(t, err)

		claims, err := manager.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
		assert.Empty(t, claims.Capabilities)
	})

	t.Run("a token signed with another secret is rejected", func(t *testing.T) {
		other := security.NewTokenManager("different-secret", 15, 1440)
		token, err := other.GenerateAccessToken(42, "user@example.com", nil)
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("an expired token is rejected as expired", func(t *testing.T) {
		expired := security.NewTokenManager("unit-test-secret", -1, -1)
		token, err := expired.GenerateAccessToken(42, "user@example.com", nil)
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})

	t.Run("malformed input is rejected", func(t *testing.T) {
		_, err := manager.ValidateToken("definitely.not.a.jwt")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
