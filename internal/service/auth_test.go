package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("register issues a valid token", func(t *testing.T) {
		svc := NewAuthService(setupTestDB(t), "test-secret-0123456789")

		token, err := svc.Register(ctx, "mealfan", "password123", "홍길동")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "mealfan", claims.LoginID)
		assert.NotEqual(t, claims.UserID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("duplicate login id is rejected", func(t *testing.T) {
		svc := NewAuthService(setupTestDB(t), "test-secret-0123456789")

		_, err := svc.Register(ctx, "mealfan", "password123", "홍길동")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "mealfan", "otherpass456", "김철수")
		assert.Error(t, err)
	})

	t.Run("login verifies the password", func(t *testing.T) {
		svc := NewAuthService(setupTestDB(t), "test-secret-0123456789")
		_, err := svc.Register(ctx, "mealfan", "password123", "홍길동")
		require.NoError(t, err)

		token, err := svc.Login(ctx, "mealfan", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		_, err = svc.Login(ctx, "mealfan", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("tampered tokens are rejected", func(t *testing.T) {
		svc := NewAuthService(setupTestDB(t), "test-secret-0123456789")
		token, err := svc.Register(ctx, "mealfan", "password123", "홍길동")
		require.NoError(t, err)

		other := NewAuthService(setupTestDB(t), "a-different-secret-9876543210")
		_, err = other.ValidateToken(token)
		assert.Error(t, err)

		_, err = svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}
