package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapters "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	domain "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
)

var testSigningKey = []byte("test-signing-key-for-hmac-sha512-units")

func testTokenUser() *entities.User {
	return &entities.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Username: "testuser",
		Roles:    []entities.Role{entities.RoleUser},
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	tokenSvc := adapters.NewJWT(testSigningKey, 15*time.Minute, 24*time.Hour)
	ctx := context.Background()
	user := testTokenUser()

	token, expiresAt, err := tokenSvc.GenerateAccessToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	userID, err := tokenSvc.ValidateTokenAndGetUserID(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestGenerateTokenKinds(t *testing.T) {
	tokenSvc := adapters.NewJWT(testSigningKey, 15*time.Minute, 24*time.Hour)
	ctx := context.Background()
	user := testTokenUser()

	accessToken, _, err := tokenSvc.GenerateAccessToken(ctx, user)
	require.NoError(t, err)
	refreshToken, refreshExpiry, err := tokenSvc.GenerateRefreshToken(ctx, user)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(24*time.Hour), refreshExpiry, 5*time.Second)

	parseKind := func(token string) string {
		claims := &adapters.Claims{}
		_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return testSigningKey, nil
		})
		require.NoError(t, err)
		return claims.TokenType
	}

	assert.Equal(t, string(domain.TokenKindAccess), parseKind(accessToken))
	assert.Equal(t, string(domain.TokenKindRefresh), parseKind(refreshToken))
}

func TestGenerateTokenNilUser(t *testing.T) {
	tokenSvc := adapters.NewJWT(testSigningKey, 15*time.Minute, 24*time.Hour)

	_, _, err := tokenSvc.GenerateAccessToken(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNilUser)
}

func TestGenerateTokenEmptySigningKey(t *testing.T) {
	tokenSvc := adapters.NewJWT(nil, 15*time.Minute, 24*time.Hour)

	_, _, err := tokenSvc.GenerateAccessToken(context.Background(), testTokenUser())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeneratingToken)
}

func TestValidateToken(t *testing.T) {
	tokenSvc := adapters.NewJWT(testSigningKey, 15*time.Minute, 24*time.Hour)
	ctx := context.Background()

	tests := []struct {
		name        string
		token       func(t *testing.T) string
		expectedErr error
	}{
		{
			name: "error - empty token",
			token: func(*testing.T) string {
				return ""
			},
			expectedErr: domain.ErrInvalidToken,
		},
		{
			name: "error - corrupted token",
			token: func(t *testing.T) string {
				token, _, err := tokenSvc.GenerateAccessToken(ctx, testTokenUser())
				require.NoError(t, err)
				return token + "corrupted"
			},
			expectedErr: domain.ErrInvalidToken,
		},
		{
			name: "error - token signed with another key",
			token: func(t *testing.T) string {
				otherSvc := adapters.NewJWT([]byte("another-signing-key"), 15*time.Minute, 24*time.Hour)
				token, _, err := otherSvc.GenerateAccessToken(ctx, testTokenUser())
				require.NoError(t, err)
				return token
			},
			expectedErr: domain.ErrInvalidToken,
		},
		{
			name: "error - expired token",
			token: func(t *testing.T) string {
				expiredSvc := adapters.NewJWT(testSigningKey, -time.Minute, 24*time.Hour)
				token, _, err := expiredSvc.GenerateAccessToken(ctx, testTokenUser())
				require.NoError(t, err)
				return token
			},
			expectedErr: domain.ErrExpiredToken,
		},
		{
			name: "error - unsigned token rejected",
			token: func(t *testing.T) string {
				unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
					Subject:   "user-123",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				})
				token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return token
			},
			expectedErr: domain.ErrInvalidToken,
		},
		{
			name: "error - token without subject",
			token: func(t *testing.T) string {
				claims := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				})
				token, err := claims.SignedString(testSigningKey)
				require.NoError(t, err)
				return token
			},
			expectedErr: domain.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := tokenSvc.ValidateTokenAndGetUserID(ctx, tt.token(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Empty(t, userID)
		})
	}
}

func TestTokenExpiration(t *testing.T) {
	ctx := context.Background()

	t.Run("expiration of a live token", func(t *testing.T) {
		tokenSvc := adapters.NewJWT(testSigningKey, 15*time.Minute, 24*time.Hour)
		token, expiresAt, err := tokenSvc.GenerateAccessToken(ctx, testTokenUser())
		require.NoError(t, err)

		got, err := tokenSvc.TokenExpiration(ctx, token)
		require.NoError(t, err)
		assert.WithinDuration(t, expiresAt, got, time.Second)
	})

	t.Run("expiration readable on an expired token", func(t *testing.T) {
		expiredSvc := adapters.NewJWT(testSigningKey, -time.Hour, 24*time.Hour)
		token, expiresAt, err := expiredSvc.GenerateAccessToken(ctx, testTokenUser())
		require.NoError(t, err)

		got, err := expiredSvc.TokenExpiration(ctx, token)
		require.NoError(t, err)
		assert.WithinDuration(t, expiresAt, got, time.Second)
	})

	t.Run("error - garbage token", func(t *testing.T) {
		tokenSvc := adapters.NewJWT(testSigningKey, 15*time.Minute, 24*time.Hour)

		_, err := tokenSvc.TokenExpiration(ctx, "garbage")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func TestIsTokenExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("live token is not expired", func(t *testing.T) {
		tokenSvc := adapters.NewJWT(testSigningKey, 15*time.Minute, 24*time.Hour)
		token, _, err := tokenSvc.GenerateAccessToken(ctx, testTokenUser())
		require.NoError(t, err)

		expired, err := tokenSvc.IsTokenExpired(ctx, token)
		require.NoError(t, err)
		assert.False(t, expired)
	})

	t.Run("expired token is reported expired", func(t *testing.T) {
		expiredSvc := adapters.NewJWT(testSigningKey, -time.Hour, 24*time.Hour)
		token, _, err := expiredSvc.GenerateAccessToken(ctx, testTokenUser())
		require.NoError(t, err)

		expired, err := expiredSvc.IsTokenExpired(ctx, token)
		require.NoError(t, err)
		assert.True(t, expired)
	})
}
