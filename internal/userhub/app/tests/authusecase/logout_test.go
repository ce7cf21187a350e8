package authusecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/app"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
)

func TestLogout(t *testing.T) {
	const accessToken = "access-token-123"

	tests := []struct {
		name         string
		token        string
		setupMocks   func(tokenStore *mockTokenStore, tokenSvc *mockTokenService)
		expectedErr  error
		errorContext string
	}{
		{
			name:  "success - token blacklisted for its remaining lifetime",
			token: accessToken,
			setupMocks: func(tokenStore *mockTokenStore, tokenSvc *mockTokenService) {
				tokenSvc.On("TokenExpiration", mock.Anything, accessToken).
					Return(time.Now().Add(time.Hour), nil).Once()
				tokenStore.On("BlacklistToken", mock.Anything, accessToken, mock.MatchedBy(func(ttl time.Duration) bool {
					return ttl > 59*time.Minute && ttl <= time.Hour
				})).Return(nil).Once()
			},
			expectedErr: nil,
		},
		{
			name:  "error - malformed token",
			token: "garbage",
			setupMocks: func(_ *mockTokenStore, tokenSvc *mockTokenService) {
				tokenSvc.On("TokenExpiration", mock.Anything, "garbage").
					Return(time.Time{}, services.ErrInvalidToken).Once()
			},
			expectedErr:  services.ErrInvalidToken,
			errorContext: "reading token expiration",
		},
		{
			name:  "error - store unavailable, logout fails closed",
			token: accessToken,
			setupMocks: func(tokenStore *mockTokenStore, tokenSvc *mockTokenService) {
				tokenSvc.On("TokenExpiration", mock.Anything, accessToken).
					Return(time.Now().Add(time.Hour), nil).Once()
				tokenStore.On("BlacklistToken", mock.Anything, accessToken, mock.Anything).
					Return(services.ErrStoreUnavailable).Once()
			},
			expectedErr:  services.ErrStoreUnavailable,
			errorContext: "blacklisting token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			tokenStore := new(mockTokenStore)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)

			tt.setupMocks(tokenStore, tokenSvc)

			authUseCase := app.NewAuthUseCase(userRepo, tokenStore, passwordSvc, tokenSvc)

			ctx := context.Background()
			err := authUseCase.Logout(ctx, tt.token)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContext)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			tokenStore.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
		})
	}
}
