// Package services определяет интерфейсы сервисов токенов и паролей.
package services

import (
	"context"
	"time"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
)

// TokenService определяет операции выпуска и проверки подписанных токенов.
type TokenService interface {
	// GenerateAccessToken выпускает короткоживущий access токен для пользователя.
	GenerateAccessToken(ctx context.Context, user *entities.User) (string, time.Time, error)

	// GenerateRefreshToken выпускает долгоживущий refresh токен для пользователя.
	GenerateRefreshToken(ctx context.Context, user *entities.User) (string, time.Time, error)

	// ValidateTokenAndGetUserID проверяет подпись и срок действия токена
	// и возвращает ID субъекта. Просроченный токен дает ErrExpiredToken,
	// поврежденный или поддельный - ErrInvalidToken.
	ValidateTokenAndGetUserID(ctx context.Context, token string) (string, error)

	// TokenExpiration возвращает момент истечения токена без проверки срока.
	TokenExpiration(ctx context.Context, token string) (time.Time, error)

	// IsTokenExpired сообщает, истек ли структурно корректный токен.
	IsTokenExpired(ctx context.Context, token string) (bool, error)
}
