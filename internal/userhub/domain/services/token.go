// Package services содержит доменные типы и ошибки сервисов токенов и паролей.
package services

import (
	"errors"
	"time"
)

// Ошибки, связанные с JWT токенами.
var (
	ErrNilUser         = errors.New("user cannot be nil")
	ErrEmptyToken      = errors.New("token cannot be empty")
	ErrInvalidToken    = errors.New("invalid JWT token")
	ErrExpiredToken    = errors.New("JWT token has expired")
	ErrGeneratingToken = errors.New("failed to generate JWT token")
)

// Ошибки хранилища отзыва токенов.
var (
	ErrStoreUnavailable = errors.New("revocation store unavailable")
)

// Ошибки пароля.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrHashingFailed   = errors.New("failed to hash secret")
)

// ErrInvalidRefreshToken возвращается наружу при любой ошибке проверки refresh
// токена, не раскрывая различие между просроченным и поддельным токеном.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// TokenKind определяет вид токена, записываемый в claim "type".
type TokenKind string

// Виды токенов.
const (
	TokenKindAccess  TokenKind = "ACCESS"
	TokenKindRefresh TokenKind = "REFRESH"
)

// JWTConfig содержит настройки токенного сервиса.
// Ключ подписи неизменяем после загрузки и никогда не логируется.
type JWTConfig struct {
	SigningKey      []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// TokenPair содержит выпущенную пару токенов.
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}
