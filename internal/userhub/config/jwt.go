package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// Ошибки валидации настроек JWT.
var (
	ErrEmptySecretKey = errors.New("jwt secret key cannot be empty")
	ErrBadSecretKey   = errors.New("jwt secret key is not valid base64")
	ErrNonPositiveTTL = errors.New("token TTL must be positive")
)

// JWTConfig содержит настройки для JWT токенов.
// Секрет хранится в конфигурации в base64 и декодируется один раз при старте.
type JWTConfig struct {
	SecretKey       string `yaml:"secret_key" env:"USERHUB_JWT_SECRET_KEY"`
	AccessTokenTTL  string `yaml:"access_token_ttl" env:"USERHUB_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl" env:"USERHUB_JWT_REFRESH_TOKEN_TTL" env-default:"24h"`
	BCryptCost      int    `yaml:"bcrypt_cost" env:"USERHUB_BCRYPT_COST" env-default:"10"`
}

// Validate проверяет настройки JWT: непустой декодируемый секрет
// и положительные TTL обоих видов токенов.
func (c *JWTConfig) Validate() error {
	if c.SecretKey == "" {
		return ErrEmptySecretKey
	}
	if _, err := base64.StdEncoding.DecodeString(c.SecretKey); err != nil {
		return fmt.Errorf("%w: %w", ErrBadSecretKey, err)
	}

	accessTTL, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("parsing access token TTL: %w", err)
	}
	refreshTTL, err := time.ParseDuration(c.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("parsing refresh token TTL: %w", err)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return ErrNonPositiveTTL
	}

	return nil
}

// GetSigningKey возвращает декодированный ключ подписи.
func (c *JWTConfig) GetSigningKey() ([]byte, error) {
	if c.SecretKey == "" {
		return nil, ErrEmptySecretKey
	}
	key, err := base64.StdEncoding.DecodeString(c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSecretKey, err)
	}
	return key, nil
}

// GetAccessTokenTTL возвращает время жизни access токена.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return 15 * time.Minute
	}
	return duration
}

// GetRefreshTokenTTL возвращает время жизни refresh токена.
func (c *JWTConfig) GetRefreshTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.RefreshTokenTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
