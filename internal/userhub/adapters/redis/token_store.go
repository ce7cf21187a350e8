// Package redis содержит хранилище отзыва токенов поверх Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/config"
	domain "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
	svc "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// Константы хранилища.
const (
	// BlacklistedTokenPrefix - пространство имен ключей денилиста access токенов.
	BlacklistedTokenPrefix = "blacklisted:"

	blacklistedValue  = "BLACKLISTED"
	refreshTokenValue = "REFRESH_TOKEN"

	// minTTL используется вместо неположительного остатка срока: запись
	// все равно создается и немедленно истекает, операция остается тотальной.
	minTTL = time.Millisecond
)

// Константы для логирования.
const (
	LogMethodBlacklist      = "BlacklistToken"
	LogMethodIsBlacklisted  = "IsTokenBlacklisted"
	LogMethodStoreRefresh   = "StoreRefreshToken"
	LogMethodIsRefreshValid = "IsRefreshTokenValid"
	LogMethodRevokeRefresh  = "RevokeRefreshToken"
	LogMethodRemainingTTL   = "RemainingTTL"

	MsgTokenBlacklisted   = "token blacklisted"
	MsgRefreshTokenStored = "refresh token stored"
	MsgRefreshRevoked     = "refresh token revoked"

	ErrorFailedToBlacklist     = "failed to blacklist token"
	ErrorFailedToCheck         = "failed to check token blacklist"
	ErrorFailedToStoreRefresh  = "failed to store refresh token"
	ErrorFailedToCheckRefresh  = "failed to check refresh token"
	ErrorFailedToRevokeRefresh = "failed to revoke refresh token"
	ErrorFailedToGetTTL        = "failed to get token ttl"
	ErrorFailedToClose         = "failed to close redis connection"
)

// TokenStore реализует интерфейс services.TokenStore поверх Redis.
// Истечение TTL записей - единственный механизм сборки мусора,
// отдельная чистка не требуется.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore создает новое хранилище отзыва токенов и проверяет соединение.
func NewTokenStore(ctx context.Context, cfg *config.RedisConfig) (svc.TokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &TokenStore{client: client}, nil
}

// BlacklistToken помещает access токен в денилист на остаток его срока действия.
func (s *TokenStore) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodBlacklist))

	if ttl <= 0 {
		ttl = minTTL
	}

	key := BlacklistedTokenPrefix + token
	if err := s.client.Set(ctx, key, blacklistedValue, ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToBlacklist, zap.Error(err))
		return fmt.Errorf("%s: %w: %w", ErrorFailedToBlacklist, domain.ErrStoreUnavailable, err)
	}

	log.Info(ctx, MsgTokenBlacklisted, zap.Duration("ttl", ttl))
	return nil
}

// IsTokenBlacklisted проверяет наличие access токена в денилисте.
// Недоступность хранилища никогда не трактуется как "не отозван".
func (s *TokenStore) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodIsBlacklisted))

	exists, err := s.client.Exists(ctx, BlacklistedTokenPrefix+token).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToCheck, zap.Error(err))
		return false, fmt.Errorf("%s: %w: %w", ErrorFailedToCheck, domain.ErrStoreUnavailable, err)
	}

	return exists > 0, nil
}

// StoreRefreshToken регистрирует выпущенный refresh токен на срок ttl.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, token string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodStoreRefresh))

	if ttl <= 0 {
		ttl = minTTL
	}

	if err := s.client.Set(ctx, token, refreshTokenValue, ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToStoreRefresh, zap.Error(err))
		return fmt.Errorf("%s: %w: %w", ErrorFailedToStoreRefresh, domain.ErrStoreUnavailable, err)
	}

	log.Debug(ctx, MsgRefreshTokenStored, zap.Duration("ttl", ttl))
	return nil
}

// IsRefreshTokenValid проверяет наличие refresh токена в реестре.
func (s *TokenStore) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodIsRefreshValid))

	exists, err := s.client.Exists(ctx, token).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToCheckRefresh, zap.Error(err))
		return false, fmt.Errorf("%s: %w: %w", ErrorFailedToCheckRefresh, domain.ErrStoreUnavailable, err)
	}

	return exists > 0, nil
}

// RevokeRefreshToken удаляет refresh токен из реестра.
func (s *TokenStore) RevokeRefreshToken(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevokeRefresh))

	if err := s.client.Del(ctx, token).Err(); err != nil {
		log.Error(ctx, ErrorFailedToRevokeRefresh, zap.Error(err))
		return fmt.Errorf("%s: %w: %w", ErrorFailedToRevokeRefresh, domain.ErrStoreUnavailable, err)
	}

	log.Info(ctx, MsgRefreshRevoked)
	return nil
}

// RemainingTTL возвращает остаток срока жизни записи.
// Для отсутствующего ключа или ключа без срока возвращается services.NoTTL.
func (s *TokenStore) RemainingTTL(ctx context.Context, token string) (time.Duration, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRemainingTTL))

	ttl, err := s.client.PTTL(ctx, token).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToGetTTL, zap.Error(err))
		return svc.NoTTL, fmt.Errorf("%s: %w: %w", ErrorFailedToGetTTL, domain.ErrStoreUnavailable, err)
	}

	// Отрицательные значения - сентинелы Redis: ключ отсутствует
	// либо существует без срока жизни.
	if ttl < 0 {
		return svc.NoTTL, nil
	}

	return ttl, nil
}

// Ping проверяет доступность хранилища.
func (s *TokenStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *TokenStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
