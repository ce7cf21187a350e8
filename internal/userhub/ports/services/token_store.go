package services

import (
	"context"
	"time"
)

// NoTTL возвращается RemainingTTL, когда ключ отсутствует или не имеет срока.
const NoTTL = time.Duration(-1)

// TokenStore определяет интерфейс хранилища отзыва токенов: денилист access
// токенов и реестр действующих refresh токенов с TTL. Любая недоступность
// хранилища выражается ошибкой services.ErrStoreUnavailable и никогда не
// трактуется как "токен не отозван".
type TokenStore interface {
	// BlacklistToken помещает access токен в денилист на остаток его срока
	// действия. Неположительный ttl записывается с минимальным TTL.
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error

	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	// StoreRefreshToken регистрирует выпущенный refresh токен на срок ttl.
	StoreRefreshToken(ctx context.Context, token string, ttl time.Duration) error

	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)

	// RevokeRefreshToken удаляет refresh токен из реестра до естественного
	// истечения срока.
	RevokeRefreshToken(ctx context.Context, token string) error

	// RemainingTTL возвращает остаток срока жизни записи или NoTTL.
	RemainingTTL(ctx context.Context, token string) (time.Duration, error)

	Ping(ctx context.Context) error

	Close() error
}
