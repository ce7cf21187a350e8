package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

const (
	methodReadiness = "Readiness"

	msgCheckingReadiness = "checking service readiness"
	msgDatabaseDown      = "database is not reachable"
	msgTokenStoreDown    = "token store is not reachable"
)

// Pinger описывает зависимость, доступность которой можно проверить.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthUseCase проверяет доступность внешних зависимостей сервиса.
type HealthUseCase struct {
	database   Pinger
	tokenStore Pinger
}

// NewHealthUseCase создает проверку готовности для указанных зависимостей.
func NewHealthUseCase(database, tokenStore Pinger) *HealthUseCase {
	return &HealthUseCase{
		database:   database,
		tokenStore: tokenStore,
	}
}

// Readiness возвращает ошибку, если хотя бы одна зависимость недоступна.
func (h *HealthUseCase) Readiness(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodReadiness))
	log.Debug(ctx, msgCheckingReadiness)

	if err := h.database.Ping(ctx); err != nil {
		log.Error(ctx, msgDatabaseDown, zap.Error(err))
		return fmt.Errorf("pinging database: %w", err)
	}

	if err := h.tokenStore.Ping(ctx); err != nil {
		log.Error(ctx, msgTokenStoreDown, zap.Error(err))
		return fmt.Errorf("pinging token store: %w", err)
	}

	return nil
}
