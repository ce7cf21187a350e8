// Package health содержит HTTP обработчики проверки работоспособности.
package health

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/app"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// Handler содержит HTTP обработчики проверки работоспособности.
type Handler struct {
	healthUseCase *app.HealthUseCase
}

// NewHandler создает новый экземпляр обработчика health-проверок.
func NewHandler(healthUseCase *app.HealthUseCase) *Handler {
	return &Handler{
		healthUseCase: healthUseCase,
	}
}

// Live сообщает, что процесс запущен и принимает запросы.
func (h *Handler) Live(ctx fiber.Ctx) error {
	return ctx.Status(http.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}

// Ready сообщает о готовности сервиса: база данных и хранилище токенов
// должны быть доступны.
func (h *Handler) Ready(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	if err := h.healthUseCase.Readiness(requestCtx); err != nil {
		logger.Log(requestCtx).Error(requestCtx, "readiness check failed", zap.Error(err))
		return ctx.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}
