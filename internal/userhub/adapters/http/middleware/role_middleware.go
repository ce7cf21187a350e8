package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// Константы для логирования.
const (
	LogUnauthenticatedRequest = "request is not authenticated"
	LogInsufficientRole       = "principal lacks required role"

	ErrorUnauthorized = "unauthorized"
	ErrorForbidden    = "forbidden"
)

// NewRequireAuth создает промежуточное ПО, отклоняющее неаутентифицированные
// запросы со статусом 401.
func NewRequireAuth() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()

		if _, ok := PrincipalFrom(ctx); !ok {
			logger.Log(requestCtx).Debug(requestCtx, LogUnauthenticatedRequest, zap.String("path", ctx.Path()))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorUnauthorized,
			})
		}

		return ctx.Next()
	}
}

// NewRequireRole создает промежуточное ПО, требующее у принципала указанную
// роль. Анонимный запрос получает 401, аутентифицированный без роли — 403.
func NewRequireRole(role entities.Role) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()

		principal, ok := PrincipalFrom(ctx)
		if !ok {
			logger.Log(requestCtx).Debug(requestCtx, LogUnauthenticatedRequest, zap.String("path", ctx.Path()))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorUnauthorized,
			})
		}

		if !principal.HasRole(role) {
			logger.Log(requestCtx).Debug(requestCtx, LogInsufficientRole,
				zap.String("path", ctx.Path()),
				zap.String("userID", principal.User.ID),
				zap.String("role", string(role)),
			)
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": ErrorForbidden,
			})
		}

		return ctx.Next()
	}
}
