package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/repositories"
	svc "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	LogPrincipalAttached  = "principal already attached, skipping token validation"
	LogNoAuthHeader       = "no authorization header provided"
	LogInvalidTokenFormat = "invalid token format"
	LogInvalidToken       = "token failed validation"
	LogBlacklistedToken   = "token is blacklisted"
	LogBlacklistCheckFail = "blacklist check failed, treating request as anonymous"
	LogUnknownTokenUser   = "token subject does not resolve to a user"

	bearerPrefix = "Bearer "
)

// NewAuthMiddleware создает промежуточное ПО аутентификации. Оно извлекает
// access токен из заголовка Authorization, проверяет подпись, срок действия
// и денилист, и сохраняет принципала в контексте запроса. Запрос с
// недействительным токеном продолжается как анонимный: отказ в доступе —
// обязанность защитных middleware на конкретных маршрутах.
func NewAuthMiddleware(
	tokenSvc svc.TokenService,
	tokenStore svc.TokenStore,
	userRepo repositories.UserRepository,
) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		// Уже установленного принципала не перезаписываем.
		if _, ok := PrincipalFrom(ctx); ok {
			log.Debug(requestCtx, LogPrincipalAttached)
			return ctx.Next()
		}

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, LogNoAuthHeader)
			return ctx.Next()
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, LogInvalidTokenFormat)
			return ctx.Next()
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		userID, err := tokenSvc.ValidateTokenAndGetUserID(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, LogInvalidToken, zap.Error(err))
			return ctx.Next()
		}

		blacklisted, err := tokenStore.IsTokenBlacklisted(requestCtx, token)
		if err != nil {
			// Недоступность денилиста не роняет запрос, но и не
			// пропускает токен: запрос идет дальше анонимным.
			log.Error(requestCtx, LogBlacklistCheckFail, zap.Error(err))
			return ctx.Next()
		}
		if blacklisted {
			log.Debug(requestCtx, LogBlacklistedToken)
			return ctx.Next()
		}

		user, err := userRepo.FindByID(requestCtx, userID)
		if err != nil {
			log.Debug(requestCtx, LogUnknownTokenUser, zap.String("userID", userID), zap.Error(err))
			return ctx.Next()
		}

		SetPrincipal(ctx, &Principal{User: user, Token: token})

		return ctx.Next()
	}
}
