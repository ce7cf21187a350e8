package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// Заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-ID"

// NewRequestIDMiddleware создает промежуточное ПО, присваивающее каждому
// запросу идентификатор. Клиентский идентификатор из заголовка сохраняется,
// иначе генерируется новый. Идентификатор попадает в контекст запроса и
// во все записи лога.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(RequestIDHeader)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		requestCtx := logger.NewRequestIDContext(ctx.Context(), requestID)
		ctx.SetContext(requestCtx)
		ctx.Set(RequestIDHeader, requestID)

		return ctx.Next()
	}
}
