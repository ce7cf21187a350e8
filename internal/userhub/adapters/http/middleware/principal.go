// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
)

// Ключ для хранения принципала в локальных данных запроса.
const principalKey = "principal"

// Principal описывает аутентифицированного субъекта текущего запроса.
type Principal struct {
	User  *entities.User
	Token string
}

// HasRole проверяет наличие роли у субъекта.
func (p *Principal) HasRole(role entities.Role) bool {
	return p.User != nil && p.User.HasRole(role)
}

// SetPrincipal сохраняет принципала в контексте запроса.
func SetPrincipal(ctx fiber.Ctx, principal *Principal) {
	ctx.Locals(principalKey, principal)
}

// PrincipalFrom возвращает принципала запроса, если запрос аутентифицирован.
func PrincipalFrom(ctx fiber.Ctx) (*Principal, bool) {
	principal, ok := ctx.Locals(principalKey).(*Principal)
	if !ok || principal == nil || principal.User == nil {
		return nil, false
	}
	return principal, true
}
