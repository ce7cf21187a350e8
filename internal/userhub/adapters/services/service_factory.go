// Package services предоставляет реализации сервисов аутентификации:
// токенный сервис на JWT и хэширование секретов на bcrypt.
package services

import (
	"time"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/services"
)

// ServiceFactory создает все необходимые сервисы аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает новую фабрику сервисов.
// signingKey - декодированный ключ подписи JWT.
func NewServiceFactory(
	signingKey []byte,
	accessTokenTTL, refreshTokenTTL time.Duration,
	bcryptCost int,
) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(signingKey, accessTokenTTL, refreshTokenTTL),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
