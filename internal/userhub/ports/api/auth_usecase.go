// Package api определяет интерфейсы пользовательских сценариев.
package api

import (
	"context"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
)

// RegisterInput содержит данные для регистрации новой учетной записи.
// Roles заполняется только административным сценарием; при пустом значении
// назначается роль USER.
type RegisterInput struct {
	Email            string
	Username         string
	Password         string
	SecurityQuestion string
	SecurityAnswer   string
	Roles            []entities.Role
}

// AuthUseCase определяет сценарии аутентификации и жизненного цикла токенов.
type AuthUseCase interface {
	// Register создает учетную запись и выпускает пару токенов для нее.
	Register(ctx context.Context, input RegisterInput) (*services.TokenPair, error)

	// Login проверяет учетные данные и выпускает пару токенов.
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)

	// RefreshAccessToken выпускает новый access токен по действующему refresh токену.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)

	// Logout помещает access токен в денилист на остаток его срока действия.
	Logout(ctx context.Context, accessToken string) error

	// SecurityQuestion возвращает секретный вопрос для указанного email.
	SecurityQuestion(ctx context.Context, email string) (string, error)

	// ResetPassword сверяет ответ на секретный вопрос и устанавливает новый пароль.
	ResetPassword(ctx context.Context, email, answer, newPassword string) error
}
