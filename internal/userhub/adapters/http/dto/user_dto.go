// Package dto содержит объекты передачи данных HTTP слоя.
package dto

import (
	"time"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Username         string `json:"username" validate:"required,min=3,max=50"`
	Password         string `json:"password" validate:"required,min=8"`
	SecurityQuestion string `json:"security_question,omitempty"`
	SecurityAnswer   string `json:"security_answer,omitempty"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPairResponse содержит выпущенную пару токенов.
type TokenPairResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// RefreshRequest содержит данные для обновления access токена.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AccessTokenResponse содержит новый access токен.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// SecurityQuestionResponse содержит секретный вопрос пользователя.
type SecurityQuestionResponse struct {
	SecurityQuestion string `json:"security_question"`
}

// ResetPasswordRequest содержит данные для сброса пароля по секретному вопросу.
type ResetPasswordRequest struct {
	Email          string `json:"email" validate:"required,email"`
	SecurityAnswer string `json:"security_answer" validate:"required"`
	NewPassword    string `json:"new_password" validate:"required,min=8"`
}

// UpdateUserRequest содержит частичные изменения профиля. Отсутствующие
// поля не изменяются.
type UpdateUserRequest struct {
	Email            *string  `json:"email,omitempty"`
	Username         *string  `json:"username,omitempty"`
	Password         *string  `json:"password,omitempty"`
	SecurityQuestion *string  `json:"security_question,omitempty"`
	SecurityAnswer   *string  `json:"security_answer,omitempty"`
	Roles            []string `json:"roles,omitempty"`
}

// UserResponse содержит данные профиля пользователя. Хеши секретов
// наружу не отдаются.
type UserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	SecurityQuestion string    `json:"security_question,omitempty"`
	Roles            []string  `json:"roles"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewUserResponse преобразует доменную сущность в ответ API.
func NewUserResponse(user *entities.User) UserResponse {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	return UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		Username:         user.Username,
		SecurityQuestion: user.SecurityQuestion,
		Roles:            roles,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// NewTokenPairResponse преобразует пару токенов в ответ API.
func NewTokenPairResponse(pair *services.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}
}
