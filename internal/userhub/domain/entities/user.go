// Package entities содержит основные сущности домена пользователя.
package entities

import (
	"errors"
	"slices"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID           = errors.New("user ID cannot be empty")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrEmptyUsername         = errors.New("username cannot be empty")
	ErrPasswordTooShort      = errors.New("password must contain at least 8 characters")
	ErrPasswordTooWeak       = errors.New("password must contain at least one letter and one digit")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already in use")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidSecurityAnswer = errors.New("incorrect security answer")
	ErrNoSecurityQuestion    = errors.New("no security question configured")
)

// Role определяет роль пользователя в системе. Закрытое перечисление.
type Role string

// Поддерживаемые роли.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User представляет основную сущность домена пользователя.
// Хэши пароля и ответа на секретный вопрос никогда не отдаются наружу.
type User struct {
	ID                 string
	Email              string
	Username           string
	PasswordHash       string
	SecurityQuestion   string
	SecurityAnswerHash string
	Roles              []Role
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasRole сообщает, назначена ли пользователю указанная роль.
func (u *User) HasRole(role Role) bool {
	return slices.Contains(u.Roles, role)
}

// IsAdmin сообщает, обладает ли пользователь правами администратора.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// NormalizeRoles удаляет дубликаты ролей и подставляет роль USER по умолчанию.
func (u *User) NormalizeRoles() {
	if len(u.Roles) == 0 {
		u.Roles = []Role{RoleUser}
		return
	}

	seen := make(map[Role]struct{}, len(u.Roles))
	deduped := make([]Role, 0, len(u.Roles))
	for _, role := range u.Roles {
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		deduped = append(deduped, role)
	}
	u.Roles = deduped
}
