package api

import (
	"context"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
)

// UserChanges описывает частичное обновление учетной записи.
// Нулевые указатели означают "поле не меняется".
type UserChanges struct {
	Email            *string
	Username         *string
	Password         *string
	SecurityQuestion *string
	SecurityAnswer   *string
	Roles            []entities.Role
}

// UserUseCase определяет сценарии управления учетными записями.
type UserUseCase interface {
	Profile(ctx context.Context, userID string) (*entities.User, error)

	Update(ctx context.Context, userID string, changes UserChanges) (*entities.User, error)

	Delete(ctx context.Context, userID string) error

	// ListAll возвращает все учетные записи. Административная операция.
	ListAll(ctx context.Context) ([]*entities.User, error)
}
