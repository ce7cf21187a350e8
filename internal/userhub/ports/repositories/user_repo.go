// Package repositories определяет интерфейсы хранилищ домена.
package repositories

import (
	"context"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
)

// UserRepository определяет интерфейс для операций с учетными записями.
// Отсутствие записи всегда выражается ошибкой entities.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	FindAll(ctx context.Context) ([]*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	Delete(ctx context.Context, id string) error
}
