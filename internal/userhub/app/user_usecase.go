package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/api"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/repositories"
	svc "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

const (
	methodProfile    = "Profile"
	methodUpdateUser = "Update"
	methodDeleteUser = "Delete"
	methodListAll    = "ListAll"

	msgFetchingProfile = "fetching user profile"
	msgUpdatingUser    = "updating user"
	msgUserUpdated     = "user updated successfully"
	msgDeletingUser    = "deleting user"
	msgUserDeleted     = "user deleted successfully"
	msgListingUsers    = "listing all users"

	msgErrDeleteUser = "failed to delete user"
	msgErrListUsers  = "failed to list users"

	errCtxValidatingNewEmail = "validating new email"
	errCtxValidatingChanges  = "validating changes"
	errCtxDeletingUser       = "deleting user"
	errCtxListingUsers       = "listing users"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
}

// NewUserUseCase создает новый экземпляр сервиса управления пользователями.
func NewUserUseCase(userRepo repositories.UserRepository, passwordSvc svc.PasswordService) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// Profile возвращает пользователя по идентификатору.
func (u *UserUseCaseImpl) Profile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProfile), zap.String("userID", userID))
	log.Debug(ctx, msgFetchingProfile)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, entities.ErrEmptyUserID)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return user, nil
}

// Update применяет частичные изменения к пользователю. Незаполненные поля
// остаются без изменений; новый пароль и ответ хешируются перед сохранением.
func (u *UserUseCaseImpl) Update(ctx context.Context, userID string, changes api.UserChanges) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.String("userID", userID))
	log.Debug(ctx, msgUpdatingUser)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, entities.ErrEmptyUserID)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if changes.Email != nil {
		if err := validateEmail(*changes.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingNewEmail, err)
		}
		user.Email = *changes.Email
	}

	if changes.Username != nil {
		if *changes.Username == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingChanges, entities.ErrEmptyUsername)
		}
		user.Username = *changes.Username
	}

	if changes.Password != nil {
		if err := validatePassword(*changes.Password); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingChanges, err)
		}
		passwordHash, err := u.passwordSvc.Hash(ctx, *changes.Password)
		if err != nil {
			log.Error(ctx, msgErrHashSecret, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingSecret, err)
		}
		user.PasswordHash = passwordHash
	}

	if changes.SecurityQuestion != nil {
		user.SecurityQuestion = *changes.SecurityQuestion
	}

	if changes.SecurityAnswer != nil {
		answerHash, err := u.passwordSvc.Hash(ctx, *changes.SecurityAnswer)
		if err != nil {
			log.Error(ctx, msgErrHashSecret, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingSecret, err)
		}
		user.SecurityAnswerHash = answerHash
	}

	if changes.Roles != nil {
		user.Roles = changes.Roles
		user.NormalizeRoles()
	}

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated)
	return updated, nil
}

// Delete удаляет пользователя по идентификатору.
func (u *UserUseCaseImpl) Delete(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.String("userID", userID))
	log.Debug(ctx, msgDeletingUser)

	if userID == "" {
		return fmt.Errorf("%s: %w", errCtxDeletingUser, entities.ErrEmptyUserID)
	}

	if err := u.userRepo.Delete(ctx, userID); err != nil {
		log.Error(ctx, msgErrDeleteUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}

// ListAll возвращает всех пользователей.
func (u *UserUseCaseImpl) ListAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListAll))
	log.Debug(ctx, msgListingUsers)

	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	return users, nil
}
