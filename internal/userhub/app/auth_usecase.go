// Package app реализует пользовательские сценарии сервиса учетных записей.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/api"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/repositories"
	svc "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

const (
	methodRegister         = "Register"
	methodLogin            = "Login"
	methodRefresh          = "RefreshAccessToken"
	methodLogout           = "Logout"
	methodSecurityQuestion = "SecurityQuestion"
	methodResetPassword    = "ResetPassword"
	methodGenerateTokens   = "generateTokenPair"

	msgStartRegistration   = "starting user registration"
	msgInvalidEmailFormat  = "invalid email format"
	msgEmptyUsername       = "empty username provided"
	msgInvalidPassword     = "invalid password"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgTokensGenerated     = "authentication tokens generated for new user"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgRefreshingToken     = "refreshing access token"
	msgRefreshNotInStore   = "refresh token not present in registry"
	msgAccessRefreshed     = "access token refreshed successfully"
	msgProcessingLogout    = "processing logout request"
	msgUserLoggedOut       = "user logged out, token blacklisted"
	msgFetchingQuestion    = "fetching security question"
	msgResettingPassword   = "resetting password by security answer"
	msgWrongAnswer         = "incorrect security answer provided"
	msgPasswordReset       = "password reset successfully"
	msgTokenPairGenerated  = "token pair generated successfully"

	msgErrCheckExistingUser   = "failed to check existing user"
	msgErrHashSecret          = "failed to hash secret"
	msgErrCreateUser          = "failed to create user"
	msgErrGenerateTokens      = "failed to generate tokens"
	msgErrFindingUser         = "error finding user"
	msgErrVerifyingPassword   = "error verifying password"
	msgErrInvalidRefreshToken = "invalid refresh token"
	msgErrCheckRefreshToken   = "failed to check refresh token registry"
	msgErrTokenExpiration     = "failed to read token expiration"
	msgErrBlacklistToken      = "failed to blacklist token"
	msgErrGenerateAccess      = "failed to generate access token"
	msgErrGenerateRefresh     = "failed to generate refresh token"
	msgErrStoreRefreshToken   = "failed to store refresh token"
	msgErrUpdateUser          = "failed to update user"

	errCtxValidatingEmail        = "validating email"
	errCtxValidatingUsername     = "validating username"
	errCtxValidatingPassword     = "validating password"
	errCtxCheckingUser           = "checking existing user"
	errCtxEmailRegistered        = "email already registered"
	errCtxHashingSecret          = "hashing secret"
	errCtxCreatingUser           = "creating user"
	errCtxGeneratingTokens       = "generating tokens"
	errCtxInvalidCredentials     = "invalid credentials"
	errCtxFindingUser            = "finding user"
	errCtxVerifyingPassword      = "verifying password"
	errCtxVerifyingRefreshToken  = "verifying refresh token"
	errCtxCheckingRefreshToken   = "checking refresh token registry"
	errCtxReadingExpiration      = "reading token expiration"
	errCtxBlacklistingToken      = "blacklisting token"
	errCtxGeneratingAccessToken  = "generating access token"
	errCtxGeneratingRefreshToken = "generating refresh token"
	errCtxStoringRefreshToken    = "storing refresh token"
	errCtxVerifyingAnswer        = "verifying security answer"
	errCtxUpdatingUser           = "updating user"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	tokenStore  svc.TokenStore
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	tokenStore svc.TokenStore,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		tokenStore:  tokenStore,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя с предоставленными учетными данными.
func (a *AuthUseCaseImpl) Register(ctx context.Context, input api.RegisterInput) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", input.Email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateEmail(input.Email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if input.Username == "" {
		log.Debug(ctx, msgEmptyUsername)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}
	if err := validatePassword(input.Password); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		log.Error(ctx, msgErrHashSecret, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingSecret, err)
	}

	newUser := &entities.User{
		Email:            input.Email,
		Username:         input.Username,
		PasswordHash:     hashedPassword,
		SecurityQuestion: input.SecurityQuestion,
		Roles:            input.Roles,
	}
	newUser.NormalizeRoles()

	if input.SecurityAnswer != "" {
		answerHash, err := a.passwordSvc.Hash(ctx, input.SecurityAnswer)
		if err != nil {
			log.Error(ctx, msgErrHashSecret, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingSecret, err)
		}
		newUser.SecurityAnswerHash = answerHash
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	tokenPair, err := a.generateTokenPair(ctx, createdUser)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgTokensGenerated, zap.String("userID", createdUser.ID))
	return tokenPair, nil
}

// Login аутентифицирует пользователя по email и паролю.
// Несуществующий email и неверный пароль дают одинаковую ошибку.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	return tokenPair, nil
}

// RefreshAccessToken выпускает новый access токен по действующему refresh
// токену. Любая ошибка проверки токена схлопывается в ErrInvalidRefreshToken,
// чтобы не раскрывать различие между просроченным и поддельным токеном.
func (a *AuthUseCaseImpl) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefresh))
	log.Debug(ctx, msgRefreshingToken)

	userID, err := a.tokenSvc.ValidateTokenAndGetUserID(ctx, refreshToken)
	if err != nil {
		log.Debug(ctx, msgErrInvalidRefreshToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxVerifyingRefreshToken, services.ErrInvalidRefreshToken)
	}

	log = log.With(zap.String("userID", userID))

	// Реестр refresh токенов поддерживает явный отзыв: токен с верной
	// подписью, но удаленный из реестра, больше не принимается.
	valid, err := a.tokenStore.IsRefreshTokenValid(ctx, refreshToken)
	if err != nil {
		log.Error(ctx, msgErrCheckRefreshToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxCheckingRefreshToken, err)
	}
	if !valid {
		log.Debug(ctx, msgRefreshNotInStore)
		return "", fmt.Errorf("%s: %w", errCtxVerifyingRefreshToken, services.ErrInvalidRefreshToken)
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	accessToken, _, err := a.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateAccess, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxGeneratingAccessToken, err)
	}

	log.Info(ctx, msgAccessRefreshed)
	return accessToken, nil
}

// Logout помещает access токен в денилист на остаток его срока действия.
// Недоступность хранилища отзыва распространяется наверх: вызывающая
// сторона должна знать, что отзыв не состоялся.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, accessToken string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))
	log.Debug(ctx, msgProcessingLogout)

	expiresAt, err := a.tokenSvc.TokenExpiration(ctx, accessToken)
	if err != nil {
		log.Debug(ctx, msgErrTokenExpiration, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxReadingExpiration, err)
	}

	remaining := time.Until(expiresAt)

	if err := a.tokenStore.BlacklistToken(ctx, accessToken, remaining); err != nil {
		log.Error(ctx, msgErrBlacklistToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxBlacklistingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut, zap.Duration("remaining", remaining))
	return nil
}

// SecurityQuestion возвращает секретный вопрос для указанного email.
func (a *AuthUseCaseImpl) SecurityQuestion(ctx context.Context, email string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSecurityQuestion), zap.String("email", email))
	log.Debug(ctx, msgFetchingQuestion)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if user.SecurityQuestion == "" {
		return "", fmt.Errorf("%s: %w", errCtxFindingUser, entities.ErrNoSecurityQuestion)
	}

	return user.SecurityQuestion, nil
}

// ResetPassword сверяет ответ на секретный вопрос и устанавливает новый пароль.
func (a *AuthUseCaseImpl) ResetPassword(ctx context.Context, email, answer, newPassword string) error {
	log := logger.Log(ctx).With(zap.String("method", methodResetPassword), zap.String("email", email))
	log.Debug(ctx, msgResettingPassword)

	if err := validatePassword(newPassword); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	matches, err := a.passwordSvc.Verify(ctx, answer, user.SecurityAnswerHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxVerifyingAnswer, err)
	}
	if !matches {
		log.Debug(ctx, msgWrongAnswer)
		return fmt.Errorf("%s: %w", errCtxVerifyingAnswer, entities.ErrInvalidSecurityAnswer)
	}

	passwordHash, err := a.passwordSvc.Hash(ctx, newPassword)
	if err != nil {
		log.Error(ctx, msgErrHashSecret, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingSecret, err)
	}

	user.PasswordHash = passwordHash
	if _, err := a.userRepo.Update(ctx, user); err != nil {
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgPasswordReset, zap.String("userID", user.ID))
	return nil
}

// Вспомогательная функция для генерации пары токенов. Выпущенный refresh
// токен регистрируется в хранилище на весь срок своего действия.
func (a *AuthUseCaseImpl) generateTokenPair(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateTokens),
		zap.String("userID", user.ID),
	)

	accessToken, accessExpires, err := a.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateAccess, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingAccessToken, err)
	}

	refreshToken, refreshExpires, err := a.tokenSvc.GenerateRefreshToken(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateRefresh, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingRefreshToken, err)
	}

	if err := a.tokenStore.StoreRefreshToken(ctx, refreshToken, time.Until(refreshExpires)); err != nil {
		log.Error(ctx, msgErrStoreRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxStoringRefreshToken, err)
	}

	log.Debug(ctx, msgTokenPairGenerated)

	return &services.TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpires,
		RefreshTokenExpiresAt: refreshExpires,
	}, nil
}

// Валидация email.
func validateEmail(email string) error {
	if email == "" {
		return entities.ErrInvalidEmail
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}

	return nil
}

// Валидация пароля.
func validatePassword(password string) error {
	if len(password) < 8 {
		return entities.ErrPasswordTooShort
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`\d`).MatchString(password)

	if !hasLetter || !hasDigit {
		return entities.ErrPasswordTooWeak
	}

	return nil
}
