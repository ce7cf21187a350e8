// Package auth содержит HTTP обработчики аутентификации и жизненного
// цикла токенов.
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/dto"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/middleware"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	domain "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/api"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister         = "auth handler: register"
	LogHandlerLogin            = "auth handler: login"
	LogHandlerRefreshToken     = "auth handler: refresh token" // #nosec G101 - not a credential
	LogHandlerLogout           = "auth handler: logout"
	LogHandlerSecurityQuestion = "auth handler: security question"
	LogHandlerResetPassword    = "auth handler: reset password"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"

	// Единый текст ошибки для любого недействительного refresh токена:
	// просроченного, поддельного или отозванного.
	ErrorInvalidRefreshToken = "invalid refresh token"
	ErrorInvalidCredentials  = "invalid credentials"
	ErrorFailedToLogout      = "failed to logout"
	ErrorServiceUnavailable  = "service temporarily unavailable"
)

// Вспомогательная функция для отправки ошибки HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email, username and password are required")
	}

	tokenPair, err := h.authUseCase.Register(requestCtx, api.RegisterInput{
		Email:            req.Email,
		Username:         req.Username,
		Password:         req.Password,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		switch {
		case errors.Is(err, entities.ErrEmailAlreadyExists):
			return sendErrorResponse(ctx, http.StatusConflict, entities.ErrEmailAlreadyExists.Error())
		case errors.Is(err, entities.ErrInvalidEmail),
			errors.Is(err, entities.ErrEmptyUsername),
			errors.Is(err, entities.ErrPasswordTooShort),
			errors.Is(err, entities.ErrPasswordTooWeak):
			return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		default:
			return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
		}
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewTokenPairResponse(tokenPair)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email and password are required")
	}

	tokenPair, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, entities.ErrInvalidCredentials) {
			return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorInvalidCredentials)
		}
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewTokenPairResponse(tokenPair)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// RefreshToken обрабатывает запрос на обновление access токена.
func (h *Handler) RefreshToken(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefreshToken)

	var req dto.RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.RefreshToken == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "refresh token is required")
	}

	accessToken, err := h.authUseCase.RefreshAccessToken(requestCtx, req.RefreshToken)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		switch {
		case errors.Is(err, domain.ErrStoreUnavailable):
			return sendErrorResponse(ctx, http.StatusServiceUnavailable, ErrorServiceUnavailable)
		case errors.Is(err, domain.ErrInvalidRefreshToken):
			return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorInvalidRefreshToken)
		default:
			return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorInvalidRefreshToken)
		}
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.AccessTokenResponse{AccessToken: accessToken}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Logout обрабатывает запрос на выход. Access токен текущего запроса
// помещается в денилист; при недоступности хранилища выход не
// подтверждается.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, middleware.ErrorUnauthorized)
	}

	if err := h.authUseCase.Logout(requestCtx, principal.Token); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToLogout)
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "logged out successfully",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// SecurityQuestion возвращает секретный вопрос для email из параметра запроса.
func (h *Handler) SecurityQuestion(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSecurityQuestion)

	email := ctx.Query("email")
	if email == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email is required")
	}

	question, err := h.authUseCase.SecurityQuestion(requestCtx, email)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, entities.ErrUserNotFound) || errors.Is(err, entities.ErrNoSecurityQuestion) {
			return sendErrorResponse(ctx, http.StatusNotFound, err.Error())
		}
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.SecurityQuestionResponse{SecurityQuestion: question}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ResetPassword сбрасывает пароль по ответу на секретный вопрос.
func (h *Handler) ResetPassword(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerResetPassword)

	var req dto.ResetPasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.SecurityAnswer == "" || req.NewPassword == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email, security answer and new password are required")
	}

	if err := h.authUseCase.ResetPassword(requestCtx, req.Email, req.SecurityAnswer, req.NewPassword); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		switch {
		case errors.Is(err, entities.ErrUserNotFound):
			return sendErrorResponse(ctx, http.StatusNotFound, entities.ErrUserNotFound.Error())
		case errors.Is(err, entities.ErrInvalidSecurityAnswer):
			return sendErrorResponse(ctx, http.StatusUnauthorized, entities.ErrInvalidSecurityAnswer.Error())
		case errors.Is(err, entities.ErrPasswordTooShort), errors.Is(err, entities.ErrPasswordTooWeak):
			return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		default:
			return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
		}
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "password reset successfully",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
