// Package users содержит HTTP обработчики профиля пользователя.
package users

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/dto"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/middleware"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/api"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerGetProfile    = "users handler: get profile"
	LogHandlerUpdateProfile = "users handler: update profile"
	LogHandlerDeleteProfile = "users handler: delete profile"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
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

// Handler содержит HTTP обработчики профиля.
type Handler struct {
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика профиля.
func NewHandler(userUseCase api.UserUseCase) *Handler {
	return &Handler{
		userUseCase: userUseCase,
	}
}

// GetProfile возвращает профиль текущего пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, middleware.ErrorUnauthorized)
	}

	user, err := h.userUseCase.Profile(requestCtx, principal.User.ID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, entities.ErrUserNotFound) {
			return sendErrorResponse(ctx, http.StatusNotFound, entities.ErrUserNotFound.Error())
		}
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateProfile применяет частичные изменения к профилю текущего
// пользователя. Смена ролей через этот маршрут недоступна.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateProfile)

	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, middleware.ErrorUnauthorized)
	}

	var req dto.UpdateUserRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	changes := api.UserChanges{
		Email:            req.Email,
		Username:         req.Username,
		Password:         req.Password,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
	}

	user, err := h.userUseCase.Update(requestCtx, principal.User.ID, changes)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		switch {
		case errors.Is(err, entities.ErrUserNotFound):
			return sendErrorResponse(ctx, http.StatusNotFound, entities.ErrUserNotFound.Error())
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

	if err := ctx.Status(http.StatusOK).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// DeleteProfile удаляет учетную запись текущего пользователя.
func (h *Handler) DeleteProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteProfile)

	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, middleware.ErrorUnauthorized)
	}

	if err := h.userUseCase.Delete(requestCtx, principal.User.ID); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, entities.ErrUserNotFound) {
			return sendErrorResponse(ctx, http.StatusNotFound, entities.ErrUserNotFound.Error())
		}
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "account deleted",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
