// Package admin содержит HTTP обработчики административного управления
// пользователями. Все маршруты требуют роль ADMIN.
package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/dto"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/api"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListUsers  = "admin handler: list users"
	LogHandlerCreateUser = "admin handler: create user"
	LogHandlerUpdateUser = "admin handler: update user"
	LogHandlerDeleteUser = "admin handler: delete user"

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

// CreateUserRequest содержит данные для создания пользователя администратором.
type CreateUserRequest struct {
	dto.RegisterRequest
	Roles []string `json:"roles,omitempty"`
}

// Handler содержит HTTP обработчики администрирования.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика администрирования.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// ListUsers возвращает всех пользователей.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListUsers)

	allUsers, err := h.userUseCase.ListAll(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	responses := make([]dto.UserResponse, 0, len(allUsers))
	for _, user := range allUsers {
		responses = append(responses, dto.NewUserResponse(user))
	}

	if err := ctx.Status(http.StatusOK).JSON(responses); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// CreateUser создает пользователя с явно заданными ролями.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateUser)

	var req CreateUserRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email, username and password are required")
	}

	roles := make([]entities.Role, 0, len(req.Roles))
	for _, role := range req.Roles {
		roles = append(roles, entities.Role(role))
	}

	if _, err := h.authUseCase.Register(requestCtx, api.RegisterInput{
		Email:            req.Email,
		Username:         req.Username,
		Password:         req.Password,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		Roles:            roles,
	}); err != nil {
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

	if err := ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "user created",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateUser применяет частичные изменения к указанному пользователю,
// включая смену ролей.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateUser)

	userID := ctx.Params("user_id")
	if userID == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "user id is required")
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

	if req.Roles != nil {
		roles := make([]entities.Role, 0, len(req.Roles))
		for _, role := range req.Roles {
			roles = append(roles, entities.Role(role))
		}
		changes.Roles = roles
	}

	user, err := h.userUseCase.Update(requestCtx, userID, changes)
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

// DeleteUser удаляет указанного пользователя.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteUser)

	userID := ctx.Params("user_id")
	if userID == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "user id is required")
	}

	if err := h.userUseCase.Delete(requestCtx, userID); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, entities.ErrUserNotFound) {
			return sendErrorResponse(ctx, http.StatusNotFound, entities.ErrUserNotFound.Error())
		}
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "user deleted",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
