// Package http содержит компоненты HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/admin"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/auth"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/health"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/middleware"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/users"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/app"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/api"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/repositories"
	svc "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/services"
)

// Dependencies содержит зависимости HTTP слоя.
type Dependencies struct {
	AuthUseCase   api.AuthUseCase
	UserUseCase   api.UserUseCase
	HealthUseCase *app.HealthUseCase
	TokenService  svc.TokenService
	TokenStore    svc.TokenStore
	UserRepo      repositories.UserRepository
}

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(fiberApp *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.AuthUseCase)
	usersHandler := users.NewHandler(deps.UserUseCase)
	adminHandler := admin.NewHandler(deps.AuthUseCase, deps.UserUseCase)
	healthHandler := health.NewHandler(deps.HealthUseCase)

	// Middleware для всех запросов. Аутентификация выполняется для
	// каждого запроса, но сама по себе ничего не отклоняет.
	fiberApp.Use(middleware.NewRequestIDMiddleware())
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())
	fiberApp.Use(middleware.NewAuthMiddleware(deps.TokenService, deps.TokenStore, deps.UserRepo))

	// Health-проверки.
	fiberApp.Get("/healthz", healthHandler.Live)
	fiberApp.Get("/readyz", healthHandler.Ready)

	// API версии 1.
	apiV1 := fiberApp.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Get("/security-question", authHandler.SecurityQuestion)
	authRoutes.Post("/reset-password", authHandler.ResetPassword)

	// Logout требует действующий access токен.
	authRoutes.Post("/logout", authHandler.Logout, middleware.NewRequireAuth())

	// Маршруты профиля (требуют авторизации).
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.NewRequireAuth())
	userRoutes.Get("/me", usersHandler.GetProfile)
	userRoutes.Put("/me", usersHandler.UpdateProfile)
	userRoutes.Delete("/me", usersHandler.DeleteProfile)

	// Административные маршруты (требуют роль ADMIN).
	adminRoutes := apiV1.Group("/admin/users")
	adminRoutes.Use(middleware.NewRequireRole(entities.RoleAdmin))
	adminRoutes.Get("/", adminHandler.ListUsers)
	adminRoutes.Post("/", adminHandler.CreateUser)
	adminRoutes.Put("/:user_id", adminHandler.UpdateUser)
	adminRoutes.Delete("/:user_id", adminHandler.DeleteUser)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
