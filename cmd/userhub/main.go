package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpServer "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/postgres"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/redis"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/app"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/config"
	postgresDB "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/db/postgres"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "USERHUB_LOGGER_MODE"
	EnvLoggerLevel = "USERHUB_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectPostgres      = "failed to connect to postgres"
	ErrApplyMigrations      = "failed to apply migrations"
	ErrDecodeSigningKey     = "failed to decode token signing key"
	ErrCreateTokenStore     = "failed to create token store"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "user hub service started"
	LogServiceShutdownDone = "user hub service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogApplyingMigrations  = "applying database migrations"
	LogInitTokenStore      = "initializing token store"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingTokenStore   = "closing token store connection"
	LogClosingDatabase     = "closing database connection"
)

// Путь к миграциям базы данных.
const migrationsPath = "migrations/userhub"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := postgresDB.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrConnectPostgres, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogApplyingMigrations)
		if err := postgresDB.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), migrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitTokenStore)
		tokenStore, err := redis.NewTokenStore(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateTokenStore, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		signingKey, err := cfg.JWT.GetSigningKey()
		if err != nil {
			log.Error(ctx, ErrDecodeSigningKey, zap.Error(err))
			exitCode = 1
			return
		}

		serviceFactory := services.NewServiceFactory(
			signingKey,
			cfg.JWT.GetAccessTokenTTL(),
			cfg.JWT.GetRefreshTokenTTL(),
			cfg.JWT.BCryptCost,
		)
		passwordService := serviceFactory.PasswordService()
		tokenService := serviceFactory.TokenService()

		userRepo := postgres.NewUserRepository(database.Pool())

		authUseCase := app.NewAuthUseCase(userRepo, tokenStore, passwordService, tokenService)
		userUseCase := app.NewUserUseCase(userRepo, passwordService)
		healthUseCase := app.NewHealthUseCase(database, tokenStore)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, httpServer.Dependencies{
			AuthUseCase:   authUseCase,
			UserUseCase:   userUseCase,
			HealthUseCase: healthUseCase,
			TokenService:  tokenService,
			TokenStore:    tokenStore,
			UserRepo:      userRepo,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие соединения с хранилищем токенов.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingTokenStore)
				return tokenStore.Close()
			},
			// Закрытие пула соединений с базой данных.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
