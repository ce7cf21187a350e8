// Package postgres содержит реализации репозиториев поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/repositories"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// uniqueViolationCode - код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolationCode = "23505"

// PgxPoolInterface абстрагирует пул pgx для подмены в тестах.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, username, password_hash, security_question, security_answer_hash, roles, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var roles []string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.SecurityQuestion,
		&user.SecurityAnswerHash,
		&roles,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Roles = make([]entities.Role, 0, len(roles))
	for _, role := range roles {
		user.Roles = append(user.Roles, entities.Role(role))
	}

	return &user, nil
}

func rolesToStrings(roles []entities.Role) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// FindAll возвращает всех пользователей, отсортированных по времени создания.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindAll"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY created_at
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, "error scanning user row", zap.Error(err))
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating user rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (email, username, password_hash, security_question, security_answer_hash, roles)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + userColumns + `
    `

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.SecurityQuestion,
		user.SecurityAnswerHash,
		rolesToStrings(user.Roles),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "duplicate email", zap.String("email", user.Email))
			return nil, entities.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Update обновляет информацию о пользователе.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE users
        SET email = $2, username = $3, password_hash = $4,
            security_question = $5, security_answer_hash = $6, roles = $7, updated_at = $8
        WHERE id = $1
        RETURNING ` + userColumns + `
    `

	now := time.Now().UTC()

	updated, err := scanUser(r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.SecurityQuestion,
		user.SecurityAnswerHash,
		rolesToStrings(user.Roles),
		now,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", user.ID))
			return nil, entities.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "duplicate email", zap.String("email", user.Email))
			return nil, entities.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updated, nil
}

// Delete удаляет пользователя по ID.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	query := `DELETE FROM users WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "user not found", zap.String("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}
