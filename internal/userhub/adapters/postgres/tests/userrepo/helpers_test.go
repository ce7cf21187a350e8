package userrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection error")

const userColumnsPattern = "SELECT id, email, username, password_hash, security_question, security_answer_hash, roles, created_at, updated_at"

var userColumnNames = []string{
	"id", "email", "username", "password_hash",
	"security_question", "security_answer_hash", "roles",
	"created_at", "updated_at",
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), testLogger)
}

func newTestUser() entities.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return entities.User{
		ID:                 "test-user-id",
		Email:              "test@example.com",
		Username:           "testuser",
		PasswordHash:       "hashed_password",
		SecurityQuestion:   "first pet",
		SecurityAnswerHash: "hashed_answer",
		Roles:              []entities.Role{entities.RoleUser},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func userRows(user entities.User) *pgxmock.Rows {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	return pgxmock.NewRows(userColumnNames).
		AddRow(user.ID, user.Email, user.Username, user.PasswordHash,
			user.SecurityQuestion, user.SecurityAnswerHash, roles,
			user.CreatedAt, user.UpdatedAt)
}

func assertUserEquals(t *testing.T, expected, actual *entities.User) {
	t.Helper()

	require.NotNil(t, actual)
	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Email, actual.Email)
	assert.Equal(t, expected.Username, actual.Username)
	assert.Equal(t, expected.PasswordHash, actual.PasswordHash)
	assert.Equal(t, expected.SecurityQuestion, actual.SecurityQuestion)
	assert.Equal(t, expected.SecurityAnswerHash, actual.SecurityAnswerHash)
	assert.Equal(t, expected.Roles, actual.Roles)
}
