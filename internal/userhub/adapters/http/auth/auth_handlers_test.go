package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/auth"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/dto"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/http/middleware"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	domain "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/api"
)

type stubAuthUseCase struct {
	registerPair *domain.TokenPair
	registerErr  error
	loginPair    *domain.TokenPair
	loginErr     error
	refreshToken string
	refreshErr   error
	logoutErr    error
	question     string
	questionErr  error
	resetErr     error

	loggedOutToken string
}

func (s *stubAuthUseCase) Register(context.Context, api.RegisterInput) (*domain.TokenPair, error) {
	return s.registerPair, s.registerErr
}

func (s *stubAuthUseCase) Login(context.Context, string, string) (*domain.TokenPair, error) {
	return s.loginPair, s.loginErr
}

func (s *stubAuthUseCase) RefreshAccessToken(context.Context, string) (string, error) {
	return s.refreshToken, s.refreshErr
}

func (s *stubAuthUseCase) Logout(_ context.Context, accessToken string) error {
	s.loggedOutToken = accessToken
	return s.logoutErr
}

func (s *stubAuthUseCase) SecurityQuestion(context.Context, string) (string, error) {
	return s.question, s.questionErr
}

func (s *stubAuthUseCase) ResetPassword(context.Context, string, string, string) error {
	return s.resetErr
}

func testTokenPair() *domain.TokenPair {
	now := time.Now()
	return &domain.TokenPair{
		AccessToken:           "access-token",
		RefreshToken:          "refresh-token",
		AccessTokenExpiresAt:  now.Add(15 * time.Minute),
		RefreshTokenExpiresAt: now.Add(24 * time.Hour),
	}
}

func newAuthApp(useCase api.AuthUseCase) *fiber.App {
	app := fiber.New()
	handler := auth.NewHandler(useCase)

	app.Post("/register", handler.Register)
	app.Post("/login", handler.Login)
	app.Post("/refresh", handler.RefreshToken)
	app.Post("/logout", handler.Logout)
	app.Get("/security-question", handler.SecurityQuestion)
	app.Post("/reset-password", handler.ResetPassword)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, out))
}

func TestRegisterHandler(t *testing.T) {
	t.Run("successful registration returns token pair", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{registerPair: testTokenPair()})

		resp := postJSON(t, app, "/register", dto.RegisterRequest{
			Email:    "test@example.com",
			Username: "testuser",
			Password: "password123",
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got dto.TokenPairResponse
		decodeBody(t, resp, &got)
		assert.Equal(t, "access-token", got.AccessToken)
		assert.Equal(t, "refresh-token", got.RefreshToken)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{registerPair: testTokenPair()})

		resp := postJSON(t, app, "/register", dto.RegisterRequest{Email: "test@example.com"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{registerErr: entities.ErrEmailAlreadyExists})

		resp := postJSON(t, app, "/register", dto.RegisterRequest{
			Email:    "taken@example.com",
			Username: "testuser",
			Password: "password123",
		})

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("weak password rejected", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{registerErr: entities.ErrPasswordTooWeak})

		resp := postJSON(t, app, "/register", dto.RegisterRequest{
			Email:    "test@example.com",
			Username: "testuser",
			Password: "weakpassword",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("successful login returns token pair", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{loginPair: testTokenPair()})

		resp := postJSON(t, app, "/login", dto.LoginRequest{
			Email:    "test@example.com",
			Password: "password123",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got dto.TokenPairResponse
		decodeBody(t, resp, &got)
		assert.Equal(t, "access-token", got.AccessToken)
	})

	t.Run("invalid credentials return generic unauthorized", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{loginErr: entities.ErrInvalidCredentials})

		resp := postJSON(t, app, "/login", dto.LoginRequest{
			Email:    "test@example.com",
			Password: "wrongpassword",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var got map[string]string
		decodeBody(t, resp, &got)
		assert.Equal(t, auth.ErrorInvalidCredentials, got["error"])
	})
}

func TestRefreshHandler(t *testing.T) {
	t.Run("new access token issued", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{refreshToken: "new-access-token"})

		resp := postJSON(t, app, "/refresh", dto.RefreshRequest{RefreshToken: "refresh-token"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got dto.AccessTokenResponse
		decodeBody(t, resp, &got)
		assert.Equal(t, "new-access-token", got.AccessToken)
	})

	t.Run("any invalid refresh token yields the same error", func(t *testing.T) {
		for _, cause := range []error{domain.ErrInvalidRefreshToken, errors.New("details leak")} {
			app := newAuthApp(&stubAuthUseCase{refreshErr: cause})

			resp := postJSON(t, app, "/refresh", dto.RefreshRequest{RefreshToken: "bad-token"})

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var got map[string]string
			decodeBody(t, resp, &got)
			assert.Equal(t, auth.ErrorInvalidRefreshToken, got["error"])
		}
	})

	t.Run("store outage yields service unavailable", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{refreshErr: domain.ErrStoreUnavailable})

		resp := postJSON(t, app, "/refresh", dto.RefreshRequest{RefreshToken: "refresh-token"})

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})
}

func TestLogoutHandler(t *testing.T) {
	newAppWithPrincipal := func(useCase api.AuthUseCase, principal *middleware.Principal) *fiber.App {
		app := fiber.New()
		handler := auth.NewHandler(useCase)
		app.Post("/logout", handler.Logout, func(ctx fiber.Ctx) error {
			if principal != nil {
				middleware.SetPrincipal(ctx, principal)
			}
			return ctx.Next()
		})
		return app
	}

	principal := &middleware.Principal{
		User:  &entities.User{ID: "user-123", Roles: []entities.Role{entities.RoleUser}},
		Token: "current-access-token",
	}

	t.Run("blacklists the current access token", func(t *testing.T) {
		useCase := &stubAuthUseCase{}
		app := newAppWithPrincipal(useCase, principal)

		resp := postJSON(t, app, "/logout", struct{}{})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "current-access-token", useCase.loggedOutToken)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("anonymous request rejected", func(t *testing.T) {
		app := newAppWithPrincipal(&stubAuthUseCase{}, nil)

		resp := postJSON(t, app, "/logout", struct{}{})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("store outage fails the logout", func(t *testing.T) {
		app := newAppWithPrincipal(&stubAuthUseCase{logoutErr: domain.ErrStoreUnavailable}, principal)

		resp := postJSON(t, app, "/logout", struct{}{})

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var got map[string]string
		decodeBody(t, resp, &got)
		assert.Equal(t, auth.ErrorFailedToLogout, got["error"])
	})
}

func TestSecurityQuestionHandler(t *testing.T) {
	t.Run("question returned", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{question: "first pet"})

		req := httptest.NewRequest(http.MethodGet, "/security-question?email=test%40example.com", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got dto.SecurityQuestionResponse
		decodeBody(t, resp, &got)
		assert.Equal(t, "first pet", got.SecurityQuestion)
	})

	t.Run("missing email rejected", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{})

		req := httptest.NewRequest(http.MethodGet, "/security-question", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("unknown user gives not found", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{questionErr: entities.ErrUserNotFound})

		req := httptest.NewRequest(http.MethodGet, "/security-question?email=ghost%40example.com", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})
}

func TestResetPasswordHandler(t *testing.T) {
	validRequest := dto.ResetPasswordRequest{
		Email:          "test@example.com",
		SecurityAnswer: "rex",
		NewPassword:    "newpassword1",
	}

	t.Run("password reset", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{})

		resp := postJSON(t, app, "/reset-password", validRequest)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("wrong answer rejected", func(t *testing.T) {
		app := newAuthApp(&stubAuthUseCase{resetErr: entities.ErrInvalidSecurityAnswer})

		resp := postJSON(t, app, "/reset-password", validRequest)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})
}
