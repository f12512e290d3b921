package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"devlink/internal/config"
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a testify mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret-key-for-unit-tests-only",
		JWTExpirySeconds: 3600,
		Port:             "5000",
		Env:              "test",
	}
}

func newAuthTestApp(t *testing.T, users *MockUserRepository) *fiber.App {
	t.Helper()
	srv := NewServerWithDeps(testConfig(), nil, users, nil, nil, nil)
	app := fiber.New()
	srv.SetupRoutes(app)
	return app
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeBody(t *testing.T, resp io.Reader, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp).Decode(dest))
}

func TestHandleRegister(t *testing.T) {
	t.Run("creates user and returns decodable token", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*models.User)
				u.ID = 7
				assert.Equal(t, "Jane Doe", u.Name)
				assert.NotEqual(t, "secret1", u.Password)
				assert.Contains(t, u.Avatar, "gravatar.com/avatar/")
			}).
			Return(nil)

		app := newAuthTestApp(t, users)
		req := httptest.NewRequest("POST", "/api/users", jsonBody(t, map[string]string{
			"name": "Jane Doe", "email": "jane@example.com", "password": "secret1",
		}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body tokenResponse
		decodeBody(t, resp.Body, &body)
		require.NotEmpty(t, body.Token)

		token, err := jwt.Parse(body.Token, func(t *jwt.Token) (interface{}, error) {
			return []byte(testConfig().JWTSecret), nil
		})
		require.NoError(t, err)
		sub, err := token.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "7", sub)

		users.AssertExpectations(t)
	})

	t.Run("reports every validation failure at once", func(t *testing.T) {
		users := new(MockUserRepository)
		app := newAuthTestApp(t, users)

		req := httptest.NewRequest("POST", "/api/users", jsonBody(t, map[string]string{
			"name": "", "email": "nope", "password": "abc",
		}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp.Body, &body)
		assert.Equal(t, models.CodeValidation, body.Code)
		assert.Len(t, body.Errors, 3)
		users.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate email answers 409", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Create", mock.Anything, mock.Anything).
			Return(models.NewConflictError("User already exists"))

		app := newAuthTestApp(t, users)
		req := httptest.NewRequest("POST", "/api/users", jsonBody(t, map[string]string{
			"name": "Jane", "email": "jane@example.com", "password": "secret1",
		}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})
}

func TestHandleLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 3, Name: "Jane", Email: "jane@example.com", Password: string(hash)}

	t.Run("valid credentials return token", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored, nil)

		app := newAuthTestApp(t, users)
		req := httptest.NewRequest("POST", "/api/auth", jsonBody(t, map[string]string{
			"email": "jane@example.com", "password": "secret1",
		}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body tokenResponse
		decodeBody(t, resp.Body, &body)
		assert.NotEmpty(t, body.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		app := newAuthTestApp(t, users)

		bodies := make([]string, 0, 2)
		for _, creds := range []map[string]string{
			{"email": "jane@example.com", "password": "wrongpass"},
			{"email": "ghost@example.com", "password": "secret1"},
		} {
			req := httptest.NewRequest("POST", "/api/auth", jsonBody(t, creds))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			bodies = append(bodies, string(raw))
		}
		assert.Equal(t, bodies[0], bodies[1])
	})
}

func TestAuthRequired(t *testing.T) {
	t.Run("missing token answers 401", func(t *testing.T) {
		users := new(MockUserRepository)
		app := newAuthTestApp(t, users)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/auth", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp.Body, &body)
		assert.Equal(t, "No token, authorization denied", body.Error)
	})

	t.Run("garbage token answers 401", func(t *testing.T) {
		users := new(MockUserRepository)
		app := newAuthTestApp(t, users)

		req := httptest.NewRequest("GET", "/api/auth", nil)
		req.Header.Set("x-auth-token", "not-a-jwt")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp.Body, &body)
		assert.Equal(t, "Token is not valid", body.Error)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		app := newAuthTestApp(t, users)

		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "3"})
		signed, err := forged.SignedString([]byte("different-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/auth", nil)
		req.Header.Set("x-auth-token", signed)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid x-auth-token reaches the handler", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, uint(3)).
			Return(&models.User{ID: 3, Name: "Jane", Email: "jane@example.com"}, nil)

		cfg := testConfig()
		srv := NewServerWithDeps(cfg, nil, users, nil, nil, nil)
		app := fiber.New()
		srv.SetupRoutes(app)

		token, err := srv.generateToken(3)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/auth", nil)
		req.Header.Set("x-auth-token", token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var user models.User
		decodeBody(t, resp.Body, &user)
		assert.Equal(t, uint(3), user.ID)
	})

	t.Run("Bearer fallback is accepted", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, uint(3)).
			Return(&models.User{ID: 3, Name: "Jane", Email: "jane@example.com"}, nil)

		srv := NewServerWithDeps(testConfig(), nil, users, nil, nil, nil)
		app := fiber.New()
		srv.SetupRoutes(app)

		token, err := srv.generateToken(3)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/auth", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
