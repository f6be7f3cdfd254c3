package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-ticketing/internal/config"
	"github.com/iliyamo/cinema-ticketing/internal/database"
	"github.com/iliyamo/cinema-ticketing/internal/handler"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
	"github.com/iliyamo/cinema-ticketing/internal/service"
)

func newAuthHandler(t *testing.T) *handler.AuthHandler {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.InitSchema(context.Background(), db))

	svc := service.New(
		repository.NewAccountRepo(db),
		repository.NewMovieRepo(db),
		repository.NewScheduleRepo(db),
		repository.NewTicketRepo(db),
		bcrypt.MinCost,
		nil,
	)
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 30}
	return handler.NewAuthHandler(cfg, svc)
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	h := newAuthHandler(t)
	e := echo.New()
	e.POST("/v1/auth/register", h.Register)

	t.Run("CreatesAccountWithToken", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/auth/register",
			`{"username":"alice","password":"pw"}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Account struct {
				ID       uint64 `json:"id"`
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"account"`
			Access struct {
				Token string `json:"token"`
			} `json:"access"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotZero(t, resp.Account.ID)
		assert.Equal(t, "alice", resp.Account.Username)
		assert.Equal(t, repository.RoleUser, resp.Account.Role)
		assert.NotEmpty(t, resp.Access.Token)
	})

	t.Run("UnknownRoleFallsBackToUser", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/auth/register",
			`{"username":"bob","password":"pw","role":"superuser"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"USER"`)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/auth/register",
			`{"username":"alice","password":"pw2"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("MissingPassword", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/auth/register",
			`{"username":"carol"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	h := newAuthHandler(t)
	e := echo.New()
	e.POST("/v1/auth/register", h.Register)
	e.POST("/v1/auth/login", h.Login)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register",
		`{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("Success", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/auth/login",
			`{"username":"alice","password":"pw"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token"`)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/auth/login",
			`{"username":"alice","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/auth/login",
			`{"username":"mallory","password":"pw"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
