package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := performRequest(r, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRegisterAndLogin(t *testing.T) {
	r := setupRouter(t)

	t.Run("register returns a token and the derived user", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/auth/register", gin.H{
			"email":    "jane@example.com",
			"password": "secret123",
			"role":     "kitchen",
			"name":     "Jane",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decodeBody(t, w)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "kitchen", user["role"])
		assert.Equal(t, "Jane", user["name"])
		assert.NotEmpty(t, user["id"])
	})

	t.Run("duplicate email is a 409 with its own kind", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/auth/register", gin.H{
			"email":    "jane@example.com",
			"password": "secret123",
		}, "")
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "AccountExists", decodeBody(t, w)["kind"])
	})

	t.Run("unknown role is a 400", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/auth/register", gin.H{
			"email":    "other@example.com",
			"password": "secret123",
			"role":     "superuser",
		}, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "UnknownRole", decodeBody(t, w)["kind"])
	})

	t.Run("wrong password is a 401, not a faked session", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "jane@example.com",
			"password": "wrong-password",
		}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "InvalidCredentials", body["kind"])
		assert.Nil(t, body["token"])
	})

	t.Run("login succeeds with the right password", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "jane@example.com",
			"password": "secret123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotEmpty(t, decodeBody(t, w)["token"])
	})
}

func TestLoginRateLimited(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "jane@example.com", "customer")

	for i := 0; i < 5; i++ {
		w := performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "jane@example.com",
			"password": "wrong-password",
		}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RateLimited", decodeBody(t, w)["kind"])
}

func TestSessionEndpoint(t *testing.T) {
	r := setupRouter(t)

	t.Run("no token means unauthenticated, role absent", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/session", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["authenticated"])
		assert.Nil(t, body["user"])
	})

	t.Run("kitchen signup derives role kitchen", func(t *testing.T) {
		token := register(t, r, "cook@journeatz.com", "kitchen")
		w := performRequest(r, http.MethodGet, "/api/session", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["authenticated"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "kitchen", user["role"])
	})

	t.Run("repeated checks yield identical state", func(t *testing.T) {
		token := register(t, r, "jane@example.com", "customer")
		first := decodeBody(t, performRequest(r, http.MethodGet, "/api/session", nil, token))
		second := decodeBody(t, performRequest(r, http.MethodGet, "/api/session", nil, token))
		assert.Equal(t, first, second)
	})

	t.Run("garbage token reads as no session", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/session", nil, "garbage")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["authenticated"])
	})
}

func TestAuthorizationGates(t *testing.T) {
	r := setupRouter(t)
	customerToken := register(t, r, "jane@example.com", "customer")
	adminToken := register(t, r, "admin@example.com", "admin")

	t.Run("users list requires a token", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/users", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("users list requires the admin role", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/users", nil, customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin can list users", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/users", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 2, decodeBody(t, w)["count"])
	})

	t.Run("missing user id is a 404, not a 500", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/users/4f6b2a51-0000-0000-0000-000000000000", nil, adminToken)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.NotEmpty(t, decodeBody(t, w)["error"])
	})
}

func TestDashboardPerRole(t *testing.T) {
	r := setupRouter(t)
	for _, role := range []string{"admin", "kitchen", "driver", "customer"} {
		token := register(t, r, role+"@example.com", role)
		w := performRequest(r, http.MethodGet, "/api/dashboard", nil, token)
		require.Equal(t, http.StatusOK, w.Code, "role %s: %s", role, w.Body.String())
		assert.Equal(t, role, decodeBody(t, w)["role"])
	}
}
