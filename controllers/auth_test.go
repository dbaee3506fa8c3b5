package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localserve/localserve/models"
)

func TestRegisterProviderAndFetchIdentity(t *testing.T) {
	app := setupTestApp(t)

	reg := registerUser(t, app, "Priya Sharma", "priya@example.com", models.RoleProvider)
	assert.Equal(t, models.RoleProvider, reg.User.Role)
	assert.NotEmpty(t, reg.User.ID)
	assert.Empty(t, reg.User.Password)

	var me models.User
	r := doJSON(t, app, http.MethodGet, "/auth/me", reg.Token, nil, &me)
	require.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, reg.User.ID, me.ID)
	assert.Equal(t, models.RoleProvider, me.Role)
	assert.Equal(t, "priya@example.com", me.Email)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	app := setupTestApp(t)

	r := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"name":     "X",
		"email":    "x@example.com",
		"password": "secret123",
		"role":     "admin",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupTestApp(t)

	registerUser(t, app, "A", "dup@example.com", models.RoleCustomer)
	r := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"name":     "B",
		"email":    "dup@example.com",
		"password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusConflict, r.StatusCode)
}

func TestLoginEvictsPreviousSession(t *testing.T) {
	app := setupTestApp(t)

	reg := registerUser(t, app, "Sam", "sam@example.com", models.RoleCustomer)
	firstToken := reg.Token

	// Second login replaces the stored session.
	var second authResponse
	r := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "sam@example.com",
		"password": "secret123",
	}, &second)
	require.Equal(t, http.StatusOK, r.StatusCode)

	// The earlier token no longer matches the current session.
	r = doJSON(t, app, http.MethodGet, "/auth/me", firstToken, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)

	r = doJSON(t, app, http.MethodGet, "/auth/me", second.Token, nil, nil)
	assert.Equal(t, http.StatusOK, r.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := setupTestApp(t)

	registerUser(t, app, "Sam", "sam2@example.com", models.RoleCustomer)

	r := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "sam2@example.com",
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)

	r = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
}

func TestLogoutClearsSession(t *testing.T) {
	app := setupTestApp(t)

	reg := registerUser(t, app, "Lea", "lea@example.com", models.RoleCustomer)

	r := doJSON(t, app, http.MethodPost, "/auth/logout", reg.Token, nil, nil)
	require.Equal(t, http.StatusOK, r.StatusCode)

	r = doJSON(t, app, http.MethodGet, "/auth/me", reg.Token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
}

func TestRefreshToken(t *testing.T) {
	app := setupTestApp(t)

	reg := registerUser(t, app, "Ray", "ray@example.com", models.RoleProvider)

	var refreshed struct {
		Token string `json:"token"`
	}
	r := doJSON(t, app, http.MethodPost, "/auth/refresh", "", map[string]interface{}{
		"refreshToken": reg.RefreshToken,
	}, &refreshed)
	require.Equal(t, http.StatusOK, r.StatusCode)
	require.NotEmpty(t, refreshed.Token)

	r = doJSON(t, app, http.MethodGet, "/auth/me", refreshed.Token, nil, nil)
	assert.Equal(t, http.StatusOK, r.StatusCode)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	app := setupTestApp(t)

	r := doJSON(t, app, http.MethodGet, "/auth/me", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
}
