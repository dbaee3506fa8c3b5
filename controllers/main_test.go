package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/localserve/localserve/db"
	"github.com/localserve/localserve/models"
	"github.com/localserve/localserve/routes"
	"github.com/localserve/localserve/session"
)

// setupTestApp wires the full route surface against an in-memory sqlite
// database and a miniredis session store.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Service{}, &models.Booking{}))
	db.DB = gdb

	mr := miniredis.RunT(t)
	session.Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupProviderRoutes(app)
	return app
}

// doJSON performs a request with an optional JSON body and bearer token and
// decodes the response body into out when out is non-nil.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp
}

type authResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

// registerUser registers an account and returns its auth response.
func registerUser(t *testing.T, app *fiber.App, name, email string, role models.UserRole) authResponse {
	t.Helper()

	var resp authResponse
	r := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	}, &resp)
	require.Equal(t, http.StatusCreated, r.StatusCode)
	require.NotEmpty(t, resp.Token)
	return resp
}

// createService publishes a listing as the given provider token.
func createService(t *testing.T, app *fiber.App, token, title string, price float64, duration int) models.Service {
	t.Helper()

	var svc models.Service
	r := doJSON(t, app, http.MethodPost, "/services", token, map[string]interface{}{
		"title":       title,
		"description": "test listing",
		"category":    "home",
		"price":       price,
		"duration":    duration,
	}, &svc)
	require.Equal(t, http.StatusCreated, r.StatusCode)
	require.NotEmpty(t, svc.ID)
	return svc
}
