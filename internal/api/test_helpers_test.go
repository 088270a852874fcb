package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/caloriesapp/backend/internal/config"
	"github.com/caloriesapp/backend/internal/db"
	"github.com/caloriesapp/backend/internal/models"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:     "test-secret",
		JWTTokenTTL:   time.Hour,
		AdminUsername: "admin",
	}
}

func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, *Handler, *db.Repositories) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	handler, err := NewHandler(context.Background(), cfg, database, nil)
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler, handler.repos
}

func createAPIUser(t *testing.T, repos *db.Repositories, email string) models.User {
	t.Helper()

	user := models.User{Email: &email, Name: "Test User"}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func userBearer(t *testing.T, handler *Handler, userID uint) string {
	t.Helper()

	token, err := handler.issueUserToken(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

func authedRequest(t *testing.T, method string, target string, body io.Reader, bearer string) *http.Request {
	t.Helper()

	request := httptest.NewRequest(method, target, body)
	if body != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	request.Header.Set(fiber.HeaderAuthorization, bearer)
	return request
}
