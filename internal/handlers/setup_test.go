package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/conduitapp/conduit/internal/handlers"
	"github.com/conduitapp/conduit/internal/models"
)

const testSecret = "handler-test-secret"

// newTestApp builds a Fiber app with every route registered against a fresh
// in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Article{}, &models.Comment{}); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.Register(app.Group("/api"), db, testSecret)

	return app, db
}

// doRequest runs one request through the app, optionally with a JSON body and
// a Token-scheme Authorization header.
func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Token %s", token))
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	return resp
}

// decodeJSON reads and decodes the response body into a generic map.
func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", raw, err)
	}
	return decoded
}

// registerTestUser registers an account through the API and returns its token.
func registerTestUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	body := map[string]interface{}{
		"user": map[string]interface{}{
			"username": username,
			"email":    username + "@example.com",
			"password": "password-" + username,
		},
	}
	resp := doRequest(t, app, "POST", "/api/users", body, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Registration of %s failed with status %d", username, resp.StatusCode)
	}

	payload := decodeJSON(t, resp)
	token, _ := payload["user"].(map[string]interface{})["token"].(string)
	if token == "" {
		t.Fatalf("Registration of %s returned no token", username)
	}
	return token
}

// createTestArticle publishes an article through the API and returns its slug.
func createTestArticle(t *testing.T, app *fiber.App, token, title string, tags ...string) string {
	t.Helper()

	body := map[string]interface{}{
		"article": map[string]interface{}{
			"title":       title,
			"description": "about " + title,
			"body":        "body of " + title,
			"tagList":     tags,
		},
	}
	resp := doRequest(t, app, "POST", "/api/articles", body, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Creating article %q failed with status %d", title, resp.StatusCode)
	}

	payload := decodeJSON(t, resp)
	slug, _ := payload["article"].(map[string]interface{})["slug"].(string)
	if slug == "" {
		t.Fatalf("Creating article %q returned no slug", title)
	}
	return slug
}
