package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/localediff/internal/db"
	"github.com/terraincognita07/localediff/internal/i18n"
	"github.com/terraincognita07/localediff/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testSecretKey     = "test-secret-key-with-at-least-32-characters"
	testAdminUsername = "admin"
	testAdminPassword = "StrongPass1"
)

type testApp struct {
	app             *fiber.App
	database        *gorm.DB
	translationsDir string
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	return newTestAppWithFilter(t, nil)
}

func newTestAppWithFilter(t *testing.T, filter *i18n.GlobFilter) testApp {
	t.Helper()

	translationsDir := filepath.Join(t.TempDir(), "translations")
	if err := os.MkdirAll(translationsDir, 0o755); err != nil {
		t.Fatalf("create translations dir: %v", err)
	}
	writeTestTranslation(t, translationsDir, "fa.json", `{"menu":{"home":"خانه","about":"درباره"},"title":"عنوان"}`)
	writeTestTranslation(t, translationsDir, "en.json", `{"menu":{"home":"Home"},"title":"Title","footer":"Footer"}`)

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "localediff-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}

	repositories := db.NewRepositories(database)
	files := services.NewTranslationFileService(translationsDir, repositories.FileChanges)
	diffs := services.NewDiffService(files, repositories.DiffRuns, filter)
	handler, err := NewHandler(files, diffs, HandlerConfig{
		SecretKey:         testSecretKey,
		AdminUsername:     testAdminUsername,
		AdminPasswordHash: string(passwordHash),
		TokenTTL:          time.Hour,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return testApp{app: app, database: database, translationsDir: translationsDir}
}

func writeTestTranslation(t *testing.T, dir string, name string, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func (env testApp) do(t *testing.T, method string, target string, body string, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (env testApp) login(t *testing.T) string {
	t.Helper()

	response := env.do(t, http.MethodPost, "/api/auth/token", `{"username":"admin","password":"StrongPass1"}`, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected token status 200, got %d", response.StatusCode)
	}
	payload := map[string]any{}
	readJSON(t, response.Body, &payload)
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatalf("expected token in response, got %#v", payload)
	}
	return token
}
