package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mayz/internal/config"
	"mayz/internal/database"
	"mayz/internal/models"
)

func setupTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:        "unit-test-secret-key-of-decent-length",
		JWTExpireMinutes: 30,
		Env:              "test",
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)

	return app, s
}

// createUser signs a user up through the service layer and returns the user
// with a valid bearer token.
func createUser(t *testing.T, s *Server, username string) (*models.User, string) {
	t.Helper()

	user, err := s.userService.Signup(t.Context(), models.UserCreate{
		Username: username,
		Email:    username + "@example.com",
		Nickname: username,
		Password: "password-" + username,
	})
	require.NoError(t, err)

	token, err := s.gate.IssueToken(user)
	require.NoError(t, err)

	return user, token
}

func createMay(t *testing.T, s *Server, owner *models.User, title string) *models.May {
	t.Helper()

	may, err := s.mayService.Create(t.Context(), owner, models.MayCreate{
		Title:   title,
		Content: "content of " + title,
	})
	require.NoError(t, err)
	return may
}

func jsonRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func formRequest(t *testing.T, target string, form url.Values) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
