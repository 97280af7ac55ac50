package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mayz/internal/config"
	"mayz/internal/models"
)

type stubUserSource struct {
	users map[string]*models.User
}

func (s *stubUserSource) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, models.NewNotFoundError("User", username)
}

func newTestGate(t *testing.T, users ...*models.User) *Gate {
	t.Helper()

	source := &stubUserSource{users: map[string]*models.User{}}
	for _, u := range users {
		source.users[u.Username] = u
	}

	cfg := &config.Config{
		JWTSecret:        "test-secret-key-for-auth-tests-only",
		JWTExpireMinutes: 30,
	}
	return NewGate(cfg, source)
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()

	hash, err := HashPassword(password)
	require.NoError(t, err)

	return &models.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Password: hash,
		Enabled:  true,
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22password")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22password", hash)
	assert.True(t, CheckPasswordHash("hunter22password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestAuthenticate(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	gate := newTestGate(t, user)

	assert.NoError(t, gate.Authenticate(user, "correct-horse-battery"))

	err := gate.Authenticate(user, "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewUnauthorizedError(""))
}

func TestAuthenticateNilUser(t *testing.T) {
	gate := newTestGate(t)

	err := gate.Authenticate(nil, "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewUnauthorizedError(""))
}

func TestIssueAndParseToken(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	gate := newTestGate(t, user)

	token, err := gate.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := gate.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)

	expected := time.Now().Add(30 * time.Minute)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, 2*time.Second)
}

func TestIssueTokenExpiryOverride(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	gate := newTestGate(t, user)

	token, err := gate.IssueToken(user, time.Hour)
	require.NoError(t, err)

	claims, err := gate.ParseToken(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	gate := newTestGate(t, user)

	token, err := gate.IssueToken(user, -time.Minute)
	require.NoError(t, err)

	_, err = gate.ParseToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewUnauthorizedError(""))
}

func TestParseTokenRejectsTampered(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	gate := newTestGate(t, user)

	token, err := gate.IssueToken(user)
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = gate.ParseToken(tampered)
	assert.Error(t, err)
}

func TestParseTokenRejectsIncompleteClaims(t *testing.T) {
	gate := newTestGate(t)
	now := time.Now()

	tests := []struct {
		name   string
		claims Claims
	}{
		{"missing email", Claims{Username: "alice"}},
		{"missing username", Claims{Email: "alice@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.claims.RegisteredClaims = jwt.RegisteredClaims{
				Issuer:    "mayz-api",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).
				SignedString(gate.secret)
			require.NoError(t, err)

			_, err = gate.ParseToken(signed)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.NewUnauthorizedError(""))
		})
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	gate := newTestGate(t)

	_, err := gate.ParseToken("not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewUnauthorizedError(""))
}

func TestResolveCurrentUser(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	gate := newTestGate(t, user)

	token, err := gate.IssueToken(user)
	require.NoError(t, err)

	resolved, err := gate.ResolveCurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestResolveCurrentUserDeletedAccount(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	gate := newTestGate(t, user)

	token, err := gate.IssueToken(user)
	require.NoError(t, err)

	// Simulate the account disappearing between issuance and use.
	delete(gate.users.(*stubUserSource).users, user.Username)

	_, err = gate.ResolveCurrentUser(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewUnauthorizedError(""))
}

func TestRequireActive(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	assert.NoError(t, RequireActive(user))

	user.Enabled = false
	err := RequireActive(user)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewInactiveError())
}

func TestRequiredMiddleware(t *testing.T) {
	user := testUser(t, "correct-horse-battery")
	gate := newTestGate(t, user)

	app := fiber.New()
	app.Get("/protected", gate.Required, func(c *fiber.Ctx) error {
		current := CurrentUser(c)
		require.NotNil(t, current)
		return c.JSON(fiber.Map{"username": current.Username})
	})

	t.Run("missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := gate.IssueToken(user)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
