// Package auth implements password verification, JWT issuance and the
// bearer-token middleware guarding protected routes.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mayz/internal/config"
	"mayz/internal/models"
)

// Claims is the JWT payload issued on login.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// UserSource loads users for token resolution.
type UserSource interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Gate authenticates credentials and resolves bearer tokens to users.
type Gate struct {
	secret []byte
	expiry time.Duration
	users  UserSource
}

// NewGate builds a Gate from the application config and a user source.
func NewGate(cfg *config.Config, users UserSource) *Gate {
	return &Gate{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.TokenExpiry(),
		users:  users,
	}
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext password matches the hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticate verifies the candidate user's password. A nil user and a
// wrong password produce the same error so callers cannot distinguish them.
func (g *Gate) Authenticate(user *models.User, password string) error {
	if user == nil || !CheckPasswordHash(password, user.Password) {
		return models.NewUnauthorizedError("Invalid credentials")
	}
	return nil
}

// IssueToken signs a JWT for the user. An optional expiry override replaces
// the configured lifetime; used by tests and short-lived grants.
func (g *Gate) IssueToken(user *models.User, override ...time.Duration) (string, error) {
	expiry := g.expiry
	if len(override) > 0 {
		expiry = override[0]
	}

	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mayz-api",
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// ParseToken validates a signed token and returns its claims. Every failure
// mode collapses into the same unauthorized error.
func (g *Gate) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Username == "" || claims.Email == "" {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	return claims, nil
}

// ResolveCurrentUser maps a bearer token to the stored user. A valid token
// naming a user that no longer exists is treated as invalid credentials, not
// as a missing resource.
func (g *Gate) ResolveCurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := g.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := g.users.GetByUsername(ctx, claims.Username)
	if err != nil || user == nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	return user, nil
}

// RequireActive rejects users whose account has been disabled.
func RequireActive(user *models.User) error {
	if !user.Enabled {
		return models.NewInactiveError()
	}
	return nil
}

// Required is a Fiber middleware that enforces a valid bearer token, resolves
// the user and stores it in locals for handlers downstream.
func (g *Gate) Required(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		c.Set("WWW-Authenticate", "Bearer")
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError("Authorization header required"))
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.Set("WWW-Authenticate", "Bearer")
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError("Invalid authorization header format"))
	}

	user, err := g.ResolveCurrentUser(c.UserContext(), parts[1])
	if err != nil {
		c.Set("WWW-Authenticate", "Bearer")
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	c.Locals("userID", user.ID)
	c.Locals("currentUser", user)

	return c.Next()
}

// CurrentUser returns the user resolved by Required, or nil when the route
// is not guarded.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}
