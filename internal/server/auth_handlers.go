package server

import (
	"mayz/internal/auth"
	"mayz/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /login. The request is form-encoded in the OAuth2
// password-flow shape: username and password fields.
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if username == "" || password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	if err := s.gate.Authenticate(user, password); err != nil {
		c.Set("WWW-Authenticate", "Bearer")
		return s.mapServiceError(c, err)
	}

	token, err := s.gate.IssueToken(user)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me handles GET /login/me, returning the authenticated user's projection.
func (s *Server) Me(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	return c.Status(fiber.StatusOK).JSON(user.Read())
}
