package server

import (
	"mayz/internal/auth"
	"mayz/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /user, the only public user route.
func (s *Server) Signup(c *fiber.Ctx) error {
	var in models.UserCreate
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Signup(c.UserContext(), in)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user.Read())
}

// GetUsers handles GET /user. An empty system answers 204, not an empty
// array.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	users, err := s.userService.List(c.UserContext(), p.Limit, p.Skip)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	if len(users) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(models.UserReads(users))
}

// GetLatestUser handles GET /user/latest.
func (s *Server) GetLatestUser(c *fiber.Ctx) error {
	user, err := s.userService.Latest(c.UserContext())
	if err != nil {
		if models.StatusFor(err) == fiber.StatusNotFound {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user.Read())
}

// GetUser handles GET /user/:id, including the user's recent mayz.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetWithMayz(c.UserContext(), id, 10)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user.Read())
}

// UpdateUser handles PUT /user/:id with patch semantics.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	var in models.UserUpdate
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Update(c.UserContext(), auth.CurrentUser(c), id, in)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(user.Read())
}

// DeleteUser handles DELETE /user/:id.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	if err := s.userService.Delete(c.UserContext(), auth.CurrentUser(c), id); err != nil {
		return s.mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
