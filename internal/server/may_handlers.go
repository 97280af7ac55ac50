package server

import (
	"mayz/internal/auth"
	"mayz/internal/models"
	"mayz/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// CreateMay handles POST /may.
func (s *Server) CreateMay(c *fiber.Ctx) error {
	var in models.MayCreate
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	may, err := s.mayService.Create(c.UserContext(), auth.CurrentUser(c), in)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(may.Read())
}

// GetMayz handles GET /may with optional search, limit and skip parameters.
// The search term filters titles case-insensitively.
func (s *Server) GetMayz(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	mayz, err := s.mayService.List(c.UserContext(), repository.MayFilter{
		Search: c.Query("search"),
		Limit:  p.Limit,
		Offset: p.Skip,
	})
	if err != nil {
		return s.mapServiceError(c, err)
	}
	if len(mayz) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(models.MayReads(mayz))
}

// GetMyMayz handles GET /may/me, listing the caller's own mayz.
func (s *Server) GetMyMayz(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	mayz, err := s.mayService.ListMine(c.UserContext(), auth.CurrentUser(c), p.Limit, p.Skip)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	if len(mayz) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(models.MayReads(mayz))
}

// GetLatestMay handles GET /may/latest.
func (s *Server) GetLatestMay(c *fiber.Ctx) error {
	may, err := s.mayService.Latest(c.UserContext())
	if err != nil {
		if models.StatusFor(err) == fiber.StatusNotFound {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(may.Read())
}

// GetMay handles GET /may/:id.
func (s *Server) GetMay(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "may ID")
	if err != nil {
		return nil
	}

	may, err := s.mayService.GetByID(c.UserContext(), id)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(may.Read())
}

// UpdateMay handles PUT /may/:id with patch semantics.
func (s *Server) UpdateMay(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "may ID")
	if err != nil {
		return nil
	}

	var in models.MayUpdate
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	may, err := s.mayService.Update(c.UserContext(), auth.CurrentUser(c), id, in)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(may.Read())
}

// DeleteMay handles DELETE /may/:id.
func (s *Server) DeleteMay(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "may ID")
	if err != nil {
		return nil
	}

	if err := s.mayService.Delete(c.UserContext(), auth.CurrentUser(c), id); err != nil {
		return s.mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
