package server

import (
	"mayz/internal/auth"
	"mayz/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CastVote handles POST /vote/:mayId. A first vote inserts, an opposite vote
// flips in place, a repeated identical vote conflicts.
func (s *Server) CastVote(c *fiber.Ctx) error {
	mayID, err := s.parseID(c, "mayId", "may ID")
	if err != nil {
		return nil
	}

	var in models.VoteRequest
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	vote, err := s.voteService.Cast(c.UserContext(), auth.CurrentUser(c), mayID, in.VoteType)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(vote)
}

// GetVotes handles GET /vote, listing every vote in the system.
func (s *Server) GetVotes(c *fiber.Ctx) error {
	votes, err := s.voteService.List(c.UserContext())
	if err != nil {
		return s.mapServiceError(c, err)
	}
	if len(votes) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(votes)
}

// RemoveVote handles DELETE /vote/:mayId.
func (s *Server) RemoveVote(c *fiber.Ctx) error {
	mayID, err := s.parseID(c, "mayId", "may ID")
	if err != nil {
		return nil
	}

	if err := s.voteService.Remove(c.UserContext(), auth.CurrentUser(c), mayID); err != nil {
		return s.mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
