package server

import (
	"github.com/gofiber/fiber/v2"

	"pokehaven/internal/models"
)

// IssueToken handles POST /api/auth/token
// A development stand-in for the OAuth exchange: it upserts the trainer for
// the given external identity and returns a signed bearer token for it.
func (s *Server) IssueToken(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	trainer, err := s.trainerService.EnsureTrainer(ctx, req.UserID, req.Username)
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.issueJWT(trainer.UserID)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return respondSuccess(c, fiber.StatusOK, fiber.Map{
		"token":   token,
		"trainer": trainer,
	})
}
