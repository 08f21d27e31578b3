package server

import (
	"github.com/gofiber/fiber/v2"

	"pokehaven/internal/models"
	"pokehaven/internal/service"
)

// SetCompanion handles POST /api/companion/set
func (s *Server) SetCompanion(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID    string `json:"userId"`
		PokemonID string `json:"pokemonId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	trainer, err := s.companionService.SetCompanion(ctx, req.UserID, req.PokemonID)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, trainer)
}

// EvolveCompanion handles POST /api/evolve-companion
func (s *Server) EvolveCompanion(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID  string `json:"userId"`
		NewID   int    `json:"newId"`
		NewName string `json:"newName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	companion, err := s.companionService.EvolveCompanion(ctx, service.EvolveInput{
		UserID:  req.UserID,
		NewID:   req.NewID,
		NewName: req.NewName,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, companion)
}
