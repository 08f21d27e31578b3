package server

import (
	"github.com/gofiber/fiber/v2"

	"pokehaven/internal/models"
)

// WonderTrade handles POST /api/trade/wonder
func (s *Server) WonderTrade(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID           string `json:"userId"`
		PokemonIDToTrade string `json:"pokemonIdToTrade"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	result, err := s.tradeService.WonderTrade(ctx, req.UserID, req.PokemonIDToTrade)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, result)
}
