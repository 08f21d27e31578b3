package server

import (
	"github.com/gofiber/fiber/v2"

	"pokehaven/internal/models"
)

// SellPokemon handles POST /api/sell/pokemon
func (s *Server) SellPokemon(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID          string `json:"userId"`
		PokemonIDToSell string `json:"pokemonIdToSell"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	result, err := s.economyService.SellPokemon(ctx, req.UserID, req.PokemonIDToSell)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, result)
}

// SellDuplicates handles POST /api/sell/duplicates
func (s *Server) SellDuplicates(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	result, err := s.economyService.SellDuplicates(ctx, req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, result)
}

// ClaimDaily handles POST /api/daily/claim
func (s *Server) ClaimDaily(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	result, err := s.economyService.ClaimDaily(ctx, req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, result)
}

// GetDailyStatus handles GET /api/daily/status/:userId
func (s *Server) GetDailyStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Params("userId")
	if userID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId is required"))
	}

	status, err := s.economyService.GetDailyStatus(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, status)
}
