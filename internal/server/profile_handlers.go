package server

import (
	"github.com/gofiber/fiber/v2"

	"pokehaven/internal/models"
)

// GetProfile handles GET /api/profile/:userId
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Params("userId")
	if userID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId is required"))
	}

	profile, err := s.trainerService.GetProfile(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, profile)
}

// GetPokedex handles GET /api/pokedex/:userId
func (s *Server) GetPokedex(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Params("userId")
	if userID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId is required"))
	}

	page := parsePagination(c, 50)

	list, total, err := s.trainerService.ListCollection(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, fiber.Map{
		"pokemon": list,
		"total":   total,
		"limit":   page.Limit,
		"offset":  page.Offset,
	})
}

// SetFavorites handles POST /api/favorites/set
func (s *Server) SetFavorites(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID     string   `json:"userId"`
		PokemonIDs []string `json:"pokemonIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	trainer, err := s.trainerService.SetFavorites(ctx, req.UserID, req.PokemonIDs)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, trainer)
}
