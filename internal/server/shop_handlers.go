package server

import (
	"github.com/gofiber/fiber/v2"

	"pokehaven/internal/models"
	"pokehaven/internal/service"
)

// BuyItem handles POST /api/shop/buy
func (s *Server) BuyItem(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID   string `json:"userId"`
		ItemKey  string `json:"itemKey"`
		Quantity int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	result, err := s.economyService.Buy(ctx, service.BuyInput{
		UserID:   req.UserID,
		ItemKey:  req.ItemKey,
		Quantity: req.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, result)
}
