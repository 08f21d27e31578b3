package server

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"pokehaven/internal/models"
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// requireSelf verifies the authenticated subject matches the userId the
// request targets. Acting on another trainer's account is always a 403.
func (s *Server) requireSelf(c *fiber.Ctx, targetUserID string) error {
	if targetUserID == "" {
		return models.NewValidationError("userId is required")
	}
	actor, _ := c.Locals("userID").(string)
	if actor != targetUserID {
		return models.NewPolicyError("You can only act on your own account")
	}
	return nil
}

// respondError maps an application error onto its HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// respondSuccess serializes payload with success=true folded in beside its
// fields, mirroring the error envelope. payload must marshal to a JSON object.
func respondSuccess(c *fiber.Ctx, status int, payload any) error {
	body := fiber.Map{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return respondError(c, models.NewInternalError(err))
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return respondError(c, models.NewInternalError(err))
		}
	}
	body["success"] = true
	return c.Status(status).JSON(body)
}
