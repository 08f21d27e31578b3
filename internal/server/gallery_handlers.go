package server

import (
	"github.com/gofiber/fiber/v2"

	"pokehaven/internal/models"
	"pokehaven/internal/service"
)

// GetGallery handles GET /api/gallery
func (s *Server) GetGallery(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	posts, err := s.galleryService.ListPosts(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, fiber.Map{"posts": posts})
}

// CreateGalleryPost handles POST /api/gallery/post
func (s *Server) CreateGalleryPost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID  string `json:"userId"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	post, err := s.galleryService.CreatePost(ctx, service.CreatePostInput{
		UserID:  req.UserID,
		Message: req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusCreated, post)
}

// LikeGalleryPost handles POST /api/gallery/like
// The like is a toggle: liking an already-liked post removes the like.
func (s *Server) LikeGalleryPost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID string `json:"userId"`
		PostID uint   `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.requireSelf(c, req.UserID); err != nil {
		return respondError(c, err)
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("postId is required"))
	}

	post, err := s.galleryService.ToggleLike(ctx, req.UserID, req.PostID)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, post)
}

// DeleteGalleryPost handles DELETE /api/gallery/post/:postId
func (s *Server) DeleteGalleryPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, _ := c.Locals("userID").(string)

	postID, err := c.ParamsInt("postId")
	if err != nil || postID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	if err := s.galleryService.DeletePost(ctx, userID, uint(postID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
