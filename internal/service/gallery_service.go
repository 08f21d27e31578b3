package service

import (
	"context"
	"strings"

	"pokehaven/internal/cache"
	"pokehaven/internal/models"
	"pokehaven/internal/repository"
)

const maxGalleryMessageLen = 500

// GalleryService implements the social feed: posts with a frozen snapshot of
// the author's favorite team, an idempotent like toggle, and moderated
// deletion.
type GalleryService struct {
	galleryRepo repository.GalleryRepository
	trainerRepo repository.TrainerRepository
	pokemonRepo repository.PokemonRepository
}

func NewGalleryService(galleryRepo repository.GalleryRepository, trainerRepo repository.TrainerRepository, pokemonRepo repository.PokemonRepository) *GalleryService {
	return &GalleryService{
		galleryRepo: galleryRepo,
		trainerRepo: trainerRepo,
		pokemonRepo: pokemonRepo,
	}
}

type CreatePostInput struct {
	UserID  string
	Message string
}

// CreatePost publishes a gallery entry. The author's favorite team is
// denormalized into the post at write time; later changes to those creatures
// do not alter the post.
func (s *GalleryService) CreatePost(ctx context.Context, in CreatePostInput) (*models.GalleryPost, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, models.NewValidationError("Message is required")
	}
	if len(message) > maxGalleryMessageLen {
		return nil, models.NewValidationError("Message too long (max 500 characters)")
	}

	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	team, err := s.pokemonRepo.ListByIDs(ctx, trainer.ID, trainer.Favorites)
	if err != nil {
		return nil, err
	}

	post := &models.GalleryPost{
		TrainerID:  trainer.ID,
		AuthorID:   trainer.UserID,
		AuthorName: trainer.Username,
		Message:    message,
		Team:       models.SnapshotTeam(team),
	}
	if err := s.galleryRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	cache.InvalidateGalleryPages(ctx)
	return s.galleryRepo.GetByID(ctx, post.ID, trainer.ID)
}

// ListPosts returns one feed page. The anonymous feed is cacheable because
// has_liked is always false there; authenticated reads bypass the cache.
func (s *GalleryService) ListPosts(ctx context.Context, userID string, limit, offset int) ([]*models.GalleryPost, error) {
	if userID == "" {
		var posts []*models.GalleryPost
		err := cache.Aside(ctx, cache.GalleryPageKey(limit, offset), &posts, cache.GalleryTTL, func() error {
			fetched, err := s.galleryRepo.List(ctx, limit, offset, 0)
			if err != nil {
				return err
			}
			posts = fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}

	var currentTrainerID uint
	if trainer, err := s.trainerRepo.GetByUserID(ctx, userID); err == nil {
		currentTrainerID = trainer.ID
	}
	return s.galleryRepo.List(ctx, limit, offset, currentTrainerID)
}

// ToggleLike flips the caller's like on a post. Calling it twice returns the
// post to its prior state.
func (s *GalleryService) ToggleLike(ctx context.Context, userID string, postID uint) (*models.GalleryPost, error) {
	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.galleryRepo.GetByID(ctx, postID, trainer.ID); err != nil {
		return nil, err
	}

	liked, err := s.galleryRepo.IsLiked(ctx, trainer.ID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.galleryRepo.Unlike(ctx, trainer.ID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.galleryRepo.Like(ctx, trainer.ID, postID); err != nil {
			return nil, err
		}
	}

	cache.InvalidateGalleryPages(ctx)
	return s.galleryRepo.GetByID(ctx, postID, trainer.ID)
}

// DeletePost removes a post. Only the author or a moderator may delete.
func (s *GalleryService) DeletePost(ctx context.Context, userID string, postID uint) error {
	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, userID)
	if err != nil {
		return err
	}

	post, err := s.galleryRepo.GetByID(ctx, postID, trainer.ID)
	if err != nil {
		return err
	}

	if post.TrainerID != trainer.ID && !trainer.IsModerator {
		return models.NewPolicyError("Only the author or a moderator can delete this post")
	}

	if err := s.galleryRepo.Delete(ctx, postID); err != nil {
		return err
	}
	cache.InvalidateGalleryPages(ctx)
	return nil
}
