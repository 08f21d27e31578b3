package repository

import (
	"context"
	"errors"

	"pokehaven/internal/models"

	"gorm.io/gorm"
)

// GalleryRepository defines persistence operations for gallery posts and likes.
type GalleryRepository interface {
	Create(ctx context.Context, post *models.GalleryPost) error
	GetByID(ctx context.Context, id uint, currentTrainerID uint) (*models.GalleryPost, error)
	List(ctx context.Context, limit, offset int, currentTrainerID uint) ([]*models.GalleryPost, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, trainerID, postID uint) (bool, error)
	Like(ctx context.Context, trainerID, postID uint) error
	Unlike(ctx context.Context, trainerID, postID uint) error
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository returns a new GalleryRepository implementation.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

// applyPostDetails attaches the computed likes_count and has_liked columns.
func (r *galleryRepository) applyPostDetails(db *gorm.DB, currentTrainerID uint) *gorm.DB {
	selectQuery := "gallery_posts.*, " +
		"(SELECT COUNT(*) FROM gallery_likes WHERE gallery_likes.post_id = gallery_posts.id AND gallery_likes.deleted_at IS NULL) as likes_count"

	if currentTrainerID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM gallery_likes WHERE gallery_likes.post_id = gallery_posts.id AND gallery_likes.trainer_id = ? AND gallery_likes.deleted_at IS NULL) as has_liked",
			currentTrainerID)
	}
	return db.Select(selectQuery + ", false as has_liked")
}

func (r *galleryRepository) Create(ctx context.Context, post *models.GalleryPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *galleryRepository) GetByID(ctx context.Context, id uint, currentTrainerID uint) (*models.GalleryPost, error) {
	var post models.GalleryPost
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentTrainerID).
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Gallery post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *galleryRepository) List(ctx context.Context, limit, offset int, currentTrainerID uint) ([]*models.GalleryPost, error) {
	var posts []*models.GalleryPost
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentTrainerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.GalleryPost{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *galleryRepository) IsLiked(ctx context.Context, trainerID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GalleryLike{}).
		Where("trainer_id = ? AND post_id = ?", trainerID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *galleryRepository) Like(ctx context.Context, trainerID, postID uint) error {
	like := models.GalleryLike{TrainerID: trainerID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		// A concurrent duplicate like is not an error; the toggle is idempotent.
		if isUniqueConstraintError(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *galleryRepository) Unlike(ctx context.Context, trainerID, postID uint) error {
	// Hard delete so the unique index allows re-liking later.
	if err := r.db.WithContext(ctx).
		Unscoped().
		Where("trainer_id = ? AND post_id = ?", trainerID, postID).
		Delete(&models.GalleryLike{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
