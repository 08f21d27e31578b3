// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"pokehaven/internal/cache"
	"pokehaven/internal/models"

	"gorm.io/gorm"
)

// TrainerRepository defines persistence operations for trainers.
type TrainerRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Trainer, error)
	GetByUserIDFresh(ctx context.Context, userID string) (*models.Trainer, error)
	Create(ctx context.Context, trainer *models.Trainer) error
	Update(ctx context.Context, trainer *models.Trainer) error
}

type trainerRepository struct {
	db *gorm.DB
}

// NewTrainerRepository returns a new TrainerRepository implementation.
func NewTrainerRepository(db *gorm.DB) TrainerRepository {
	return &trainerRepository{db: db}
}

// GetByUserID serves read paths through the cache.
func (r *trainerRepository) GetByUserID(ctx context.Context, userID string) (*models.Trainer, error) {
	var trainer models.Trainer
	key := cache.TrainerKey(userID)

	err := cache.Aside(ctx, key, &trainer, cache.TrainerTTL, func() error {
		if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&trainer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Trainer", userID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

// GetByUserIDFresh bypasses the cache. Mutating operations read through this
// so they never act on a stale balance or companion reference.
func (r *trainerRepository) GetByUserIDFresh(ctx context.Context, userID string) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&trainer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Trainer", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &trainer, nil
}

func (r *trainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	if err := r.db.WithContext(ctx).Create(trainer).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Trainer already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *trainerRepository) Update(ctx context.Context, trainer *models.Trainer) error {
	if err := r.db.WithContext(ctx).Save(trainer).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTrainer(ctx, trainer.UserID)
	return nil
}
