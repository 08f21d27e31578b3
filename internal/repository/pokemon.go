package repository

import (
	"context"
	"errors"

	"pokehaven/internal/models"

	"gorm.io/gorm"
)

// PokemonRepository defines persistence operations for owned creatures.
type PokemonRepository interface {
	GetOwned(ctx context.Context, trainerID uint, id string) (*models.Pokemon, error)
	ListByTrainer(ctx context.Context, trainerID uint, limit, offset int) ([]models.Pokemon, error)
	ListAllByTrainer(ctx context.Context, trainerID uint) ([]models.Pokemon, error)
	ListByIDs(ctx context.Context, trainerID uint, ids []string) ([]models.Pokemon, error)
	CountByTrainer(ctx context.Context, trainerID uint) (int64, error)
	HasSpecies(ctx context.Context, trainerID uint, pokedexID int, excludeID string) (bool, error)
	Create(ctx context.Context, p *models.Pokemon) error
	Update(ctx context.Context, p *models.Pokemon) error
}

type pokemonRepository struct {
	db *gorm.DB
}

// NewPokemonRepository returns a new PokemonRepository implementation.
func NewPokemonRepository(db *gorm.DB) PokemonRepository {
	return &pokemonRepository{db: db}
}

// GetOwned fetches a creature and verifies ownership in one query.
func (r *pokemonRepository) GetOwned(ctx context.Context, trainerID uint, id string) (*models.Pokemon, error) {
	var p models.Pokemon
	if err := r.db.WithContext(ctx).
		Where("id = ? AND trainer_id = ?", id, trainerID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Pokemon", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &p, nil
}

func (r *pokemonRepository) ListByTrainer(ctx context.Context, trainerID uint, limit, offset int) ([]models.Pokemon, error) {
	var list []models.Pokemon
	if err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("caught_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return list, nil
}

// ListAllByTrainer loads the entire collection in capture order. The
// duplicate sweep partitions over the full list, so no pagination here.
func (r *pokemonRepository) ListAllByTrainer(ctx context.Context, trainerID uint) ([]models.Pokemon, error) {
	var list []models.Pokemon
	if err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("caught_at ASC").
		Find(&list).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return list, nil
}

func (r *pokemonRepository) ListByIDs(ctx context.Context, trainerID uint, ids []string) ([]models.Pokemon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Pokemon
	if err := r.db.WithContext(ctx).
		Where("trainer_id = ? AND id IN ?", trainerID, ids).
		Find(&list).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return list, nil
}

func (r *pokemonRepository) CountByTrainer(ctx context.Context, trainerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Pokemon{}).
		Where("trainer_id = ?", trainerID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// HasSpecies reports whether the trainer owns any creature of the species,
// ignoring the row named by excludeID. Pass an empty excludeID to count all.
func (r *pokemonRepository) HasSpecies(ctx context.Context, trainerID uint, pokedexID int, excludeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Pokemon{}).
		Where("trainer_id = ? AND pokedex_id = ? AND id <> ?", trainerID, pokedexID, excludeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *pokemonRepository) Create(ctx context.Context, p *models.Pokemon) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *pokemonRepository) Update(ctx context.Context, p *models.Pokemon) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

