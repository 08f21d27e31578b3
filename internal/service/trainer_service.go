// Package service implements the business rules of the collection game.
package service

import (
	"context"
	"strings"

	"pokehaven/internal/cache"
	"pokehaven/internal/models"
	"pokehaven/internal/repository"
)

type TrainerService struct {
	trainerRepo repository.TrainerRepository
	pokemonRepo repository.PokemonRepository
}

func NewTrainerService(trainerRepo repository.TrainerRepository, pokemonRepo repository.PokemonRepository) *TrainerService {
	return &TrainerService{
		trainerRepo: trainerRepo,
		pokemonRepo: pokemonRepo,
	}
}

// Profile bundles a trainer with collection stats for the profile endpoint.
type Profile struct {
	Trainer      *models.Trainer `json:"trainer"`
	PokemonCount int64           `json:"pokemonCount"`
}

func (s *TrainerService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	trainer, err := s.trainerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.pokemonRepo.CountByTrainer(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{Trainer: trainer, PokemonCount: count}, nil
}

// EnsureTrainer finds the trainer for an external identity, creating the
// account with starter money and balls on first sight.
func (s *TrainerService) EnsureTrainer(ctx context.Context, userID, username string) (*models.Trainer, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, models.NewValidationError("userId is required")
	}

	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, userID)
	if err == nil {
		return trainer, nil
	}
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Code != "NOT_FOUND" {
		return nil, err
	}

	if strings.TrimSpace(username) == "" {
		return nil, models.NewValidationError("username is required for a new trainer")
	}
	trainer = &models.Trainer{
		UserID:   userID,
		Username: username,
		Money:    500,
		Balls:    models.NewBallInventory(),
	}
	if err := s.trainerRepo.Create(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

type collectionPage struct {
	Pokemon []models.Pokemon `json:"pokemon"`
	Total   int64            `json:"total"`
}

// ListCollection returns one page of a trainer's Pokédex. Pages are served
// through the cache; every collection or trainer mutation invalidates them.
func (s *TrainerService) ListCollection(ctx context.Context, userID string, limit, offset int) ([]models.Pokemon, int64, error) {
	trainer, err := s.trainerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var page collectionPage
	err = cache.Aside(ctx, cache.PokedexPageKey(userID, limit, offset), &page, cache.PokedexTTL, func() error {
		list, err := s.pokemonRepo.ListByTrainer(ctx, trainer.ID, limit, offset)
		if err != nil {
			return err
		}
		total, err := s.pokemonRepo.CountByTrainer(ctx, trainer.ID)
		if err != nil {
			return err
		}
		page = collectionPage{Pokemon: list, Total: total}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page.Pokemon, page.Total, nil
}

// SetFavorites replaces the trainer's favorite team. Every referenced
// creature must be owned; at most five entries.
func (s *TrainerService) SetFavorites(ctx context.Context, userID string, pokemonIDs []string) (*models.Trainer, error) {
	if len(pokemonIDs) > models.MaxFavorites {
		return nil, models.NewValidationError("Favorites are limited to 5 Pokemon")
	}
	seen := make(map[string]bool, len(pokemonIDs))
	for _, id := range pokemonIDs {
		if id == "" {
			return nil, models.NewValidationError("Favorite IDs must not be empty")
		}
		if seen[id] {
			return nil, models.NewValidationError("Favorites must be distinct")
		}
		seen[id] = true
	}

	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned, err := s.pokemonRepo.ListByIDs(ctx, trainer.ID, pokemonIDs)
	if err != nil {
		return nil, err
	}
	if len(owned) != len(pokemonIDs) {
		return nil, models.NewValidationError("All favorites must reference owned Pokemon")
	}

	trainer.Favorites = models.FavoriteIDs(pokemonIDs)
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}
