package service

import (
	"context"
	"strings"

	"pokehaven/internal/cache"
	"pokehaven/internal/models"
	"pokehaven/internal/repository"
)

// EvolutionMinLevel gates companion evolution.
const EvolutionMinLevel = 16

// CompanionService manages the protected companion designation and its
// evolution.
type CompanionService struct {
	trainerRepo repository.TrainerRepository
	pokemonRepo repository.PokemonRepository
}

func NewCompanionService(trainerRepo repository.TrainerRepository, pokemonRepo repository.PokemonRepository) *CompanionService {
	return &CompanionService{
		trainerRepo: trainerRepo,
		pokemonRepo: pokemonRepo,
	}
}

// SetCompanion designates an owned creature as the companion.
func (s *CompanionService) SetCompanion(ctx context.Context, userID, pokemonID string) (*models.Trainer, error) {
	if pokemonID == "" {
		return nil, models.NewValidationError("pokemonId is required")
	}

	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.pokemonRepo.GetOwned(ctx, trainer.ID, pokemonID); err != nil {
		return nil, err
	}

	trainer.CompanionPokemonID = &pokemonID
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

type EvolveInput struct {
	UserID  string
	NewID   int
	NewName string
}

// EvolveCompanion rewrites the companion's species and name in place. The
// companion reference and the collection row share one identity, so a single
// row update keeps both views consistent.
func (s *CompanionService) EvolveCompanion(ctx context.Context, in EvolveInput) (*models.Pokemon, error) {
	if in.NewID < models.MinPokedexID || in.NewID > models.MaxPokedexID {
		return nil, models.NewValidationError("newId must be a valid Pokédex number")
	}
	if strings.TrimSpace(in.NewName) == "" {
		return nil, models.NewValidationError("newName is required")
	}

	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if trainer.CompanionPokemonID == nil {
		return nil, models.NewValidationError("No companion is set")
	}

	companion, err := s.pokemonRepo.GetOwned(ctx, trainer.ID, *trainer.CompanionPokemonID)
	if err != nil {
		return nil, err
	}
	if companion.EffectiveLevel() < EvolutionMinLevel {
		return nil, models.NewPolicyError("Companion has not reached the evolution level yet")
	}

	companion.PokedexID = in.NewID
	companion.Name = strings.TrimSpace(in.NewName)
	if err := s.pokemonRepo.Update(ctx, companion); err != nil {
		return nil, err
	}

	cache.InvalidateTrainer(ctx, in.UserID)
	return companion, nil
}
