package service

import (
	"context"
	"math/rand"
	"time"

	"pokehaven/internal/cache"
	"pokehaven/internal/middleware"
	"pokehaven/internal/models"
	"pokehaven/internal/repository"
	"pokehaven/internal/species"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const shinyRewardChance = 100 // 1 in 100

// TradeService implements the wonder trade: give up one creature, receive a
// freshly generated one.
type TradeService struct {
	trainerRepo repository.TrainerRepository
	pokemonRepo repository.PokemonRepository
	db          *gorm.DB
	species     species.Lookup

	intn func(n int) int
	now  func() time.Time
}

func NewTradeService(trainerRepo repository.TrainerRepository, pokemonRepo repository.PokemonRepository, db *gorm.DB, lookup species.Lookup) *TradeService {
	return &TradeService{
		trainerRepo: trainerRepo,
		pokemonRepo: pokemonRepo,
		db:          db,
		species:     lookup,
		intn:        rand.Intn,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type TradeResult struct {
	Traded   string          `json:"traded"`
	Received *models.Pokemon `json:"received"`
	IsNew    bool            `json:"isNew"`
}

// WonderTrade removes the named creature and replaces it with a random one.
// The companion is protected. IsNew reports whether the received species was
// previously unseen; it drives a notification only.
func (s *TradeService) WonderTrade(ctx context.Context, userID, pokemonID string) (*TradeResult, error) {
	if pokemonID == "" {
		return nil, models.NewValidationError("pokemonIdToTrade is required")
	}

	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	if trainer.HasCompanion(pokemonID) {
		return nil, models.NewPolicyError("Your companion cannot be traded away")
	}

	outgoing, err := s.pokemonRepo.GetOwned(ctx, trainer.ID, pokemonID)
	if err != nil {
		return nil, err
	}

	received := s.GenerateReward(ctx)
	received.TrainerID = trainer.ID

	// Seen-before check excludes the creature being traded away.
	seen, err := s.pokemonRepo.HasSpecies(ctx, trainer.ID, received.PokedexID, outgoing.ID)
	if err != nil {
		return nil, err
	}
	isNew := !seen

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Pokemon{}, "id = ?", outgoing.ID).Error; err != nil {
			return err
		}
		return tx.Create(received).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateTrainer(ctx, userID)
	middleware.WonderTrades.Inc()

	return &TradeResult{
		Traded:   outgoing.ID,
		Received: received,
		IsNew:    isNew,
	}, nil
}

// GenerateReward rolls a fresh wonder-trade creature: uniform species and
// level, six uniform IVs, 1% shiny. Name lookup failure degrades to
// "Unknown" and never aborts the trade.
func (s *TradeService) GenerateReward(ctx context.Context) *models.Pokemon {
	pokedexID := models.MinPokedexID + s.intn(models.MaxPokedexID-models.MinPokedexID+1)

	return &models.Pokemon{
		ID:        uuid.NewString(),
		PokedexID: pokedexID,
		Name:      s.species.Name(ctx, pokedexID),
		Level:     1 + s.intn(models.MaxLevel),
		Shiny:     s.intn(shinyRewardChance) == 0,
		IVs: models.IVSpread{
			HP:             s.intn(models.MaxIV + 1),
			Attack:         s.intn(models.MaxIV + 1),
			Defense:        s.intn(models.MaxIV + 1),
			SpecialAttack:  s.intn(models.MaxIV + 1),
			SpecialDefense: s.intn(models.MaxIV + 1),
			Speed:          s.intn(models.MaxIV + 1),
		},
		CaughtWith: "wonder-trade",
		CaughtAt:   s.now(),
	}
}
