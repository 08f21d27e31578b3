package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"pokehaven/internal/cache"
	"pokehaven/internal/middleware"
	"pokehaven/internal/models"
	"pokehaven/internal/repository"

	"gorm.io/gorm"
)

// Buy limits and promo rules.
const (
	maxBuyQuantity = 100
	promoBlockSize = 10
)

// Daily reward table.
const (
	dailyMoneyMin    = 10
	dailyMoneyMax    = 1000
	dailyRareChance  = 5 // percent
	dailyBallQtyMin  = 1
	dailyBallQtyMax  = 2
)

// EconomyService orchestrates the money-and-inventory operations: shop buys,
// single sells, the duplicate sweep and the daily claim. Mutations on a
// trainer run inside one transaction so a partial failure never leaves the
// balance and collection out of step.
type EconomyService struct {
	trainerRepo repository.TrainerRepository
	pokemonRepo repository.PokemonRepository
	db          *gorm.DB

	intn func(n int) int
	now  func() time.Time
}

func NewEconomyService(trainerRepo repository.TrainerRepository, pokemonRepo repository.PokemonRepository, db *gorm.DB) *EconomyService {
	return &EconomyService{
		trainerRepo: trainerRepo,
		pokemonRepo: pokemonRepo,
		db:          db,
		intn:        rand.Intn,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type BuyInput struct {
	UserID   string
	ItemKey  string
	Quantity int
}

type BuyResult struct {
	Balance    int                  `json:"balance"`
	Balls      models.BallInventory `json:"balls"`
	BonusBalls models.BallInventory `json:"bonusBalls,omitempty"`
}

// Buy validates funds and the catalog entry before mutating anything, then
// debits the balance, credits the inventory and applies the promo bonus.
func (s *EconomyService) Buy(ctx context.Context, in BuyInput) (*BuyResult, error) {
	item, ok := models.ShopItemByKey(in.ItemKey)
	if !ok {
		return nil, models.NewValidationError("Unknown shop item: " + in.ItemKey)
	}
	if in.Quantity < 1 {
		return nil, models.NewValidationError("Quantity must be at least 1")
	}
	if in.Quantity > maxBuyQuantity {
		return nil, models.NewValidationError(fmt.Sprintf("Quantity must be at most %d", maxBuyQuantity))
	}

	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	cost := item.Cost * in.Quantity
	if trainer.Money < cost {
		return nil, models.NewPolicyError("Insufficient funds")
	}

	if trainer.Balls == nil {
		trainer.Balls = models.EmptyBallInventory()
	}
	trainer.Money -= cost
	trainer.Balls[item.Key] += in.Quantity

	// Promo: one random bonus ball per full 10-unit block.
	bonus := models.BallInventory{}
	if item.Promo {
		kinds := models.BallKinds()
		for i := 0; i < in.Quantity/promoBlockSize; i++ {
			kind := kinds[s.intn(len(kinds))]
			bonus[kind]++
			trainer.Balls[kind]++
		}
	}

	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, err
	}

	result := &BuyResult{Balance: trainer.Money, Balls: trainer.Balls}
	if len(bonus) > 0 {
		result.BonusBalls = bonus
	}
	return result, nil
}

type SellResult struct {
	Price   int `json:"price"`
	Balance int `json:"balance"`
}

// SellPokemon sells a single creature. The companion is protected.
func (s *EconomyService) SellPokemon(ctx context.Context, userID, pokemonID string) (*SellResult, error) {
	if pokemonID == "" {
		return nil, models.NewValidationError("pokemonIdToSell is required")
	}

	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	if trainer.HasCompanion(pokemonID) {
		return nil, models.NewPolicyError("Your companion cannot be sold")
	}

	p, err := s.pokemonRepo.GetOwned(ctx, trainer.ID, pokemonID)
	if err != nil {
		return nil, err
	}

	price := p.SalePrice()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Pokemon{}, "id = ?", p.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Trainer{}).
			Where("id = ?", trainer.ID).
			Update("money", gorm.Expr("money + ?", price)).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateTrainer(ctx, userID)
	middleware.PokemonSold.WithLabelValues("single").Inc()

	return &SellResult{Price: price, Balance: trainer.Money + price}, nil
}

type SweepResult struct {
	SoldCount int `json:"soldCount"`
	KeptCount int `json:"keptCount"`
	Earnings  int `json:"earnings"`
	Balance   int `json:"balance"`
}

// SellDuplicates runs the duplicate sweep over the full collection: shinies
// and the companion are kept, one best creature per species is kept, the
// rest are sold at once. Selling nothing is reported as a no-op policy error
// and leaves all state untouched.
func (s *EconomyService) SellDuplicates(ctx context.Context, userID string) (*SweepResult, error) {
	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	collection, err := s.pokemonRepo.ListAllByTrainer(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}

	companionID := ""
	if trainer.CompanionPokemonID != nil {
		companionID = *trainer.CompanionPokemonID
	}

	part := models.PartitionDuplicates(collection, companionID)
	if len(part.Sell) == 0 {
		return nil, models.NewPolicyError("No duplicates eligible for sale")
	}

	earnings := part.SaleValue()
	sellIDs := make([]string, len(part.Sell))
	for i := range part.Sell {
		sellIDs[i] = part.Sell[i].ID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Pokemon{}, "id IN ?", sellIDs).Error; err != nil {
			return err
		}
		return tx.Model(&models.Trainer{}).
			Where("id = ?", trainer.ID).
			Update("money", gorm.Expr("money + ?", earnings)).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateTrainer(ctx, userID)
	middleware.PokemonSold.WithLabelValues("sweep").Add(float64(len(part.Sell)))

	return &SweepResult{
		SoldCount: len(part.Sell),
		KeptCount: len(part.Keep),
		Earnings:  earnings,
		Balance:   trainer.Money + earnings,
	}, nil
}

type DailyResult struct {
	Money     int                  `json:"money"`
	Balls     models.BallInventory `json:"balls"`
	Balance   int                  `json:"balance"`
	NextClaim time.Time            `json:"nextClaim"`
}

// ClaimDaily grants the daily reward if the 24-hour cooldown has elapsed.
func (s *EconomyService) ClaimDaily(ctx context.Context, userID string) (*DailyResult, error) {
	trainer, err := s.trainerRepo.GetByUserIDFresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if remaining := trainer.DailyRemaining(now); remaining > 0 {
		middleware.DailyClaims.WithLabelValues("cooldown").Inc()
		return nil, models.NewPolicyError(
			fmt.Sprintf("Daily reward already claimed, next claim in %s", remaining.Round(time.Minute)))
	}

	money := dailyMoneyMin + s.intn(dailyMoneyMax-dailyMoneyMin+1)
	balls := s.rollDailyBalls()

	if trainer.Balls == nil {
		trainer.Balls = models.EmptyBallInventory()
	}
	trainer.Money += money
	for kind, qty := range balls {
		trainer.Balls[kind] += qty
	}
	trainer.LastDaily = &now
	trainer.DailyNotified = false

	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, err
	}

	middleware.DailyClaims.WithLabelValues("granted").Inc()

	return &DailyResult{
		Money:     money,
		Balls:     balls,
		Balance:   trainer.Money,
		NextClaim: now.Add(models.DailyCooldown),
	}, nil
}

// rollDailyBalls draws the ball portion of the daily reward: 5% of the time
// one rare plus one common ball, otherwise two distinct common balls in
// random quantities.
func (s *EconomyService) rollDailyBalls() models.BallInventory {
	balls := models.BallInventory{}
	common := models.BallKindsByTier(models.BallTierCommon)
	rare := models.BallKindsByTier(models.BallTierRare)

	if s.intn(100) < dailyRareChance {
		balls[rare[s.intn(len(rare))]]++
		balls[common[s.intn(len(common))]]++
		return balls
	}

	first := s.intn(len(common))
	second := s.intn(len(common) - 1)
	if second >= first {
		second++
	}
	balls[common[first]] += dailyBallQtyMin + s.intn(dailyBallQtyMax-dailyBallQtyMin+1)
	balls[common[second]] += dailyBallQtyMin + s.intn(dailyBallQtyMax-dailyBallQtyMin+1)
	return balls
}

// DailyStatus reports whether a claim is available and the remaining wait.
type DailyStatus struct {
	Eligible  bool          `json:"eligible"`
	Remaining time.Duration `json:"remaining"`
}

func (s *EconomyService) GetDailyStatus(ctx context.Context, userID string) (*DailyStatus, error) {
	trainer, err := s.trainerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	remaining := trainer.DailyRemaining(s.now())
	return &DailyStatus{Eligible: remaining == 0, Remaining: remaining}, nil
}
