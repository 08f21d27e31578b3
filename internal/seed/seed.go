// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pokehaven/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumTrainers    int
	PokemonPerUser int
	ShouldClean    bool
}

// starterNames covers the species most generated rolls will hit during local
// development. Anything outside the map falls back to a generated name.
var starterNames = map[int]string{
	1: "bulbasaur", 4: "charmander", 7: "squirtle", 25: "pikachu",
	39: "jigglypuff", 52: "meowth", 54: "psyduck", 66: "machop",
	92: "gastly", 104: "cubone", 129: "magikarp", 133: "eevee",
	143: "snorlax", 147: "dratini", 152: "chikorita", 155: "cyndaquil",
	158: "totodile", 252: "treecko", 255: "torchic", 258: "mudkip",
	387: "turtwig", 390: "chimchar", 393: "piplup", 495: "snivy",
	498: "tepig", 501: "oshawott", 650: "chespin", 653: "fennekin",
	656: "froakie",
}

var ballKindsPool = models.BallKinds()

// Seeder creates demo trainers and collections.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder returns a Seeder bound to the provided DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded rows. Likes first, then posts, creatures and
// trainers, so foreign keys never block the wipe.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.GalleryLike{},
		&models.GalleryPost{},
		&models.Pokemon{},
		&models.Trainer{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Seed populates the database with trainers, collections and a gallery feed.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d trainers with ~%d Pokemon each...", opts.NumTrainers, opts.PokemonPerUser)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	trainers := make([]*models.Trainer, 0, opts.NumTrainers)
	for i := 0; i < opts.NumTrainers; i++ {
		trainer, err := s.CreateTrainer()
		if err != nil {
			return err
		}
		trainers = append(trainers, trainer)
	}

	// First seeded trainer moderates the gallery.
	if len(trainers) > 0 {
		trainers[0].IsModerator = true
		if err := s.db.Save(trainers[0]).Error; err != nil {
			return err
		}
	}

	for _, trainer := range trainers {
		count := 1 + rand.Intn(opts.PokemonPerUser*2)
		collection := make([]*models.Pokemon, 0, count)
		for i := 0; i < count; i++ {
			collection = append(collection, s.BuildPokemon(trainer.ID))
		}
		if err := s.db.Create(&collection).Error; err != nil {
			return err
		}

		// Most trainers pick a companion and a favorite team.
		if rand.Intn(100) < 80 {
			trainer.CompanionPokemonID = &collection[0].ID
			for i := 0; i < len(collection) && i < models.MaxFavorites; i++ {
				trainer.Favorites = append(trainer.Favorites, collection[i].ID)
			}
			if err := s.db.Save(trainer).Error; err != nil {
				return err
			}
		}
	}

	if err := s.seedGallery(trainers); err != nil {
		return err
	}

	log.Printf("Seeded %d trainers", len(trainers))
	return nil
}

// CreateTrainer persists a demo trainer with starter money and balls.
func (s *Seeder) CreateTrainer() (*models.Trainer, error) {
	trainer := &models.Trainer{
		UserID:   "seed-" + uuid.NewString(),
		Username: gofakeit.Username(),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Bio:      gofakeit.Sentence(8),
		Money:    100 + rand.Intn(5000),
		Balls:    models.NewBallInventory(),
	}
	for _, kind := range ballKindsPool {
		trainer.Balls[kind] += rand.Intn(10)
	}
	if err := s.db.Create(trainer).Error; err != nil {
		return nil, err
	}
	return trainer, nil
}

// BuildPokemon constructs a random owned creature without persisting it.
func (s *Seeder) BuildPokemon(trainerID uint) *models.Pokemon {
	pokedexID := models.MinPokedexID + rand.Intn(models.MaxPokedexID-models.MinPokedexID+1)
	name, ok := starterNames[pokedexID]
	if !ok {
		name = gofakeit.PetName()
	}

	daysBack := rand.Intn(120)
	caughtAt := time.Now().UTC().Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(rand.Intn(86400)) * time.Second)

	return &models.Pokemon{
		ID:        uuid.NewString(),
		TrainerID: trainerID,
		PokedexID: pokedexID,
		Name:      name,
		Level:     1 + rand.Intn(models.MaxLevel),
		Shiny:     rand.Intn(100) == 0,
		IVs: models.IVSpread{
			HP:             rand.Intn(models.MaxIV + 1),
			Attack:         rand.Intn(models.MaxIV + 1),
			Defense:        rand.Intn(models.MaxIV + 1),
			SpecialAttack:  rand.Intn(models.MaxIV + 1),
			SpecialDefense: rand.Intn(models.MaxIV + 1),
			Speed:          rand.Intn(models.MaxIV + 1),
		},
		CaughtWith: ballKindsPool[rand.Intn(len(ballKindsPool))],
		CaughtAt:   caughtAt,
	}
}

func (s *Seeder) seedGallery(trainers []*models.Trainer) error {
	for _, trainer := range trainers {
		if len(trainer.Favorites) == 0 || rand.Intn(100) >= 40 {
			continue
		}

		var team []models.Pokemon
		if err := s.db.Where("trainer_id = ? AND id IN ?", trainer.ID, []string(trainer.Favorites)).
			Find(&team).Error; err != nil {
			return err
		}

		post := &models.GalleryPost{
			TrainerID:  trainer.ID,
			AuthorID:   trainer.UserID,
			AuthorName: trainer.Username,
			Message:    gofakeit.Sentence(10),
			Team:       models.SnapshotTeam(team),
		}
		if err := s.db.Create(post).Error; err != nil {
			return err
		}

		// A few likes from other trainers.
		for _, liker := range trainers {
			if liker.ID == trainer.ID || rand.Intn(100) >= 30 {
				continue
			}
			like := &models.GalleryLike{TrainerID: liker.ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
