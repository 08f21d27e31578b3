// Command main runs the database seeder for Pokehaven.
package main

import (
	"flag"
	"log"

	"pokehaven/internal/config"
	"pokehaven/internal/database"
	"pokehaven/internal/seed"
)

func main() {
	numTrainers := flag.Int("trainers", 25, "Number of trainers to create")
	perTrainer := flag.Int("pokemon", 20, "Average collection size per trainer")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Seed(seed.Options{
		NumTrainers:    *numTrainers,
		PokemonPerUser: *perTrainer,
		ShouldClean:    *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with demo trainers.")
}
