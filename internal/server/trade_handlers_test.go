package server

import (
	"net/http"
	"testing"
	"time"

	"pokehaven/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func TestWonderTradeEndpoint(t *testing.T) {
	_, app, db := newTestServer(t)
	token := registerTrainer(t, app, "trader", "ash")

	var trainer models.Trainer
	if err := db.Where("user_id = ?", "trader").First(&trainer).Error; err != nil {
		t.Fatalf("load trainer: %v", err)
	}
	p := models.Pokemon{
		ID:        uuid.NewString(),
		TrainerID: trainer.ID,
		PokedexID: 25,
		Name:      "pikachu",
		Level:     10,
		CaughtAt:  time.Now().UTC(),
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create pokemon: %v", err)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/trade/wonder", token, fiber.Map{
		"userId":           "trader",
		"pokemonIdToTrade": p.ID,
	})
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Traded   string         `json:"traded"`
		Received models.Pokemon `json:"received"`
	}
	decodeJSON(t, resp.Body, &body)
	if body.Traded != p.ID {
		t.Fatalf("expected traded %s, got %s", p.ID, body.Traded)
	}
	if body.Received.ID == "" || body.Received.ID == p.ID {
		t.Fatalf("expected a fresh creature, got %q", body.Received.ID)
	}

	var count int64
	if err := db.Model(&models.Pokemon{}).Where("trainer_id = ?", trainer.ID).Count(&count).Error; err != nil {
		t.Fatalf("count collection: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected collection size 1, got %d", count)
	}
}

func TestCompanionEndpoints(t *testing.T) {
	_, app, db := newTestServer(t)
	token := registerTrainer(t, app, "keeper", "ash")

	var trainer models.Trainer
	if err := db.Where("user_id = ?", "keeper").First(&trainer).Error; err != nil {
		t.Fatalf("load trainer: %v", err)
	}
	p := models.Pokemon{
		ID:        uuid.NewString(),
		TrainerID: trainer.ID,
		PokedexID: 4,
		Name:      "charmander",
		Level:     10,
		CaughtAt:  time.Now().UTC(),
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create pokemon: %v", err)
	}

	set := doJSON(t, app, http.MethodPost, "/api/companion/set", token, fiber.Map{
		"userId":    "keeper",
		"pokemonId": p.ID,
	})
	defer func() { _ = set.Body.Close() }()
	if set.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 setting companion, got %d", set.StatusCode)
	}

	// Level 10 is below the evolution gate.
	evolve := doJSON(t, app, http.MethodPost, "/api/evolve-companion", token, fiber.Map{
		"userId":  "keeper",
		"newId":   5,
		"newName": "charmeleon",
	})
	defer func() { _ = evolve.Body.Close() }()
	if evolve.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 below the level gate, got %d", evolve.StatusCode)
	}

	// Selling the companion is blocked.
	sell := doJSON(t, app, http.MethodPost, "/api/sell/pokemon", token, fiber.Map{
		"userId":          "keeper",
		"pokemonIdToSell": p.ID,
	})
	defer func() { _ = sell.Body.Close() }()
	if sell.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 selling companion, got %d", sell.StatusCode)
	}

	if err := db.Model(&models.Pokemon{}).Where("id = ?", p.ID).Update("level", 20).Error; err != nil {
		t.Fatalf("raise level: %v", err)
	}

	evolved := doJSON(t, app, http.MethodPost, "/api/evolve-companion", token, fiber.Map{
		"userId":  "keeper",
		"newId":   5,
		"newName": "charmeleon",
	})
	defer func() { _ = evolved.Body.Close() }()
	if evolved.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", evolved.StatusCode)
	}

	var reloaded models.Pokemon
	if err := db.Where("id = ?", p.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("reload companion: %v", err)
	}
	if reloaded.PokedexID != 5 || reloaded.Name != "charmeleon" {
		t.Fatalf("expected evolved companion, got %d %q", reloaded.PokedexID, reloaded.Name)
	}
}
