package server

import (
	"net/http"
	"testing"
	"time"

	"pokehaven/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func TestBuyEndpoint(t *testing.T) {
	_, app, db := newTestServer(t)
	token := registerTrainer(t, app, "buyer", "ash")

	resp := doJSON(t, app, http.MethodPost, "/api/shop/buy", token, fiber.Map{
		"userId":   "buyer",
		"itemKey":  "pokeball",
		"quantity": 2,
	})
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool           `json:"success"`
		Balance int            `json:"balance"`
		Balls   map[string]int `json:"balls"`
	}
	decodeJSON(t, resp.Body, &body)
	if !body.Success {
		t.Fatal("expected success envelope")
	}
	if body.Balance != 400 {
		t.Fatalf("expected balance 400, got %d", body.Balance)
	}
	if body.Balls["pokeball"] != 7 {
		t.Fatalf("expected 7 pokeballs, got %d", body.Balls["pokeball"])
	}

	var reloaded models.Trainer
	if err := db.Where("user_id = ?", "buyer").First(&reloaded).Error; err != nil {
		t.Fatalf("reload trainer: %v", err)
	}
	if reloaded.Money != 400 {
		t.Fatalf("expected persisted balance 400, got %d", reloaded.Money)
	}
}

func TestBuyEndpointInsufficientFunds(t *testing.T) {
	_, app, _ := newTestServer(t)
	token := registerTrainer(t, app, "buyer", "ash")

	// Starter money is 500; a master ball costs 15000.
	resp := doJSON(t, app, http.MethodPost, "/api/shop/buy", token, fiber.Map{
		"userId":   "buyer",
		"itemKey":  "masterball",
		"quantity": 1,
	})
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSellPokemonEndpoint(t *testing.T) {
	_, app, db := newTestServer(t)
	token := registerTrainer(t, app, "seller", "ash")

	var trainer models.Trainer
	if err := db.Where("user_id = ?", "seller").First(&trainer).Error; err != nil {
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

	resp := doJSON(t, app, http.MethodPost, "/api/sell/pokemon", token, fiber.Map{
		"userId":          "seller",
		"pokemonIdToSell": p.ID,
	})
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Price   int `json:"price"`
		Balance int `json:"balance"`
	}
	decodeJSON(t, resp.Body, &body)
	// 50 + 10*5
	if body.Price != 100 {
		t.Fatalf("expected price 100, got %d", body.Price)
	}
	if body.Balance != 600 {
		t.Fatalf("expected balance 600, got %d", body.Balance)
	}
}

func TestSellDuplicatesEndpointNoDuplicates(t *testing.T) {
	_, app, _ := newTestServer(t)
	token := registerTrainer(t, app, "sweeper", "ash")

	resp := doJSON(t, app, http.MethodPost, "/api/sell/duplicates", token, fiber.Map{
		"userId": "sweeper",
	})
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestDailyClaimEndpointCooldown(t *testing.T) {
	_, app, _ := newTestServer(t)
	token := registerTrainer(t, app, "claimer", "ash")

	first := doJSON(t, app, http.MethodPost, "/api/daily/claim", token, fiber.Map{"userId": "claimer"})
	defer func() { _ = first.Body.Close() }()
	if first.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on first claim, got %d", first.StatusCode)
	}

	second := doJSON(t, app, http.MethodPost, "/api/daily/claim", token, fiber.Map{"userId": "claimer"})
	defer func() { _ = second.Body.Close() }()
	if second.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 on second claim, got %d", second.StatusCode)
	}

	status := doJSON(t, app, http.MethodGet, "/api/daily/status/claimer", "", nil)
	defer func() { _ = status.Body.Close() }()
	if status.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from status, got %d", status.StatusCode)
	}
	var body struct {
		Eligible bool `json:"eligible"`
	}
	decodeJSON(t, status.Body, &body)
	if body.Eligible {
		t.Fatal("expected claim to be ineligible during cooldown")
	}
}

func TestGetProfileEndpoint(t *testing.T) {
	_, app, _ := newTestServer(t)
	registerTrainer(t, app, "ext-1", "ash")

	resp := doJSON(t, app, http.MethodGet, "/api/profile/ext-1", "", nil)
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	missing := doJSON(t, app, http.MethodGet, "/api/profile/nobody", "", nil)
	defer func() { _ = missing.Body.Close() }()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.StatusCode)
	}
}

func TestResponseEnvelope(t *testing.T) {
	_, app, _ := newTestServer(t)
	token := registerTrainer(t, app, "shape", "ash")

	ok := doJSON(t, app, http.MethodGet, "/api/profile/shape", "", nil)
	defer func() { _ = ok.Body.Close() }()
	var okBody map[string]any
	decodeJSON(t, ok.Body, &okBody)
	if okBody["success"] != true {
		t.Fatalf("expected success true on the happy path, got %v", okBody["success"])
	}

	bad := doJSON(t, app, http.MethodPost, "/api/shop/buy", token, fiber.Map{
		"userId":   "shape",
		"itemKey":  "beachball",
		"quantity": 1,
	})
	defer func() { _ = bad.Body.Close() }()
	var badBody map[string]any
	decodeJSON(t, bad.Body, &badBody)
	if badBody["success"] != false {
		t.Fatalf("expected success false on the error path, got %v", badBody["success"])
	}
}
