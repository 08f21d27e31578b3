package service

import (
	"errors"
	"testing"
	"time"

	"pokehaven/internal/database"
	"pokehaven/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func createTestTrainer(t *testing.T, db *gorm.DB, userID string, money int) *models.Trainer {
	t.Helper()
	trainer := &models.Trainer{
		UserID:   userID,
		Username: "trainer-" + userID,
		Money:    money,
		Balls:    models.NewBallInventory(),
	}
	require.NoError(t, db.Create(trainer).Error)
	return trainer
}

func createTestPokemon(t *testing.T, db *gorm.DB, trainerID uint, override func(*models.Pokemon)) *models.Pokemon {
	t.Helper()
	p := &models.Pokemon{
		ID:        uuid.NewString(),
		TrainerID: trainerID,
		PokedexID: 25,
		Name:      "pikachu",
		Level:     10,
		CaughtAt:  time.Now().UTC(),
	}
	if override != nil {
		override(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// fixedIntn returns a roll function that replays vals and then repeats the
// last one, clamped to the requested bound.
func fixedIntn(vals ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := vals[len(vals)-1]
		if i < len(vals) {
			v = vals[i]
			i++
		}
		if v >= n {
			v = n - 1
		}
		return v
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
