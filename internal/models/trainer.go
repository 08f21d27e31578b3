// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// BallInventory maps a ball kind to the number the trainer owns.
// Stored as a JSON column so the seven kinds stay a single document field,
// mirroring how the collection game treats inventory as one unit.
type BallInventory map[string]int

// FavoriteIDs is the ordered list of creature IDs shown as the trainer's team.
type FavoriteIDs []string

// MaxFavorites caps the favorite team size.
const MaxFavorites = 5

// Trainer represents a player account in Pokéhaven.
// UserID is the external identity from the OAuth provider; all API routes key
// on it rather than the numeric primary key.
type Trainer struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   string `gorm:"unique;not null;index" json:"userId"`
	Username string `gorm:"not null" json:"username"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`

	Money int           `gorm:"not null;default:500" json:"money"`
	Balls BallInventory `gorm:"serializer:json" json:"balls"`

	// CompanionPokemonID references a Pokemon row owned by this trainer.
	// Sell and trade operations must never remove the referenced creature.
	CompanionPokemonID *string     `json:"companionPokemonId,omitempty"`
	Favorites          FavoriteIDs `gorm:"serializer:json" json:"favorites"`

	LastDaily     *time.Time `json:"lastDaily,omitempty"`
	DailyNotified bool       `json:"dailyNotified"`

	IsModerator   bool `gorm:"default:false" json:"isModerator"`
	GalleryPublic bool `gorm:"default:true" json:"galleryPublic"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Pokemon []Pokemon `gorm:"foreignKey:TrainerID" json:"pokemon,omitempty"`
}

// HasCompanion reports whether id is the trainer's current companion.
func (t *Trainer) HasCompanion(id string) bool {
	return t.CompanionPokemonID != nil && *t.CompanionPokemonID == id
}

// DailyCooldown is the window between daily reward claims.
const DailyCooldown = 24 * time.Hour

// DailyRemaining returns how long until the next claim is allowed.
// Zero means the trainer is eligible now.
func (t *Trainer) DailyRemaining(now time.Time) time.Duration {
	if t.LastDaily == nil {
		return 0
	}
	elapsed := now.Sub(*t.LastDaily)
	if elapsed >= DailyCooldown {
		return 0
	}
	return DailyCooldown - elapsed
}
