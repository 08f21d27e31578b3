package models

import (
	"time"

	"gorm.io/gorm"
)

// TeamSnapshot is the denormalized copy of a trainer's favorite creatures
// taken when a gallery post is created. Later changes to the creatures do not
// alter historical posts.
type TeamSnapshot []PokemonSnapshot

// PokemonSnapshot is the subset of creature data frozen into a gallery post.
type PokemonSnapshot struct {
	PokedexID int  `json:"pokedexId"`
	Name      string `json:"name"`
	Level     int  `json:"level"`
	Shiny     bool `json:"shiny"`
	Mega      bool `json:"mega"`
}

// GalleryPost represents an entry in the social gallery feed.
type GalleryPost struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	TrainerID  uint         `gorm:"not null;index" json:"trainer_id"`
	AuthorID   string       `gorm:"not null;index" json:"authorId"`
	AuthorName string       `gorm:"not null" json:"authorName"`
	Message    string       `gorm:"type:text;not null" json:"message"`
	Team       TeamSnapshot `gorm:"serializer:json" json:"team"`

	// LikesCount and HasLiked are not persisted; computed at query time.
	LikesCount int  `gorm:"->" json:"likesCount"`
	HasLiked   bool `gorm:"->" json:"hasLiked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GalleryLike represents a trainer's like on a gallery post.
// The combination of TrainerID and PostID must be unique.
type GalleryLike struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TrainerID uint           `gorm:"not null;uniqueIndex:idx_trainer_gallery_post" json:"trainer_id"`
	PostID    uint           `gorm:"not null;uniqueIndex:idx_trainer_gallery_post" json:"post_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SnapshotTeam freezes the given creatures into post form.
func SnapshotTeam(team []Pokemon) TeamSnapshot {
	snap := make(TeamSnapshot, 0, len(team))
	for _, p := range team {
		snap = append(snap, PokemonSnapshot{
			PokedexID: p.PokedexID,
			Name:      p.Name,
			Level:     p.EffectiveLevel(),
			Shiny:     p.Shiny,
			Mega:      p.Mega,
		})
	}
	return snap
}
