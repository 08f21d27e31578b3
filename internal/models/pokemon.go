package models

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// Pokedex bounds for owned creatures and random rewards.
const (
	MinPokedexID = 1
	MaxPokedexID = 721
	MaxIV        = 31
	MaxLevel     = 100
)

// IVSpread holds the six individual-value rolls of a creature.
type IVSpread struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// Total returns the sum of all six rolls.
func (iv IVSpread) Total() int {
	return iv.HP + iv.Attack + iv.Defense + iv.SpecialAttack + iv.SpecialDefense + iv.Speed
}

// Pokemon represents one owned creature instance. Rows are created by capture,
// wonder trade or seeding, deleted by sell operations, and mutated in place
// only by companion evolution.
type Pokemon struct {
	ID        string `gorm:"primaryKey" json:"id"`
	TrainerID uint   `gorm:"not null;index" json:"trainer_id"`

	PokedexID int    `gorm:"not null" json:"pokedexId"`
	Name      string `gorm:"not null" json:"name"`
	Level     int    `json:"level"`
	Exp       int    `json:"exp"`

	Shiny  bool `gorm:"default:false" json:"shiny"`
	Mega   bool `gorm:"default:false" json:"mega"`
	Custom bool `gorm:"default:false" json:"custom"`

	IVs IVSpread `gorm:"embedded;embeddedPrefix:iv_" json:"ivs"`

	CaughtWith string    `json:"caughtWith"`
	CaughtAt   time.Time `json:"caughtAt"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Sale pricing constants. The shiny bonus is canonically 250.
const (
	basePrice       = 50
	pricePerLevel   = 5
	shinySaleBonus  = 250
	ivPriceDivisor  = 1.5
	defaultLevelMin = 1
)

// EffectiveLevel normalizes an unset level to 1 before it feeds any formula.
func (p *Pokemon) EffectiveLevel() int {
	if p.Level < defaultLevelMin {
		return defaultLevelMin
	}
	return p.Level
}

// SalePrice computes the currency value of selling this creature:
// base 50 + 5 per level + 250 shiny bonus + floor(total IVs / 1.5).
func (p *Pokemon) SalePrice() int {
	price := basePrice + p.EffectiveLevel()*pricePerLevel
	if p.Shiny {
		price += shinySaleBonus
	}
	price += int(float64(p.IVs.Total()) / ivPriceDivisor)
	return price
}

// DuplicatePartition is the result of splitting a collection for the
// duplicate sweep.
type DuplicatePartition struct {
	Keep []Pokemon
	Sell []Pokemon
}

// SaleValue sums the sale price over the sell set.
func (d DuplicatePartition) SaleValue() int {
	total := 0
	for i := range d.Sell {
		total += d.Sell[i].SalePrice()
	}
	return total
}

// PartitionDuplicates splits a trainer's full collection into keep and sell
// sets. Shinies and the companion are always kept. Among the remaining
// non-shiny creatures sharing a species, only the highest-level one is kept;
// level ties go to the creature that appeared first in the collection.
func PartitionDuplicates(collection []Pokemon, companionID string) DuplicatePartition {
	var part DuplicatePartition

	// Candidates carry their original index so the level tie-break is stable.
	type candidate struct {
		idx int
		p   Pokemon
	}
	bySpecies := make(map[int][]candidate)

	for i, p := range collection {
		if p.Shiny || (companionID != "" && p.ID == companionID) {
			part.Keep = append(part.Keep, p)
			continue
		}
		bySpecies[p.PokedexID] = append(bySpecies[p.PokedexID], candidate{idx: i, p: p})
	}

	species := make([]int, 0, len(bySpecies))
	for dex := range bySpecies {
		species = append(species, dex)
	}
	sort.Ints(species)

	for _, dex := range species {
		group := bySpecies[dex]
		sort.SliceStable(group, func(a, b int) bool {
			if group[a].p.Level != group[b].p.Level {
				return group[a].p.Level > group[b].p.Level
			}
			return group[a].idx < group[b].idx
		})
		part.Keep = append(part.Keep, group[0].p)
		for _, c := range group[1:] {
			part.Sell = append(part.Sell, c.p)
		}
	}

	return part
}
