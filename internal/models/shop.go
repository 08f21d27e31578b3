package models

// Ball tiers used by the daily reward tables.
const (
	BallTierCommon = "common"
	BallTierRare   = "rare"
)

// ShopItem describes one purchasable ball kind.
type ShopItem struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Cost  int    `json:"cost"`
	Tier  string `json:"tier"`
	Promo bool   `json:"promo"`
}

// BallCatalog is the fixed set of seven ball kinds. Promo-eligible items
// grant one bonus ball per full 10-unit purchase block.
var BallCatalog = []ShopItem{
	{Key: "pokeball", Name: "Poké Ball", Cost: 50, Tier: BallTierCommon, Promo: true},
	{Key: "greatball", Name: "Great Ball", Cost: 150, Tier: BallTierCommon, Promo: true},
	{Key: "ultraball", Name: "Ultra Ball", Cost: 400, Tier: BallTierCommon, Promo: false},
	{Key: "safariball", Name: "Safari Ball", Cost: 600, Tier: BallTierCommon, Promo: false},
	{Key: "premierball", Name: "Premier Ball", Cost: 800, Tier: BallTierRare, Promo: false},
	{Key: "luxuryball", Name: "Luxury Ball", Cost: 1200, Tier: BallTierRare, Promo: false},
	{Key: "masterball", Name: "Master Ball", Cost: 15000, Tier: BallTierRare, Promo: false},
}

// ShopItemByKey looks up a catalog entry. The bool reports whether it exists.
func ShopItemByKey(key string) (ShopItem, bool) {
	for _, item := range BallCatalog {
		if item.Key == key {
			return item, true
		}
	}
	return ShopItem{}, false
}

// BallKinds returns all catalog keys in order.
func BallKinds() []string {
	kinds := make([]string, len(BallCatalog))
	for i, item := range BallCatalog {
		kinds[i] = item.Key
	}
	return kinds
}

// BallKindsByTier returns catalog keys for a tier in order.
func BallKindsByTier(tier string) []string {
	var kinds []string
	for _, item := range BallCatalog {
		if item.Tier == tier {
			kinds = append(kinds, item.Key)
		}
	}
	return kinds
}

// EmptyBallInventory returns an inventory with every catalog kind present at
// zero. Use it to normalize a null balls column without granting anything.
func EmptyBallInventory() BallInventory {
	inv := make(BallInventory, len(BallCatalog))
	for _, item := range BallCatalog {
		inv[item.Key] = 0
	}
	return inv
}

// NewBallInventory returns the starter allotment granted when an account is
// first created.
func NewBallInventory() BallInventory {
	inv := EmptyBallInventory()
	inv["pokeball"] = 5
	return inv
}
