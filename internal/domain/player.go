package domain

import "time"

// Player represents a registered player
type Player struct {
	InternalID    string    `json:"internal_id"`
	DiscordID     string    `json:"discord_id"`
	Username      string    `json:"username"`
	BackpackLevel int       `json:"backpack_level"`
	Elevated      bool      `json:"elevated"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// Balance holds a player's currency totals
type Balance struct {
	PlayerID string `json:"player_id"`
	Silver   int    `json:"silver"`
	Star     int    `json:"star"`
	Gem      int    `json:"gem"`
	Voucher  int    `json:"voucher"`
}

// Amount returns the balance of the given currency.
func (b Balance) Amount(c Currency) int {
	switch c {
	case CurrencySilver:
		return b.Silver
	case CurrencyStar:
		return b.Star
	case CurrencyGem:
		return b.Gem
	case CurrencyVoucher:
		return b.Voucher
	}
	return 0
}

// Currency identifies one of the tracked balance columns.
type Currency string

const (
	CurrencySilver  Currency = "silver"
	CurrencyStar    Currency = "star"
	CurrencyGem     Currency = "gem"
	CurrencyVoucher Currency = "voucher"
)

// Valid reports whether the currency is one of the tracked columns.
func (c Currency) Valid() bool {
	switch c {
	case CurrencySilver, CurrencyStar, CurrencyGem, CurrencyVoucher:
		return true
	}
	return false
}

// LevelState is a player's position in the leveling curve.
type LevelState struct {
	PlayerID     string `json:"player_id"`
	CurrentLevel int    `json:"current_level"`
	CurrentXP    int    `json:"current_xp"`
	RequiredXP   int    `json:"required_xp"`
}

// InventoryItem is a stackable non-card item owned by a player.
type InventoryItem struct {
	PlayerID string `json:"player_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}
