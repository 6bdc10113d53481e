package domain

import "time"

// Item internal name constants - stable code identifiers
const (
	ItemGlisteningGem = "glistening_gem" // awarded per shiny card burned
	ItemPremiumDrop   = "premium_drop"   // consumed to upgrade the next drop roll
)

// Action name constants for cooldown tracking
const (
	ActionClaim = "claim"
	ActionDrop  = "drop"
)

// Duration constants for cooldowns and timing
const (
	ClaimCooldownDuration = 6 * time.Second
	DropCooldownDuration  = 15 * time.Second
	DropExpiryDuration    = 10 * time.Second
)

// Drop constants
const (
	// DropSize is the number of cards generated per drop.
	DropSize = 3
)

// Leveling constants
const (
	MaxPlayerLevel = 100

	// NewUserLevelCeiling is the level below which a player rolls with
	// the new-user weight profile.
	NewUserLevelCeiling = 5
)

// Backpack constants
const (
	BackpackSlotsPerLevel = 500
	MaxBackpackLevel      = 5
)

// Shiny roll thresholds in percent, per weight profile. The new-user
// threshold is negative so the roll can never succeed.
const (
	ShinyThresholdNewUser = -1.0
	ShinyThresholdNormal  = 0.05
	ShinyThresholdPremium = 0.2

	// ShinyElevatedMultiplier doubles the threshold for elevated players.
	ShinyElevatedMultiplier = 2.0
)

// Burn constants
const (
	// BurnBonusDivisor scales a card's base value into its per-day age bonus.
	BurnBonusDivisor = 4

	// BurnBonusMaxDays caps how many days of age count toward the bonus.
	BurnBonusMaxDays = 60
)

// Card ID constants
const (
	CardIDLength = 6

	// CardIDAlphabet weights digits double relative to lowercase letters.
	CardIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz0123456789"

	// TrollCardID is the fixed ID stamped on troll cards.
	TrollCardID = "7R0115"
)

// Platform constants
const (
	PlatformDiscord = "discord"
)

// Economy constants
const (
	MaxTransactionQuantity = 10000
)
