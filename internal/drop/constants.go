package drop

import "time"

// Claim reward tuning
const (
	// ClaimSilverDivisor scales the rarity's burn range down for claim rewards.
	ClaimSilverDivisor = 3

	ClaimXPMin = 1
	ClaimXPMax = 3
)

// SweepGracePeriod keeps expired sessions viewable before the janitor
// removes them.
const SweepGracePeriod = time.Minute

// TrollFlavorText is shown when a claimed slot turns out to hold the troll.
const TrollFlavorText = "The card crumbles in your hands. Somewhere, a troll cackles."

// Claim rejection reasons for metrics
const (
	RejectionNotFound    = "not_found"
	RejectionExpired     = "expired"
	RejectionSlotClaimed = "slot_claimed"
	RejectionCapacity    = "capacity"
	RejectionTroll       = "troll"
)

// Error messages
const (
	ErrMsgGenerateFailed      = "failed to generate drop cards: %w"
	ErrMsgGetLevelStateFailed = "failed to get level state: %w"
	ErrMsgPersistClaimFailed  = "failed to persist claimed card: %w"
)

// Log messages
const (
	LogMsgDropStarted        = "Drop started"
	LogMsgCardClaimed        = "Card claimed"
	LogMsgClaimTrolled       = "Claim hit the troll"
	LogMsgClaimWastedSlot    = "Claim rejected for capacity, slot wasted"
	LogErrClaimPersistFailed = "Failed to persist claimed card"

	LogWarnCooldownResetFailed = "Failed to reset drop cooldown after premium drop"
)
