package cooldown

import "time"

const (
	// DefaultCooldownDuration is the fallback cooldown when no specific duration is configured
	DefaultCooldownDuration = 5 * time.Minute
)

// Hash Constants
const (
	// HashSeparator is the separator used when combining playerID and action for advisory lock hashing
	HashSeparator = ":"

	// HashMaskPositiveInt64 is the bit mask to ensure advisory lock keys are positive int64 values
	// This masks the MSB to avoid overflow warnings and ensure PostgreSQL compatibility
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// SQL Query Constants
const (
	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	// SQLSelectLastUsed retrieves the last used timestamp for a player action
	SQLSelectLastUsed = `
		SELECT last_used_at
		FROM player_cooldowns
		WHERE player_id = $1 AND action_name = $2
	`

	// SQLDeleteCooldown removes a cooldown record for a player action
	SQLDeleteCooldown = `DELETE FROM player_cooldowns WHERE player_id = $1 AND action_name = $2`

	// SQLUpsertCooldown inserts or updates a cooldown timestamp
	SQLUpsertCooldown = `
		INSERT INTO player_cooldowns (player_id, action_name, last_used_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, action_name) DO UPDATE
		SET last_used_at = EXCLUDED.last_used_at
	`
)

// Error Message Constants
const (
	ErrMsgCheckCooldownFailed     = "failed to check cooldown: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgAcquireLockFailed       = "failed to acquire advisory lock: %w"
	ErrMsgGetCooldownTxFailed     = "failed to get cooldown within transaction: %w"
	ErrMsgUpdateCooldownFailed    = "failed to update cooldown: %w"
	ErrMsgCommitTransactionFailed = "failed to commit cooldown transaction: %w"
	ErrMsgResetCooldownFailed     = "failed to reset cooldown: %w"
	ErrMsgGetLastUsedFailed       = "failed to get last used: %w"
)

// Log Message Constants
const (
	// LogMsgDevModeBypass is logged when dev mode bypasses cooldown enforcement
	LogMsgDevModeBypass = "DEV_MODE: Bypassing cooldown enforcement"

	// LogMsgRaceConditionDetected is logged when concurrent cooldown requests create a race condition
	LogMsgRaceConditionDetected = "Race condition detected - concurrent request on cooldown"

	// LogMsgCooldownEnforced is logged when cooldown is successfully enforced and updated
	LogMsgCooldownEnforced = "Cooldown enforced successfully"
)

// Time Conversion Constants
const (
	// SecondsPerMinute is used for time duration calculations
	SecondsPerMinute = 60
)
