package user

import "time"

// ==================== Cache Configuration ====================

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

// ==================== Error Messages ====================

const (
	ErrMsgRegisterFailed       = "failed to register player: %w"
	ErrMsgUpdateBackpackFailed = "failed to update backpack level: %w"
	ErrMsgCountCardsFailed     = "failed to count cards: %w"
	ErrMsgGetLevelStateFailed  = "failed to get level state: %w"
	ErrMsgConsumePremiumFailed = "failed to consume premium drop item: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgRegisterCalled      = "Register called"
	LogMsgPlayerRegistered    = "Player registered"
	LogMsgPlayerCacheHit      = "Player cache hit"
	LogMsgBackpackUpgraded    = "Backpack upgraded"
	LogMsgPremiumDropConsumed = "Premium drop item consumed"
	LogErrRegisterFailed      = "Failed to register player"
)
