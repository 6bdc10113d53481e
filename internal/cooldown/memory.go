package cooldown

import (
	"context"
	"sync"
	"time"
)

// memoryBackend implements Service with an in-process map. Claim
// cooldowns are short-lived and per-instance, so they never need to
// survive a restart.
type memoryBackend struct {
	mu       sync.Mutex
	lastUsed map[string]time.Time
	config   Config
	now      func() time.Time
}

// NewMemoryService creates an in-memory cooldown service. A nil now
// falls back to time.Now.
func NewMemoryService(config Config, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &memoryBackend{
		lastUsed: make(map[string]time.Time),
		config:   config,
		now:      now,
	}
}

func (b *memoryBackend) key(playerID, action string) string {
	return playerID + HashSeparator + action
}

// CheckCooldown checks if a player's action is on cooldown
func (b *memoryBackend) CheckCooldown(_ context.Context, playerID, action string) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	onCooldown, remaining := b.checkLocked(playerID, action)
	return onCooldown, remaining, nil
}

// EnforceCooldown atomically checks cooldown and executes action if
// allowed. The lock is held across fn, so concurrent callers serialize
// and at most one wins per window.
func (b *memoryBackend) EnforceCooldown(_ context.Context, playerID, action string, fn func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.config.DevMode {
		if onCooldown, remaining := b.checkLocked(playerID, action); onCooldown {
			return ErrOnCooldown{Action: action, Remaining: remaining}
		}
	}

	if err := fn(); err != nil {
		// Action failed - don't consume the cooldown window
		return err
	}

	b.lastUsed[b.key(playerID, action)] = b.now()
	return nil
}

// ResetCooldown manually resets a cooldown
func (b *memoryBackend) ResetCooldown(_ context.Context, playerID, action string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.lastUsed, b.key(playerID, action))
	return nil
}

// GetLastUsed returns when action was last performed
func (b *memoryBackend) GetLastUsed(_ context.Context, playerID, action string) (*time.Time, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.lastUsed[b.key(playerID, action)]; ok {
		return &t, nil
	}
	return nil, nil
}

func (b *memoryBackend) checkLocked(playerID, action string) (bool, time.Duration) {
	var lastUsed *time.Time
	if t, ok := b.lastUsed[b.key(playerID, action)]; ok {
		lastUsed = &t
	}
	return checkCooldownInternal(b.now(), lastUsed, b.config.GetCooldownDuration(action))
}
