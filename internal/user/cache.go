package user

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/fancards/fancards-go/internal/domain"
)

// cachedPlayerEntry wraps a player with version metadata for cache invalidation
type cachedPlayerEntry struct {
	Version  string         `json:"version"`
	Player   *domain.Player `json:"player"`
	CachedAt time.Time      `json:"cached_at"`
}

// playerCache provides an in-memory LRU cache for Discord ID lookups
// with time-based expiration and version-based invalidation to prevent stale data.
type playerCache struct {
	lru *expirable.LRU[string, *cachedPlayerEntry]
}

// newPlayerCache creates a new player cache with the specified size and TTL.
func newPlayerCache(size int, ttl time.Duration) *playerCache {
	return &playerCache{
		lru: expirable.NewLRU[string, *cachedPlayerEntry](size, nil, ttl),
	}
}

// Get retrieves a player from the cache.
// Returns (nil, false) if not cached, expired, or the schema version changed.
func (c *playerCache) Get(discordID string) (*domain.Player, bool) {
	entry, found := c.lru.Get(discordID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(discordID)
		return nil, false
	}

	return entry.Player, true
}

// Set stores a player in the cache with the current schema version.
func (c *playerCache) Set(discordID string, player *domain.Player) {
	c.lru.Add(discordID, &cachedPlayerEntry{
		Version:  CacheSchemaVersion,
		Player:   player,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a player from the cache.
func (c *playerCache) Invalidate(discordID string) {
	c.lru.Remove(discordID)
}

// Clear removes all entries from the cache.
func (c *playerCache) Clear() {
	c.lru.Purge()
}
