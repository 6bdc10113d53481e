package config

import "time"

const (
	// Configuration file paths
	ConfigPathCharacters = "configs/characters.json"
)

// Database pool defaults
const (
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
)
