package repository

import (
	"context"

	"github.com/fancards/fancards-go/internal/domain"
)

// Player defines the interface for player persistence
type Player interface {
	// RegisterPlayer atomically creates the player row together with its
	// zeroed balance and level rows.
	RegisterPlayer(ctx context.Context, player *domain.Player) error

	GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error)
	GetPlayerByDiscordID(ctx context.Context, discordID string) (*domain.Player, error)
	UpdatePlayer(ctx context.Context, player *domain.Player) error
	UpdateBackpackLevel(ctx context.Context, playerID string, level int) error
}
