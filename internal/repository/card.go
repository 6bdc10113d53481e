package repository

import (
	"context"

	"github.com/fancards/fancards-go/internal/domain"
)

// Card defines the interface for card persistence
type Card interface {
	// ClaimCardInTransaction atomically persists a freshly claimed card,
	// credits the silver reward, and stores the claimant's updated level
	// state.
	ClaimCardInTransaction(ctx context.Context, card *domain.Card, silver int, level *domain.LevelState) error

	// BurnCardsInTransaction atomically deletes the given cards and
	// credits the combined rewards. Returns the number of cards deleted.
	BurnCardsInTransaction(ctx context.Context, playerID string, cardIDs []string, silver, star, gems int) (int, error)

	GetPlayerCard(ctx context.Context, playerID, cardID string) (*domain.Card, error)
	GetPlayerCards(ctx context.Context, playerID string) ([]domain.Card, error)

	// FindPlayerCardsByPrefix returns cards whose ID starts with prefix,
	// newest first, for close-match resolution of partial IDs.
	FindPlayerCardsByPrefix(ctx context.Context, playerID, prefix string) ([]domain.Card, error)
	CountPlayerCards(ctx context.Context, playerID string) (int, error)
	SetCardLocked(ctx context.Context, playerID, cardID string, locked bool) error
}
