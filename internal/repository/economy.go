package repository

import (
	"context"

	"github.com/fancards/fancards-go/internal/domain"
)

// Economy defines the interface for balance and item persistence.
// Currency updates are atomic in-database increments, never
// read-modify-write round trips.
type Economy interface {
	GetBalance(ctx context.Context, playerID string) (*domain.Balance, error)
	AddCurrency(ctx context.Context, playerID string, currency domain.Currency, amount int) error

	GetItemQuantity(ctx context.Context, playerID, itemName string) (int, error)
	GetItems(ctx context.Context, playerID string) ([]domain.InventoryItem, error)
	AddItem(ctx context.Context, playerID, itemName string, quantity int) error

	// ConsumeItem decrements the quantity only if enough is held.
	// Returns false when the player does not hold the required quantity.
	ConsumeItem(ctx context.Context, playerID, itemName string, quantity int) (bool, error)
}
