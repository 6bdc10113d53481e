package repository

import (
	"context"

	"github.com/fancards/fancards-go/internal/domain"
)

// Level defines the interface for level state persistence
type Level interface {
	GetLevelState(ctx context.Context, playerID string) (*domain.LevelState, error)
	UpdateLevelState(ctx context.Context, state *domain.LevelState) error
}
