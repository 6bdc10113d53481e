package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fancards/fancards-go/internal/domain"
)

// LevelRepository implements the level repository for PostgreSQL
type LevelRepository struct {
	db *pgxpool.Pool
}

// NewLevelRepository creates a new LevelRepository
func NewLevelRepository(db *pgxpool.Pool) *LevelRepository {
	return &LevelRepository{db: db}
}

// GetLevelState retrieves a player's level state
func (r *LevelRepository) GetLevelState(ctx context.Context, playerID string) (*domain.LevelState, error) {
	query := `
		SELECT current_level, current_xp, required_xp
		FROM player_levels
		WHERE player_id = $1
	`
	state := domain.LevelState{PlayerID: playerID}
	err := r.db.QueryRow(ctx, query, playerID).Scan(
		&state.CurrentLevel, &state.CurrentXP, &state.RequiredXP)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get level state: %w", err)
	}
	return &state, nil
}

// UpdateLevelState stores a player's level state
func (r *LevelRepository) UpdateLevelState(ctx context.Context, state *domain.LevelState) error {
	query := `
		UPDATE player_levels
		SET current_level = $1, current_xp = $2, required_xp = $3
		WHERE player_id = $4
	`
	tag, err := r.db.Exec(ctx, query,
		state.CurrentLevel, state.CurrentXP, state.RequiredXP, state.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to update level state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}
