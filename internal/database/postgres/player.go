package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/repository"
)

// PlayerRepository implements the player repository for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// RegisterPlayer atomically creates the player row plus its balance and
// level rows.
func (r *PlayerRepository) RegisterPlayer(ctx context.Context, player *domain.Player) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	query := `
		INSERT INTO players (discord_id, username, backpack_level, elevated)
		VALUES ($1, $2, $3, $4)
		RETURNING player_id, registered_at
	`
	err = tx.QueryRow(ctx, query,
		player.DiscordID, player.Username, player.BackpackLevel, player.Elevated,
	).Scan(&player.InternalID, &player.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPlayerExists
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO balances (player_id) VALUES ($1)`, player.InternalID); err != nil {
		return fmt.Errorf("failed to insert balance row: %w", err)
	}

	levelQuery := `
		INSERT INTO player_levels (player_id, current_level, current_xp, required_xp)
		VALUES ($1, 1, 0, $2)
	`
	if _, err := tx.Exec(ctx, levelQuery, player.InternalID, domain.RequiredXP(1)); err != nil {
		return fmt.Errorf("failed to insert level row: %w", err)
	}

	return tx.Commit(ctx)
}

// GetPlayerByID finds a player by internal ID
func (r *PlayerRepository) GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	query := `
		SELECT player_id, discord_id, username, backpack_level, elevated, registered_at
		FROM players
		WHERE player_id = $1
	`
	return r.scanPlayer(r.db.QueryRow(ctx, query, playerID))
}

// GetPlayerByDiscordID finds a player by their Discord snowflake
func (r *PlayerRepository) GetPlayerByDiscordID(ctx context.Context, discordID string) (*domain.Player, error) {
	query := `
		SELECT player_id, discord_id, username, backpack_level, elevated, registered_at
		FROM players
		WHERE discord_id = $1
	`
	return r.scanPlayer(r.db.QueryRow(ctx, query, discordID))
}

// UpdatePlayer updates the mutable player fields
func (r *PlayerRepository) UpdatePlayer(ctx context.Context, player *domain.Player) error {
	query := `
		UPDATE players
		SET username = $1, backpack_level = $2, elevated = $3
		WHERE player_id = $4
	`
	tag, err := r.db.Exec(ctx, query,
		player.Username, player.BackpackLevel, player.Elevated, player.InternalID)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

// UpdateBackpackLevel sets a player's backpack level
func (r *PlayerRepository) UpdateBackpackLevel(ctx context.Context, playerID string, level int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE players SET backpack_level = $1 WHERE player_id = $2`, level, playerID)
	if err != nil {
		return fmt.Errorf("failed to update backpack level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

func (r *PlayerRepository) scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.InternalID, &p.DiscordID, &p.Username, &p.BackpackLevel, &p.Elevated, &p.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}
