package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/repository"
)

// CardRepository implements the card repository for PostgreSQL
type CardRepository struct {
	db *pgxpool.Pool
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *pgxpool.Pool) *CardRepository {
	return &CardRepository{db: db}
}

// ClaimCardInTransaction atomically persists a claimed card, credits
// the silver reward, and stores the claimant's updated level state.
func (r *CardRepository) ClaimCardInTransaction(ctx context.Context, card *domain.Card, silver int, level *domain.LevelState) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	insertQuery := `
		INSERT INTO cards (player_id, card_id, rarity, condition, character_name, shiny, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, insertQuery,
		card.PlayerID, card.ID, card.Rarity, card.Condition,
		card.CharacterName, card.Shiny, card.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}

	if silver > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE balances SET silver = silver + $1 WHERE player_id = $2`,
			silver, card.PlayerID)
		if err != nil {
			return fmt.Errorf("failed to credit silver reward: %w", err)
		}
	}

	if level != nil {
		levelQuery := `
			UPDATE player_levels
			SET current_level = $1, current_xp = $2, required_xp = $3
			WHERE player_id = $4
		`
		_, err = tx.Exec(ctx, levelQuery,
			level.CurrentLevel, level.CurrentXP, level.RequiredXP, level.PlayerID)
		if err != nil {
			return fmt.Errorf("failed to update level state: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// BurnCardsInTransaction atomically deletes the given cards and credits
// the combined rewards. Returns the number of cards deleted.
func (r *CardRepository) BurnCardsInTransaction(ctx context.Context, playerID string, cardIDs []string, silver, star, gems int) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	deleteQuery := `
		DELETE FROM cards
		WHERE player_id = $1 AND card_id = ANY($2)
	`
	tag, err := tx.Exec(ctx, deleteQuery, playerID, cardIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete burned cards: %w", err)
	}
	deleted := int(tag.RowsAffected())

	if silver > 0 || star > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE balances SET silver = silver + $1, star = star + $2 WHERE player_id = $3`,
			silver, star, playerID)
		if err != nil {
			return 0, fmt.Errorf("failed to credit burn rewards: %w", err)
		}
	}

	if gems > 0 {
		gemQuery := `
			INSERT INTO player_items (player_id, item_name, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (player_id, item_name) DO UPDATE
			SET quantity = player_items.quantity + $3
		`
		if _, err := tx.Exec(ctx, gemQuery, playerID, domain.ItemGlisteningGem, gems); err != nil {
			return 0, fmt.Errorf("failed to credit glistening gems: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return deleted, nil
}

// GetPlayerCard retrieves one card from a player's collection
func (r *CardRepository) GetPlayerCard(ctx context.Context, playerID, cardID string) (*domain.Card, error) {
	query := `
		SELECT player_id, card_id, rarity, condition, character_name, shiny, locked, in_sleeve, created_at
		FROM cards
		WHERE player_id = $1 AND card_id = $2
	`
	var c domain.Card
	err := r.db.QueryRow(ctx, query, playerID, cardID).Scan(
		&c.PlayerID, &c.ID, &c.Rarity, &c.Condition,
		&c.CharacterName, &c.Shiny, &c.Locked, &c.InSleeve, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &c, nil
}

// GetPlayerCards retrieves a player's whole collection, newest first
func (r *CardRepository) GetPlayerCards(ctx context.Context, playerID string) ([]domain.Card, error) {
	query := `
		SELECT player_id, card_id, rarity, condition, character_name, shiny, locked, in_sleeve, created_at
		FROM cards
		WHERE player_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.PlayerID, &c.ID, &c.Rarity, &c.Condition,
			&c.CharacterName, &c.Shiny, &c.Locked, &c.InSleeve, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// FindPlayerCardsByPrefix returns cards whose ID starts with prefix,
// newest first. Used to resolve partial card IDs to a unique match.
func (r *CardRepository) FindPlayerCardsByPrefix(ctx context.Context, playerID, prefix string) ([]domain.Card, error) {
	query := `
		SELECT player_id, card_id, rarity, condition, character_name, shiny, locked, in_sleeve, created_at
		FROM cards
		WHERE player_id = $1 AND card_id LIKE $2 || '%'
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, playerID, prefix, PrefixMatchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find cards by prefix: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.PlayerID, &c.ID, &c.Rarity, &c.Condition,
			&c.CharacterName, &c.Shiny, &c.Locked, &c.InSleeve, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// CountPlayerCards returns the size of a player's collection
func (r *CardRepository) CountPlayerCards(ctx context.Context, playerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cards WHERE player_id = $1`, playerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

// SetCardLocked toggles a card's burn protection
func (r *CardRepository) SetCardLocked(ctx context.Context, playerID, cardID string, locked bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cards SET locked = $1 WHERE player_id = $2 AND card_id = $3`,
		locked, playerID, cardID)
	if err != nil {
		return fmt.Errorf("failed to set card lock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}
