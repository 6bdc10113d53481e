package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fancards/fancards-go/internal/domain"
)

// EconomyRepository implements the economy repository for PostgreSQL
type EconomyRepository struct {
	db *pgxpool.Pool
}

// NewEconomyRepository creates a new EconomyRepository
func NewEconomyRepository(db *pgxpool.Pool) *EconomyRepository {
	return &EconomyRepository{db: db}
}

// GetBalance retrieves a player's currency balances
func (r *EconomyRepository) GetBalance(ctx context.Context, playerID string) (*domain.Balance, error) {
	query := `
		SELECT silver, star, gem, voucher
		FROM balances
		WHERE player_id = $1
	`
	b := domain.Balance{PlayerID: playerID}
	err := r.db.QueryRow(ctx, query, playerID).Scan(&b.Silver, &b.Star, &b.Gem, &b.Voucher)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &b, nil
}

// AddCurrency atomically increments (or decrements) a balance column.
// The column name comes from the sealed Currency set, never from user
// input.
func (r *EconomyRepository) AddCurrency(ctx context.Context, playerID string, currency domain.Currency, amount int) error {
	if !currency.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, currency)
	}

	query := fmt.Sprintf(`
		UPDATE balances
		SET %s = %s + $1
		WHERE player_id = $2
	`, currency, currency)

	tag, err := r.db.Exec(ctx, query, amount, playerID)
	if err != nil {
		return fmt.Errorf("failed to update %s balance: %w", currency, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

// GetItemQuantity returns how many of an item the player holds
func (r *EconomyRepository) GetItemQuantity(ctx context.Context, playerID, itemName string) (int, error) {
	var quantity int
	query := `SELECT quantity FROM player_items WHERE player_id = $1 AND item_name = $2`
	err := r.db.QueryRow(ctx, query, playerID, itemName).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get item quantity: %w", err)
	}
	return quantity, nil
}

// GetItems returns every item stack the player holds
func (r *EconomyRepository) GetItems(ctx context.Context, playerID string) ([]domain.InventoryItem, error) {
	query := `
		SELECT item_name, quantity
		FROM player_items
		WHERE player_id = $1 AND quantity > 0
		ORDER BY item_name
	`
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		item := domain.InventoryItem{PlayerID: playerID}
		if err := rows.Scan(&item.ItemName, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddItem upserts an item stack, incrementing the quantity when the
// stack already exists.
func (r *EconomyRepository) AddItem(ctx context.Context, playerID, itemName string, quantity int) error {
	query := `
		INSERT INTO player_items (player_id, item_name, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, item_name) DO UPDATE
		SET quantity = player_items.quantity + $3
	`
	if _, err := r.db.Exec(ctx, query, playerID, itemName, quantity); err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}
	return nil
}

// ConsumeItem decrements an item stack only when enough is held.
func (r *EconomyRepository) ConsumeItem(ctx context.Context, playerID, itemName string, quantity int) (bool, error) {
	query := `
		UPDATE player_items
		SET quantity = quantity - $3
		WHERE player_id = $1 AND item_name = $2 AND quantity >= $3
	`
	tag, err := r.db.Exec(ctx, query, playerID, itemName, quantity)
	if err != nil {
		return false, fmt.Errorf("failed to consume item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
