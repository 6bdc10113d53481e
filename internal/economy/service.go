package economy

import (
	"context"
	"fmt"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/metrics"
	"github.com/fancards/fancards-go/internal/repository"
)

// Service defines the interface for currency and item operations
type Service interface {
	GetBalance(ctx context.Context, playerID string) (*domain.Balance, error)
	Grant(ctx context.Context, playerID string, currency domain.Currency, amount int) error
	Spend(ctx context.Context, playerID string, currency domain.Currency, amount int) error
	GetItems(ctx context.Context, playerID string) ([]domain.InventoryItem, error)
	GetItemQuantity(ctx context.Context, playerID, itemName string) (int, error)
	GrantItem(ctx context.Context, playerID, itemName string, quantity int) error
	ConsumeItem(ctx context.Context, playerID, itemName string, quantity int) error
}

type service struct {
	repo repository.Economy
}

// NewService creates a new economy service
func NewService(repo repository.Economy) Service {
	return &service{repo: repo}
}

func (s *service) GetBalance(ctx context.Context, playerID string) (*domain.Balance, error) {
	return s.repo.GetBalance(ctx, playerID)
}

func (s *service) Grant(ctx context.Context, playerID string, currency domain.Currency, amount int) error {
	if err := validateTransaction(currency, amount); err != nil {
		return err
	}

	if err := s.repo.AddCurrency(ctx, playerID, currency, amount); err != nil {
		return fmt.Errorf(ErrMsgAddCurrencyFailed, err)
	}

	metrics.CurrencyGranted.WithLabelValues(string(currency)).Add(float64(amount))
	logger.FromContext(ctx).Debug(LogMsgCurrencyGranted,
		"playerID", playerID, "currency", currency, "amount", amount)
	return nil
}

func (s *service) Spend(ctx context.Context, playerID string, currency domain.Currency, amount int) error {
	if err := validateTransaction(currency, amount); err != nil {
		return err
	}

	balance, err := s.repo.GetBalance(ctx, playerID)
	if err != nil {
		return fmt.Errorf(ErrMsgGetBalanceFailed, err)
	}
	if balance.Amount(currency) < amount {
		return fmt.Errorf("%w: need %d %s, have %d",
			domain.ErrInsufficientFunds, amount, currency, balance.Amount(currency))
	}

	// The read above is advisory; the balance CHECK constraint is the
	// real guard against concurrent overspending.
	if err := s.repo.AddCurrency(ctx, playerID, currency, -amount); err != nil {
		return fmt.Errorf(ErrMsgAddCurrencyFailed, err)
	}

	metrics.CurrencySpent.WithLabelValues(string(currency)).Add(float64(amount))
	logger.FromContext(ctx).Debug(LogMsgCurrencySpent,
		"playerID", playerID, "currency", currency, "amount", amount)
	return nil
}

func (s *service) GetItems(ctx context.Context, playerID string) ([]domain.InventoryItem, error) {
	return s.repo.GetItems(ctx, playerID)
}

func (s *service) GetItemQuantity(ctx context.Context, playerID, itemName string) (int, error) {
	return s.repo.GetItemQuantity(ctx, playerID, itemName)
}

func (s *service) GrantItem(ctx context.Context, playerID, itemName string, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if itemName == "" {
		return fmt.Errorf("%w: empty item name", domain.ErrInvalidItem)
	}

	if err := s.repo.AddItem(ctx, playerID, itemName, quantity); err != nil {
		return fmt.Errorf(ErrMsgAddItemFailed, err)
	}

	metrics.ItemsGranted.WithLabelValues(itemName).Add(float64(quantity))
	logger.FromContext(ctx).Debug(LogMsgItemGranted,
		"playerID", playerID, "item", itemName, "quantity", quantity)
	return nil
}

func (s *service) ConsumeItem(ctx context.Context, playerID, itemName string, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	ok, err := s.repo.ConsumeItem(ctx, playerID, itemName, quantity)
	if err != nil {
		return fmt.Errorf(ErrMsgConsumeItemFailed, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s x%d", domain.ErrInsufficientQuantity, itemName, quantity)
	}

	metrics.ItemsConsumed.WithLabelValues(itemName).Add(float64(quantity))
	logger.FromContext(ctx).Debug(LogMsgItemConsumed,
		"playerID", playerID, "item", itemName, "quantity", quantity)
	return nil
}

func validateTransaction(currency domain.Currency, amount int) error {
	if !currency.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, currency)
	}
	return validateQuantity(amount)
}

func validateQuantity(amount int) error {
	if amount <= 0 {
		return fmt.Errorf(ErrMsgInvalidQuantityFmt, amount, domain.ErrInvalidInput)
	}
	if amount > domain.MaxTransactionQuantity {
		return fmt.Errorf(ErrMsgQuantityExceedsMaxFmt, amount, domain.MaxTransactionQuantity, domain.ErrInvalidInput)
	}
	return nil
}
