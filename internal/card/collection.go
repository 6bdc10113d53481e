package card

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/repository"
	"github.com/fancards/fancards-go/internal/user"
)

// Filters narrows a collection listing. Nil fields match everything.
type Filters struct {
	Rarity    *domain.Rarity
	Condition *domain.Condition
	Shiny     *bool
	Locked    *bool
	InSleeve  *bool
}

func (f Filters) match(c domain.Card) bool {
	if f.Rarity != nil && c.Rarity != *f.Rarity {
		return false
	}
	if f.Condition != nil && c.Condition != *f.Condition {
		return false
	}
	if f.Shiny != nil && c.Shiny != *f.Shiny {
		return false
	}
	if f.Locked != nil && c.Locked != *f.Locked {
		return false
	}
	if f.InSleeve != nil && c.InSleeve != *f.InSleeve {
		return false
	}
	return true
}

// View is a single card with presentation extras
type View struct {
	Card          domain.Card `json:"card"`
	OwnerUsername string      `json:"owner_username"`
	AgeDays       int         `json:"age_days"`
	Value         int         `json:"value"`
}

// CollectionService exposes a player's owned cards
type CollectionService interface {
	// List returns the filtered collection ordered by value, most
	// valuable first.
	List(ctx context.Context, discordID string, filters Filters) ([]domain.Card, error)

	// ViewCard returns one card with owner and age attached. An empty
	// cardID defaults to the most recently acquired card.
	ViewCard(ctx context.Context, discordID, cardID string) (*View, error)

	// SetLocked toggles a card's burn protection.
	SetLocked(ctx context.Context, discordID, cardID string, locked bool) error
}

type collectionService struct {
	users    user.Service
	cardRepo repository.Card
	now      func() time.Time
}

// NewCollectionService creates a new collection service
func NewCollectionService(users user.Service, cardRepo repository.Card) CollectionService {
	return &collectionService{users: users, cardRepo: cardRepo, now: time.Now}
}

func (s *collectionService) List(ctx context.Context, discordID string, filters Filters) ([]domain.Card, error) {
	player, err := s.users.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	owned, err := s.cardRepo.GetPlayerCards(ctx, player.InternalID)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.Card, 0, len(owned))
	for _, c := range owned {
		if filters.match(c) {
			cards = append(cards, c)
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		vi, vj := cards[i].Value(), cards[j].Value()
		if vi != vj {
			return vi > vj
		}
		return cards[i].CreatedAt.After(cards[j].CreatedAt)
	})
	return cards, nil
}

func (s *collectionService) ViewCard(ctx context.Context, discordID, cardID string) (*View, error) {
	player, err := s.users.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	var card *domain.Card
	if cardID == "" {
		// GetPlayerCards returns newest first
		owned, err := s.cardRepo.GetPlayerCards(ctx, player.InternalID)
		if err != nil {
			return nil, err
		}
		if len(owned) == 0 {
			return nil, domain.ErrCardNotFound
		}
		card = &owned[0]
	} else {
		card, err = s.cardRepo.GetPlayerCard(ctx, player.InternalID, cardID)
		if errors.Is(err, domain.ErrCardNotFound) {
			// Partial IDs resolve only when the prefix is unambiguous
			matches, matchErr := s.cardRepo.FindPlayerCardsByPrefix(ctx, player.InternalID, cardID)
			if matchErr != nil {
				return nil, matchErr
			}
			if len(matches) != 1 {
				return nil, domain.ErrCardNotFound
			}
			card = &matches[0]
		} else if err != nil {
			return nil, err
		}
	}

	return &View{
		Card:          *card,
		OwnerUsername: player.Username,
		AgeDays:       int(s.now().Sub(card.CreatedAt).Hours() / 24),
		Value:         card.Value(),
	}, nil
}

func (s *collectionService) SetLocked(ctx context.Context, discordID, cardID string, locked bool) error {
	player, err := s.users.GetByDiscordID(ctx, discordID)
	if err != nil {
		return err
	}

	if err := s.cardRepo.SetCardLocked(ctx, player.InternalID, cardID, locked); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgCardLockChanged,
		"playerID", player.InternalID, "cardID", cardID, "locked", locked)
	return nil
}
