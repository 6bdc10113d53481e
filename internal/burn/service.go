package burn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/metrics"
	"github.com/fancards/fancards-go/internal/repository"
	"github.com/fancards/fancards-go/internal/user"
	"github.com/fancards/fancards-go/internal/utils"
)

// CardReward is the computed burn payout for one card
type CardReward struct {
	CardID        string           `json:"card_id"`
	Rarity        domain.Rarity    `json:"rarity"`
	Condition     domain.Condition `json:"condition"`
	CharacterName string           `json:"character_name"`
	Shiny         bool             `json:"shiny"`
	AgeDays       int              `json:"age_days"`
	Silver        int              `json:"silver"`
	Star          int              `json:"star"`
	Gems          int              `json:"gems"`
}

// InvalidCard tags a card that cannot be burned and why
type InvalidCard struct {
	CardID string `json:"card_id"`
	Reason string `json:"reason"`
}

// Preview is the computed outcome of a burn before confirmation
type Preview struct {
	Cards       []CardReward  `json:"cards"`
	Invalid     []InvalidCard `json:"invalid,omitempty"`
	TotalSilver int           `json:"total_silver"`
	TotalStar   int           `json:"total_star"`
	TotalGems   int           `json:"total_gems"`
}

// Result reports a confirmed burn
type Result struct {
	Burned      int  `json:"burned"`
	TotalSilver int  `json:"total_silver"`
	TotalStar   int  `json:"total_star"`
	TotalGems   int  `json:"total_gems"`
	Partial     bool `json:"partial,omitempty"`
}

// Service computes and applies burn rewards
type Service interface {
	// Preview computes rewards without destroying anything. An empty
	// cardIDs slice previews burning the player's whole collection;
	// unburnable cards are tagged rather than failing the batch, except
	// for an explicit single-card burn, which fails with the card's error.
	Preview(ctx context.Context, discordID string, cardIDs []string) (*Preview, error)

	// Confirm destroys the cards and credits the rewards atomically.
	// Silver is re-sampled at confirm time; the preview is an estimate.
	Confirm(ctx context.Context, discordID string, cardIDs []string) (*Result, error)
}

type service struct {
	users    user.Service
	cardRepo repository.Card

	randInt func(min, max int) int
	now     func() time.Time
}

// NewService creates a new burn service
func NewService(users user.Service, cardRepo repository.Card) Service {
	return &service{
		users:    users,
		cardRepo: cardRepo,
		randInt:  utils.RandomInt,
		now:      time.Now,
	}
}

func (s *service) Preview(ctx context.Context, discordID string, cardIDs []string) (*Preview, error) {
	player, err := s.users.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	return s.buildPreview(ctx, player.InternalID, cardIDs)
}

func (s *service) Confirm(ctx context.Context, discordID string, cardIDs []string) (*Result, error) {
	log := logger.FromContext(ctx)

	player, err := s.users.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	// Cards may have vanished since the preview, so rebuild it against
	// current state before destroying anything.
	preview, err := s.buildPreview(ctx, player.InternalID, cardIDs)
	if err != nil {
		return nil, err
	}

	burnIDs := make([]string, len(preview.Cards))
	for i, reward := range preview.Cards {
		burnIDs[i] = reward.CardID
		metrics.CardsBurned.WithLabelValues(string(reward.Rarity)).Inc()
	}

	deleted, err := s.cardRepo.BurnCardsInTransaction(ctx, player.InternalID, burnIDs,
		preview.TotalSilver, preview.TotalStar, preview.TotalGems)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBurnFailed, err)
	}

	result := &Result{
		Burned:      deleted,
		TotalSilver: preview.TotalSilver,
		TotalStar:   preview.TotalStar,
		TotalGems:   preview.TotalGems,
	}
	if deleted != len(burnIDs) {
		result.Partial = true
		log.Warn(LogMsgPartialBurn, "playerID", player.InternalID,
			"expected", len(burnIDs), "deleted", deleted)
	}

	log.Info(LogMsgCardsBurned,
		"playerID", player.InternalID,
		"burned", deleted,
		"silver", result.TotalSilver,
		"star", result.TotalStar,
		"gems", result.TotalGems)
	return result, nil
}

func (s *service) buildPreview(ctx context.Context, playerID string, cardIDs []string) (*Preview, error) {
	if err := checkDuplicates(cardIDs); err != nil {
		return nil, err
	}

	single := len(cardIDs) == 1

	var cards []domain.Card
	preview := &Preview{}

	if len(cardIDs) == 0 {
		owned, err := s.cardRepo.GetPlayerCards(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetCardsFailed, err)
		}
		cards = owned
	} else {
		for _, id := range cardIDs {
			card, err := s.cardRepo.GetPlayerCard(ctx, playerID, id)
			if err != nil {
				if errors.Is(err, domain.ErrCardNotFound) {
					if single {
						return nil, err
					}
					preview.Invalid = append(preview.Invalid, InvalidCard{CardID: id, Reason: domain.ErrMsgCardNotFound})
					continue
				}
				return nil, fmt.Errorf(ErrMsgGetCardsFailed, err)
			}
			cards = append(cards, *card)
		}
	}

	now := s.now()
	for _, card := range cards {
		if reason, burnable := burnability(card); !burnable {
			if single {
				return nil, reason
			}
			preview.Invalid = append(preview.Invalid, InvalidCard{CardID: card.ID, Reason: reason.Error()})
			continue
		}

		reward := s.rewardFor(card, now)
		preview.Cards = append(preview.Cards, reward)
		preview.TotalSilver += reward.Silver
		preview.TotalStar += reward.Star
		preview.TotalGems += reward.Gems
	}

	if len(preview.Cards) == 0 {
		return nil, domain.ErrNothingToBurn
	}
	return preview, nil
}

// rewardFor computes one card's payout. Each reward component earns an
// age bonus of value/4 per day held, counting at most 60 days.
func (s *service) rewardFor(card domain.Card, now time.Time) CardReward {
	days := int(now.Sub(card.CreatedAt).Hours() / HoursPerDay)
	if days < 0 {
		days = 0
	}

	silver := 0
	if silverRange := card.Rarity.Data().SilverRange; silverRange != nil {
		silver = s.randInt(silverRange.Min, silverRange.Max)
	}
	star := card.Condition.StarValue()

	reward := CardReward{
		CardID:        card.ID,
		Rarity:        card.Rarity,
		Condition:     card.Condition,
		CharacterName: card.CharacterName,
		Shiny:         card.Shiny,
		AgeDays:       days,
		Silver:        silver + ageBonus(silver, days),
		Star:          star + ageBonus(star, days),
	}
	if card.Shiny {
		reward.Gems = GemsPerShiny
	}
	return reward
}

// ageBonus returns value/4 per full day held, capped at 60 days.
func ageBonus(value, days int) int {
	if days > domain.BurnBonusMaxDays {
		days = domain.BurnBonusMaxDays
	}
	return value / domain.BurnBonusDivisor * days
}

// burnability reports whether a card may be burned, with the blocking
// error when it may not.
func burnability(card domain.Card) (error, bool) {
	switch {
	case card.Rarity.TooValuableToBurn():
		return domain.ErrTooValuable, false
	case card.Locked:
		return domain.ErrCardLocked, false
	case card.InSleeve:
		return domain.ErrCardInSleeve, false
	}
	return nil, true
}

func checkDuplicates(cardIDs []string) error {
	seen := make(map[string]struct{}, len(cardIDs))
	for _, id := range cardIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCard, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
