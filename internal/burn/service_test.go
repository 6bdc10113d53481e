package burn

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/user"
)

// fakeUsers resolves one known player
type fakeUsers struct {
	player *domain.Player
}

func (f *fakeUsers) Register(context.Context, string, string) (*domain.Player, error) {
	return f.player, nil
}

func (f *fakeUsers) GetByDiscordID(_ context.Context, discordID string) (*domain.Player, error) {
	if f.player == nil || f.player.DiscordID != discordID {
		return nil, domain.ErrPlayerNotFound
	}
	return f.player, nil
}

func (f *fakeUsers) GetByID(context.Context, string) (*domain.Player, error) {
	return f.player, nil
}

func (f *fakeUsers) AddBackpackLevel(context.Context, string) (int, error) { return 1, nil }

func (f *fakeUsers) GetCapacity(context.Context, string) (*user.CapacityStatus, error) {
	return &user.CapacityStatus{BackpackLevel: 1}, nil
}

func (f *fakeUsers) HasBackpackSpace(context.Context, string) (bool, error) { return true, nil }

func (f *fakeUsers) DetermineDropProfile(context.Context, *domain.Player) (domain.WeightProfile, error) {
	return domain.WeightProfileNormal, nil
}

// fakeCards is an in-memory repository.Card covering burn paths
type fakeCards struct {
	cards map[string]domain.Card // keyed by card ID, single player

	burnedIDs    []string
	burnedSilver int
	burnedStar   int
	burnedGems   int
	deleteFewer  int // when > 0, report this many deletions instead
}

func newFakeCards(cards ...domain.Card) *fakeCards {
	f := &fakeCards{cards: make(map[string]domain.Card)}
	for _, c := range cards {
		f.cards[c.ID] = c
	}
	return f
}

func (f *fakeCards) ClaimCardInTransaction(context.Context, *domain.Card, int, *domain.LevelState) error {
	return nil
}

func (f *fakeCards) BurnCardsInTransaction(_ context.Context, _ string, cardIDs []string, silver, star, gems int) (int, error) {
	f.burnedIDs = cardIDs
	f.burnedSilver = silver
	f.burnedStar = star
	f.burnedGems = gems
	for _, id := range cardIDs {
		delete(f.cards, id)
	}
	if f.deleteFewer > 0 {
		return f.deleteFewer, nil
	}
	return len(cardIDs), nil
}

func (f *fakeCards) GetPlayerCard(_ context.Context, _, cardID string) (*domain.Card, error) {
	c, ok := f.cards[cardID]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return &c, nil
}

func (f *fakeCards) GetPlayerCards(context.Context, string) ([]domain.Card, error) {
	out := make([]domain.Card, 0, len(f.cards))
	for _, c := range f.cards {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCards) FindPlayerCardsByPrefix(context.Context, string, string) ([]domain.Card, error) {
	return nil, nil
}

func (f *fakeCards) CountPlayerCards(context.Context, string) (int, error) {
	return len(f.cards), nil
}

func (f *fakeCards) SetCardLocked(context.Context, string, string, bool) error { return nil }

var testStart = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func newBurnService(cards *fakeCards) *service {
	return &service{
		users:    &fakeUsers{player: &domain.Player{InternalID: "p-1", DiscordID: "discord-1"}},
		cardRepo: cards,
		randInt:  func(min, _ int) int { return min },
		now:      func() time.Time { return testStart },
	}
}

func commonCard(id string, ageDays int) domain.Card {
	return domain.Card{
		ID:            id,
		PlayerID:      "p-1",
		Rarity:        domain.RarityCommon,
		Condition:     domain.ConditionDamaged,
		CharacterName: "Hero",
		CreatedAt:     testStart.AddDate(0, 0, -ageDays),
	}
}

func TestPreview_RewardMath(t *testing.T) {
	ctx := context.Background()

	// Common silver range starts at 10, damaged star value is 3.
	// randInt is pinned to the range minimum.
	tests := []struct {
		name       string
		ageDays    int
		wantSilver int
		wantStar   int
	}{
		{"day zero has no bonus", 0, 10, 3},
		{"ten days of bonus", 10, 10 + (10/4)*10, 3 + (3/4)*10},
		{"bonus caps at sixty days", 200, 10 + (10/4)*60, 3 + (3/4)*60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newBurnService(newFakeCards(commonCard("aaaaaa", tt.ageDays)))

			preview, err := svc.Preview(ctx, "discord-1", []string{"aaaaaa"})
			require.NoError(t, err)
			require.Len(t, preview.Cards, 1)

			assert.Equal(t, tt.wantSilver, preview.Cards[0].Silver)
			assert.Equal(t, tt.wantStar, preview.Cards[0].Star)
			assert.Equal(t, 0, preview.Cards[0].Gems)
		})
	}
}

func TestPreview_ShinyGrantsGem(t *testing.T) {
	ctx := context.Background()
	card := commonCard("aaaaaa", 0)
	card.Shiny = true
	svc := newBurnService(newFakeCards(card))

	preview, err := svc.Preview(ctx, "discord-1", []string{"aaaaaa"})
	require.NoError(t, err)
	assert.Equal(t, GemsPerShiny, preview.Cards[0].Gems)
	assert.Equal(t, GemsPerShiny, preview.TotalGems)
}

func TestPreview_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("too valuable single card", func(t *testing.T) {
		card := commonCard("aaaaaa", 0)
		card.Rarity = domain.RarityExotic
		svc := newBurnService(newFakeCards(card))

		_, err := svc.Preview(ctx, "discord-1", []string{"aaaaaa"})
		assert.ErrorIs(t, err, domain.ErrTooValuable)
	})

	t.Run("locked single card", func(t *testing.T) {
		card := commonCard("aaaaaa", 0)
		card.Locked = true
		svc := newBurnService(newFakeCards(card))

		_, err := svc.Preview(ctx, "discord-1", []string{"aaaaaa"})
		assert.ErrorIs(t, err, domain.ErrCardLocked)
	})

	t.Run("sleeved single card", func(t *testing.T) {
		card := commonCard("aaaaaa", 0)
		card.InSleeve = true
		svc := newBurnService(newFakeCards(card))

		_, err := svc.Preview(ctx, "discord-1", []string{"aaaaaa"})
		assert.ErrorIs(t, err, domain.ErrCardInSleeve)
	})

	t.Run("unowned single card", func(t *testing.T) {
		svc := newBurnService(newFakeCards())

		_, err := svc.Preview(ctx, "discord-1", []string{"zzzzzz"})
		assert.ErrorIs(t, err, domain.ErrCardNotFound)
	})

	t.Run("duplicate IDs", func(t *testing.T) {
		svc := newBurnService(newFakeCards(commonCard("aaaaaa", 0)))

		_, err := svc.Preview(ctx, "discord-1", []string{"aaaaaa", "aaaaaa"})
		assert.ErrorIs(t, err, domain.ErrDuplicateCard)
	})

	t.Run("unregistered player", func(t *testing.T) {
		svc := newBurnService(newFakeCards())

		_, err := svc.Preview(ctx, "stranger", []string{"aaaaaa"})
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})
}

func TestPreview_MultiTagsInvalid(t *testing.T) {
	ctx := context.Background()

	locked := commonCard("locked", 0)
	locked.Locked = true
	exotic := commonCard("exotic", 0)
	exotic.Rarity = domain.RarityExotic
	svc := newBurnService(newFakeCards(commonCard("good00", 0), locked, exotic))

	preview, err := svc.Preview(ctx, "discord-1", []string{"good00", "locked", "exotic", "zzzzzz"})
	require.NoError(t, err)

	require.Len(t, preview.Cards, 1)
	assert.Equal(t, "good00", preview.Cards[0].CardID)

	require.Len(t, preview.Invalid, 3)
	reasons := make(map[string]string, 3)
	for _, invalid := range preview.Invalid {
		reasons[invalid.CardID] = invalid.Reason
	}
	assert.Equal(t, domain.ErrMsgCardLocked, reasons["locked"])
	assert.Equal(t, domain.ErrMsgTooValuable, reasons["exotic"])
	assert.Equal(t, domain.ErrMsgCardNotFound, reasons["zzzzzz"])
}

func TestPreview_AllBurnsWholeCollection(t *testing.T) {
	ctx := context.Background()

	locked := commonCard("locked", 0)
	locked.Locked = true
	svc := newBurnService(newFakeCards(commonCard("card01", 0), commonCard("card02", 0), locked))

	preview, err := svc.Preview(ctx, "discord-1", nil)
	require.NoError(t, err)
	assert.Len(t, preview.Cards, 2)
	assert.Len(t, preview.Invalid, 1)
}

func TestPreview_NothingToBurn(t *testing.T) {
	ctx := context.Background()
	svc := newBurnService(newFakeCards())

	_, err := svc.Preview(ctx, "discord-1", nil)
	assert.ErrorIs(t, err, domain.ErrNothingToBurn)
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("burns and credits", func(t *testing.T) {
		shiny := commonCard("shiny0", 10)
		shiny.Shiny = true
		cards := newFakeCards(commonCard("card01", 10), shiny)
		svc := newBurnService(cards)

		result, err := svc.Confirm(ctx, "discord-1", []string{"card01", "shiny0"})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Burned)
		assert.False(t, result.Partial)
		assert.ElementsMatch(t, []string{"card01", "shiny0"}, cards.burnedIDs)
		assert.Equal(t, result.TotalSilver, cards.burnedSilver)
		assert.Equal(t, result.TotalStar, cards.burnedStar)
		assert.Equal(t, GemsPerShiny, cards.burnedGems)

		// Burned cards are gone
		_, err = svc.Preview(ctx, "discord-1", []string{"card01"})
		assert.ErrorIs(t, err, domain.ErrCardNotFound)
	})

	t.Run("flags partial deletion", func(t *testing.T) {
		cards := newFakeCards(commonCard("card01", 0), commonCard("card02", 0))
		cards.deleteFewer = 1
		svc := newBurnService(cards)

		result, err := svc.Confirm(ctx, "discord-1", []string{"card01", "card02"})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Burned)
		assert.True(t, result.Partial)
	})
}
