package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fancards/fancards-go/internal/domain"
)

// fakePlayerRepo is an in-memory repository.Player for service tests
type fakePlayerRepo struct {
	players   map[string]*domain.Player // keyed by internal ID
	byDiscord map[string]string         // discord ID -> internal ID
	getCalls  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{
		players:   make(map[string]*domain.Player),
		byDiscord: make(map[string]string),
	}
}

func (f *fakePlayerRepo) RegisterPlayer(_ context.Context, player *domain.Player) error {
	if _, ok := f.byDiscord[player.DiscordID]; ok {
		return domain.ErrPlayerExists
	}
	copied := *player
	f.players[player.InternalID] = &copied
	f.byDiscord[player.DiscordID] = player.InternalID
	return nil
}

func (f *fakePlayerRepo) GetPlayerByID(_ context.Context, playerID string) (*domain.Player, error) {
	player, ok := f.players[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (f *fakePlayerRepo) GetPlayerByDiscordID(_ context.Context, discordID string) (*domain.Player, error) {
	f.getCalls++
	id, ok := f.byDiscord[discordID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	copied := *f.players[id]
	return &copied, nil
}

func (f *fakePlayerRepo) UpdatePlayer(_ context.Context, player *domain.Player) error {
	if _, ok := f.players[player.InternalID]; !ok {
		return domain.ErrPlayerNotFound
	}
	copied := *player
	f.players[player.InternalID] = &copied
	return nil
}

func (f *fakePlayerRepo) UpdateBackpackLevel(_ context.Context, playerID string, level int) error {
	player, ok := f.players[playerID]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	player.BackpackLevel = level
	return nil
}

// stubCardRepo only counts; the other repository.Card methods are unused here
type stubCardRepo struct {
	count int
}

func (s *stubCardRepo) ClaimCardInTransaction(context.Context, *domain.Card, int, *domain.LevelState) error {
	return nil
}

func (s *stubCardRepo) BurnCardsInTransaction(context.Context, string, []string, int, int, int) (int, error) {
	return 0, nil
}

func (s *stubCardRepo) GetPlayerCard(context.Context, string, string) (*domain.Card, error) {
	return nil, domain.ErrCardNotFound
}

func (s *stubCardRepo) FindPlayerCardsByPrefix(context.Context, string, string) ([]domain.Card, error) {
	return nil, nil
}

func (s *stubCardRepo) GetPlayerCards(context.Context, string) ([]domain.Card, error) {
	return nil, nil
}

func (s *stubCardRepo) CountPlayerCards(context.Context, string) (int, error) {
	return s.count, nil
}

func (s *stubCardRepo) SetCardLocked(context.Context, string, string, bool) error {
	return nil
}

type stubLevelRepo struct {
	level int
}

func (s *stubLevelRepo) GetLevelState(_ context.Context, playerID string) (*domain.LevelState, error) {
	return &domain.LevelState{
		PlayerID:     playerID,
		CurrentLevel: s.level,
		RequiredXP:   domain.RequiredXP(s.level),
	}, nil
}

func (s *stubLevelRepo) UpdateLevelState(context.Context, *domain.LevelState) error {
	return nil
}

// fakeEconomy implements economy.Service over an item map
type fakeEconomy struct {
	items map[string]int
}

func newFakeEconomy() *fakeEconomy {
	return &fakeEconomy{items: make(map[string]int)}
}

func (f *fakeEconomy) GetBalance(context.Context, string) (*domain.Balance, error) {
	return &domain.Balance{}, nil
}

func (f *fakeEconomy) Grant(context.Context, string, domain.Currency, int) error { return nil }

func (f *fakeEconomy) Spend(context.Context, string, domain.Currency, int) error { return nil }

func (f *fakeEconomy) GetItems(context.Context, string) ([]domain.InventoryItem, error) {
	return nil, nil
}

func (f *fakeEconomy) GetItemQuantity(_ context.Context, _, itemName string) (int, error) {
	return f.items[itemName], nil
}

func (f *fakeEconomy) GrantItem(_ context.Context, _, itemName string, quantity int) error {
	f.items[itemName] += quantity
	return nil
}

func (f *fakeEconomy) ConsumeItem(_ context.Context, _, itemName string, quantity int) error {
	if f.items[itemName] < quantity {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, itemName)
	}
	f.items[itemName] -= quantity
	return nil
}

func newTestService(repo *fakePlayerRepo, cards *stubCardRepo, levels *stubLevelRepo, eco *fakeEconomy) Service {
	if cards == nil {
		cards = &stubCardRepo{}
	}
	if levels == nil {
		levels = &stubLevelRepo{level: 10}
	}
	if eco == nil {
		eco = newFakeEconomy()
	}
	return NewService(repo, cards, levels, eco)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates player with fresh ID", func(t *testing.T) {
		repo := newFakePlayerRepo()
		svc := newTestService(repo, nil, nil, nil)

		player, err := svc.Register(ctx, "discord-1", "alice")
		require.NoError(t, err)

		assert.NotEmpty(t, player.InternalID)
		assert.Equal(t, "discord-1", player.DiscordID)
		assert.Equal(t, "alice", player.Username)
		assert.Equal(t, 1, player.BackpackLevel)
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		repo := newFakePlayerRepo()
		svc := newTestService(repo, nil, nil, nil)

		_, err := svc.Register(ctx, "discord-1", "alice")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "discord-1", "alice")
		assert.ErrorIs(t, err, domain.ErrPlayerExists)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc := newTestService(newFakePlayerRepo(), nil, nil, nil)

		_, err := svc.Register(ctx, "", "alice")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Register(ctx, "discord-1", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGetByDiscordID(t *testing.T) {
	ctx := context.Background()

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		repo := newFakePlayerRepo()
		svc := newTestService(repo, nil, nil, nil)

		registered, err := svc.Register(ctx, "discord-1", "alice")
		require.NoError(t, err)

		// Registration pre-warms the cache, so no repo lookups at all
		for i := 0; i < 3; i++ {
			player, err := svc.GetByDiscordID(ctx, "discord-1")
			require.NoError(t, err)
			assert.Equal(t, registered.InternalID, player.InternalID)
		}
		assert.Equal(t, 0, repo.getCalls)
	})

	t.Run("unknown discord ID", func(t *testing.T) {
		svc := newTestService(newFakePlayerRepo(), nil, nil, nil)

		_, err := svc.GetByDiscordID(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})
}

func TestBackpack(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc Service) *domain.Player {
		t.Helper()
		player, err := svc.Register(ctx, "discord-1", "alice")
		require.NoError(t, err)
		return player
	}

	t.Run("capacity scales with level", func(t *testing.T) {
		repo := newFakePlayerRepo()
		cards := &stubCardRepo{count: 42}
		svc := newTestService(repo, cards, nil, nil)
		player := register(t, svc)

		status, err := svc.GetCapacity(ctx, player.InternalID)
		require.NoError(t, err)
		require.NotNil(t, status.Capacity)
		assert.Equal(t, domain.BackpackSlotsPerLevel, *status.Capacity)
		assert.Equal(t, 42, status.Used)
	})

	t.Run("unlimited at max level", func(t *testing.T) {
		repo := newFakePlayerRepo()
		svc := newTestService(repo, &stubCardRepo{count: 99999}, nil, nil)
		player := register(t, svc)

		for i := 0; i < domain.MaxBackpackLevel; i++ {
			_, err := svc.AddBackpackLevel(ctx, player.InternalID)
			require.NoError(t, err)
		}

		status, err := svc.GetCapacity(ctx, player.InternalID)
		require.NoError(t, err)
		assert.Nil(t, status.Capacity)
		assert.Equal(t, domain.MaxBackpackLevel, status.BackpackLevel)

		ok, err := svc.HasBackpackSpace(ctx, player.InternalID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("upgrade stops at max level", func(t *testing.T) {
		repo := newFakePlayerRepo()
		svc := newTestService(repo, nil, nil, nil)
		player := register(t, svc)

		var level int
		var err error
		for i := 0; i < domain.MaxBackpackLevel+3; i++ {
			level, err = svc.AddBackpackLevel(ctx, player.InternalID)
			require.NoError(t, err)
		}
		assert.Equal(t, domain.MaxBackpackLevel, level)
	})

	t.Run("full backpack has no space", func(t *testing.T) {
		repo := newFakePlayerRepo()
		svc := newTestService(repo, &stubCardRepo{count: domain.BackpackSlotsPerLevel}, nil, nil)
		player := register(t, svc)

		ok, err := svc.HasBackpackSpace(ctx, player.InternalID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDetermineDropProfile(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc Service) *domain.Player {
		t.Helper()
		player, err := svc.Register(ctx, "discord-1", "alice")
		require.NoError(t, err)
		return player
	}

	t.Run("low level rolls new_user", func(t *testing.T) {
		svc := newTestService(newFakePlayerRepo(), nil, &stubLevelRepo{level: domain.NewUserLevelCeiling - 1}, nil)
		player := register(t, svc)

		profile, err := svc.DetermineDropProfile(ctx, player)
		require.NoError(t, err)
		assert.Equal(t, domain.WeightProfileNewUser, profile)
	})

	t.Run("premium item consumed selects premium", func(t *testing.T) {
		eco := newFakeEconomy()
		eco.items[domain.ItemPremiumDrop] = 2
		svc := newTestService(newFakePlayerRepo(), nil, &stubLevelRepo{level: 10}, eco)
		player := register(t, svc)

		profile, err := svc.DetermineDropProfile(ctx, player)
		require.NoError(t, err)
		assert.Equal(t, domain.WeightProfilePremium, profile)
		assert.Equal(t, 1, eco.items[domain.ItemPremiumDrop], "exactly one item consumed")
	})

	t.Run("no premium item falls back to normal", func(t *testing.T) {
		svc := newTestService(newFakePlayerRepo(), nil, &stubLevelRepo{level: 10}, nil)
		player := register(t, svc)

		profile, err := svc.DetermineDropProfile(ctx, player)
		require.NoError(t, err)
		assert.Equal(t, domain.WeightProfileNormal, profile)
	})

	t.Run("premium item wins over the new_user level check", func(t *testing.T) {
		eco := newFakeEconomy()
		eco.items[domain.ItemPremiumDrop] = 1
		svc := newTestService(newFakePlayerRepo(), nil, &stubLevelRepo{level: 1}, eco)
		player := register(t, svc)

		profile, err := svc.DetermineDropProfile(ctx, player)
		require.NoError(t, err)
		assert.Equal(t, domain.WeightProfilePremium, profile)
		assert.Equal(t, 0, eco.items[domain.ItemPremiumDrop], "item consumed")
	})
}
