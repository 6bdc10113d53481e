package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/fancards/fancards-go/internal/burn"
	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/drop"
)

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips API error prefix",
			input:    "API error: Someone beat you to that card",
			expected: "❌ Someone beat you to that card",
		},
		{
			name:     "passes through plain message",
			input:    "That drop has expired",
			expected: "❌ That drop has expired",
		},
		{
			name:     "transport failure becomes generic",
			input:    "max retries exceeded: server error: 503",
			expected: MsgServerUnavailable,
		},
		{
			name:     "opaque status becomes generic",
			input:    "API returned status: 502",
			expected: MsgServerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.input))
		})
	}
}

func TestCommandsEqual(t *testing.T) {
	base := func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "claim",
			Description: "Claim one card from an open drop",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "drop_id",
					Description: "The drop to claim from",
					Required:    true,
				},
			},
		}
	}

	t.Run("identical sets are equal", func(t *testing.T) {
		assert.True(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{base()},
		))
	})

	t.Run("changed description differs", func(t *testing.T) {
		changed := base()
		changed.Description = "something else"
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{changed},
		))
	})

	t.Run("changed option differs", func(t *testing.T) {
		changed := base()
		changed.Options[0].Required = false
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{changed},
		))
	})

	t.Run("different lengths differ", func(t *testing.T) {
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			nil,
		))
	})
}

func TestParseCardIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, parseCardIDs("a, b ,c"))
	assert.Empty(t, parseCardIDs(" , ,"))
	assert.Equal(t, []string{"card-1"}, parseCardIDs("card-1"))
}

func TestFormatSession(t *testing.T) {
	shiny := false
	view := &drop.SessionView{
		ID:    "drop-1",
		State: drop.SessionOpen,
		Slots: []drop.SlotView{
			{Index: 0, Rarity: domain.RarityCommon, CharacterName: "Hero", State: drop.SlotUnclaimed},
			{Index: 1, Rarity: domain.RarityEpic, CharacterName: "Villain", State: drop.SlotClaimed, ClaimedBy: "555", Shiny: &shiny},
		},
	}

	out := formatSession(view)
	assert.Contains(t, out, "drop-1")
	assert.Contains(t, out, "Hero")
	assert.Contains(t, out, "claimed by <@555>")
	assert.NotContains(t, out, "expired")
}

func TestFormatSessionExpired(t *testing.T) {
	view := &drop.SessionView{ID: "drop-2", State: drop.SessionExpired}
	assert.Contains(t, formatSession(view), "expired")
}

func TestFormatClaimResult(t *testing.T) {
	t.Run("card with rewards", func(t *testing.T) {
		result := &drop.ClaimResult{
			Card: &domain.Card{
				CharacterName: "Hero",
				Rarity:        domain.RarityRare,
				Condition:     domain.ConditionMint,
				Shiny:         true,
			},
			Silver: 12,
			XP:     10,
			LevelChange: &domain.LevelChangeEvent{
				LeveledUp: true,
				NewLevel:  4,
			},
		}

		out := formatClaimResult(result)
		assert.Contains(t, out, "Hero")
		assert.Contains(t, out, "✨")
		assert.Contains(t, out, "+12 silver")
		assert.Contains(t, out, "+10 XP")
		assert.Contains(t, out, "level **4**")
	})

	t.Run("trolled claim uses flavor", func(t *testing.T) {
		result := &drop.ClaimResult{Trolled: true, Flavor: "It was a mimic!"}
		assert.Equal(t, "It was a mimic!", formatClaimResult(result))
	})
}

func TestFormatBurnPreview(t *testing.T) {
	preview := &burn.Preview{
		Cards:       []burn.CardReward{{CardID: "c1"}, {CardID: "c2"}},
		Invalid:     []burn.InvalidCard{{CardID: "c3", Reason: "locked"}},
		TotalSilver: 40,
		TotalStar:   2,
	}

	out := formatBurnPreview(preview)
	assert.Contains(t, out, "**2** card(s)")
	assert.Contains(t, out, "**40** silver")
	assert.Contains(t, out, "**2** star")
	assert.Contains(t, out, "`c3`: locked")

	empty := formatBurnPreview(&burn.Preview{})
	assert.Equal(t, MsgNothingBurnable, empty)
}

func TestFormatBalance(t *testing.T) {
	out := formatBalance(&domain.Balance{Silver: 100, Star: 5, Gem: 1, Voucher: 0})
	assert.Contains(t, out, "Silver: **100**")
	assert.Contains(t, out, "Star: **5**")
	assert.Contains(t, out, "Gems: **1**")
}

func TestRegistryRegisterAndHandle(t *testing.T) {
	registry := NewCommandRegistry()
	called := false
	registry.Register(&discordgo.ApplicationCommand{Name: "balance"}, func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		called = true
	})

	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: "balance"},
		},
	}
	registry.Handle(nil, i, nil)
	assert.True(t, called)
}
