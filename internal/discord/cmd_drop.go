package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// RegisterDropCommands registers the drop and claim commands
func RegisterDropCommands(registry *CommandRegistry) {
	registry.Register(&discordgo.ApplicationCommand{
		Name:        "drop",
		Description: "Open a new card drop anyone can claim from",
	}, handleDrop)

	registry.Register(&discordgo.ApplicationCommand{
		Name:        "claim",
		Description: "Claim one card from an open drop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "drop_id",
				Description: "The drop to claim from",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "slot",
				Description: "The numbered card to claim",
				Required:    true,
			},
		},
	}, handleClaim)
}

func handleDrop(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)
	if !ensureUserRegistered(s, i, client, user) {
		return
	}

	view, err := client.StartDrop(user.ID)
	if err != nil {
		slog.Error("Failed to start drop", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	sendEmbed(s, i, createEmbed("🎴 Card Drop", formatSession(view), ColorPurple))
}

func handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)
	if !ensureUserRegistered(s, i, client, user) {
		return
	}

	opts := optionMap(i)
	dropID := opts["drop_id"].StringValue()
	slot := int(opts["slot"].IntValue())

	result, err := client.Claim(dropID, slot, user.ID)
	if err != nil {
		slog.Error("Failed to claim", "error", err, "drop_id", dropID, "slot", slot)
		respondFriendlyError(s, i, err.Error())
		return
	}

	color := ColorGreen
	if result.Trolled {
		color = ColorGray
	}
	sendEmbed(s, i, createEmbed("🃏 Claim", formatClaimResult(result), color))
}
