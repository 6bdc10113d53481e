package discord

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// RegisterBurnCommands registers the burn command
func RegisterBurnCommands(registry *CommandRegistry) {
	registry.Register(&discordgo.ApplicationCommand{
		Name:        "burn",
		Description: "Burn cards for silver and stars",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "card_ids",
				Description: "Comma-separated card IDs (default: your whole collection)",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "confirm",
				Description: "Actually burn instead of previewing the reward",
				Required:    false,
			},
		},
	}, handleBurn)
}

// parseCardIDs splits a comma-separated ID list, dropping empties
func parseCardIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func handleBurn(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)

	opts := optionMap(i)
	var cardIDs []string
	if opt, ok := opts["card_ids"]; ok {
		cardIDs = parseCardIDs(opt.StringValue())
	}
	confirm := false
	if opt, ok := opts["confirm"]; ok {
		confirm = opt.BoolValue()
	}

	if !confirm {
		preview, err := client.BurnPreview(user.ID, cardIDs)
		if err != nil {
			slog.Error("Failed to preview burn", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed("🔥 Burn Preview", formatBurnPreview(preview), ColorOrange))
		return
	}

	result, err := client.BurnConfirm(user.ID, cardIDs)
	if err != nil {
		slog.Error("Failed to confirm burn", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}
	sendEmbed(s, i, createEmbed("🔥 Burned", formatBurnResult(result), ColorRed))
}
