package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// RegisterEconomyCommands registers the wallet commands
func RegisterEconomyCommands(registry *CommandRegistry) {
	registry.Register(&discordgo.ApplicationCommand{
		Name:        "balance",
		Description: "Show your currency balances",
	}, handleBalance)

	registry.Register(&discordgo.ApplicationCommand{
		Name:        "inventory",
		Description: "Show your non-card items",
	}, handleInventory)
}

func handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)

	balance, err := client.GetBalance(user.ID)
	if err != nil {
		slog.Error("Failed to get balance", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	sendEmbed(s, i, createEmbed("💰 Balance", formatBalance(balance), ColorGreen))
}

func handleInventory(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)

	items, err := client.GetInventory(user.ID)
	if err != nil {
		slog.Error("Failed to get inventory", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	if len(items) == 0 {
		sendEmbed(s, i, createEmbed("🎒 Inventory", MsgNoItems, ColorGray))
		return
	}

	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "**%s** x%d\n", item.ItemName, item.Quantity)
	}
	sendEmbed(s, i, createEmbed("🎒 Inventory", sb.String(), ColorBlue))
}
