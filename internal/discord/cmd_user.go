package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// RegisterUserCommands registers the account commands
func RegisterUserCommands(registry *CommandRegistry) {
	registry.Register(&discordgo.ApplicationCommand{
		Name:        "register",
		Description: "Create your Fancards account",
	}, handleRegister)

	registry.Register(&discordgo.ApplicationCommand{
		Name:        "level",
		Description: "Show your level and XP progress",
	}, handleLevel)

	registry.Register(&discordgo.ApplicationCommand{
		Name:        "backpack",
		Description: "Show your backpack usage",
	}, handleBackpack)
}

func handleRegister(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)

	player, err := client.RegisterUser(user.ID, user.Username)
	if err != nil {
		slog.Error("Failed to register user", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	msg := fmt.Sprintf("%s\nRegistered as **%s**.", MsgRegistered, player.Username)
	sendEmbed(s, i, createEmbed("🎴 Welcome", msg, ColorGreen))
}

func handleLevel(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)

	state, err := client.GetLevel(user.ID)
	if err != nil {
		slog.Error("Failed to get level", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	msg := fmt.Sprintf("Level **%d**\nXP: **%d** / **%d**",
		state.CurrentLevel, state.CurrentXP, state.RequiredXP)
	sendEmbed(s, i, createEmbed("📈 Level", msg, ColorBlue))
}

func handleBackpack(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)

	status, err := client.GetCapacity(user.ID)
	if err != nil {
		slog.Error("Failed to get capacity", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	var msg string
	if status.Capacity == nil {
		msg = fmt.Sprintf("Backpack level **%d**\nCards held: **%d** (unlimited)",
			status.BackpackLevel, status.Used)
	} else {
		msg = fmt.Sprintf("Backpack level **%d**\nCards held: **%d** / **%d**",
			status.BackpackLevel, status.Used, *status.Capacity)
	}
	sendEmbed(s, i, createEmbed("🎒 Backpack", msg, ColorBlue))
}
