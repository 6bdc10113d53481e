package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// collectionPageSize caps how many cards one embed lists
const collectionPageSize = 15

// RegisterCardCommands registers the collection commands
func RegisterCardCommands(registry *CommandRegistry) {
	registry.Register(&discordgo.ApplicationCommand{
		Name:        "collection",
		Description: "Show your card collection",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "rarity",
				Description: "Only show cards of this rarity",
				Required:    false,
			},
		},
	}, handleCollection)

	registry.Register(&discordgo.ApplicationCommand{
		Name:        "view",
		Description: "Inspect one of your cards",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "card_id",
				Description: "Card to inspect (default: your newest card)",
				Required:    false,
			},
		},
	}, handleViewCard)

	registry.Register(&discordgo.ApplicationCommand{
		Name:        "lock",
		Description: "Protect a card from burning, or remove the protection",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "card_id",
				Description: "Card to lock or unlock",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "locked",
				Description: "True to lock, False to unlock",
				Required:    true,
			},
		},
	}, handleCardLock)
}

func handleCollection(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)

	rarity := ""
	if opt, ok := optionMap(i)["rarity"]; ok {
		rarity = strings.ToLower(opt.StringValue())
	}

	cards, err := client.GetCollection(user.ID, rarity)
	if err != nil {
		slog.Error("Failed to get collection", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	if len(cards) == 0 {
		sendEmbed(s, i, createEmbed("📦 Collection", MsgEmptyCollection, ColorGray))
		return
	}

	var sb strings.Builder
	shown := len(cards)
	if shown > collectionPageSize {
		shown = collectionPageSize
	}
	for _, c := range cards[:shown] {
		sb.WriteString(formatCardLine(c))
		sb.WriteString("\n")
	}
	if len(cards) > shown {
		fmt.Fprintf(&sb, "\n...and **%d** more.", len(cards)-shown)
	}

	title := fmt.Sprintf("📦 Collection (%d cards)", len(cards))
	sendEmbed(s, i, createEmbed(title, sb.String(), ColorBlue))
}

func handleViewCard(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)

	cardID := ""
	if opt, ok := optionMap(i)["card_id"]; ok {
		cardID = opt.StringValue()
	}

	view, err := client.ViewCard(user.ID, cardID)
	if err != nil {
		slog.Error("Failed to view card", "error", err, "card_id", cardID)
		respondFriendlyError(s, i, err.Error())
		return
	}

	var sb strings.Builder
	sb.WriteString(formatCardLine(view.Card))
	fmt.Fprintf(&sb, "\nOwner: **%s**", view.OwnerUsername)
	fmt.Fprintf(&sb, "\nAge: **%d** day(s)", view.AgeDays)
	fmt.Fprintf(&sb, "\nValue: 🪙 **%d**", view.Value)

	sendEmbed(s, i, createEmbed("🔍 Card", sb.String(), ColorPurple))
}

func handleCardLock(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}
	user := getInteractionUser(i)

	opts := optionMap(i)
	cardID := opts["card_id"].StringValue()
	locked := opts["locked"].BoolValue()

	msg, err := client.SetCardLock(user.ID, cardID, locked)
	if err != nil {
		slog.Error("Failed to set card lock", "error", err, "card_id", cardID)
		respondFriendlyError(s, i, err.Error())
		return
	}

	title := "🔒 Card Locked"
	if !locked {
		title = "🔓 Card Unlocked"
	}
	sendEmbed(s, i, createEmbed(title, msg, ColorOrange))
}
