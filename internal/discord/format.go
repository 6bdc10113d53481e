package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/fancards/fancards-go/internal/burn"
	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/drop"
)

// rarityEmoji maps each rarity to its display marker
var rarityEmoji = map[domain.Rarity]string{
	domain.RarityCommon:    "⬜",
	domain.RarityUncommon:  "🟩",
	domain.RarityRare:      "🟦",
	domain.RarityEpic:      "🟪",
	domain.RarityMythic:    "🟥",
	domain.RarityLegendary: "🟨",
	domain.RarityExotic:    "🟧",
	domain.RarityNightmare: "⬛",
	domain.RarityIcicle:    "❄️",
}

func rarityMarker(r domain.Rarity) string {
	if emoji, ok := rarityEmoji[r]; ok {
		return emoji
	}
	return "⬜"
}

// formatCardLine renders one card as a single collection row
func formatCardLine(c domain.Card) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s **%s** (%s, %s)", rarityMarker(c.Rarity), c.CharacterName, c.Rarity, c.Condition)
	if c.Shiny {
		sb.WriteString(" ✨")
	}
	if c.Locked {
		sb.WriteString(" 🔒")
	}
	if c.InSleeve {
		sb.WriteString(" 🛡️")
	}
	fmt.Fprintf(&sb, "\n`%s`", c.ID)
	return sb.String()
}

// formatSession renders a drop session with its claimable slots
func formatSession(view *drop.SessionView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Drop `%s`\n", view.ID)

	for _, slot := range view.Slots {
		fmt.Fprintf(&sb, "\n**%d.** %s %s (%s)", slot.Index, rarityMarker(slot.Rarity), slot.CharacterName, slot.Rarity)
		if slot.State == drop.SlotClaimed {
			fmt.Fprintf(&sb, " (claimed by <@%s>)", slot.ClaimedBy)
		}
	}

	switch view.State {
	case drop.SessionExpired:
		sb.WriteString("\n\nThis drop has expired.")
	default:
		remaining := time.Until(view.ExpiresAt).Round(time.Second)
		if remaining > 0 {
			fmt.Fprintf(&sb, "\n\nClaim with `/claim` within **%s**.", remaining)
		}
	}
	return sb.String()
}

// formatClaimResult renders the outcome of a successful claim
func formatClaimResult(result *drop.ClaimResult) string {
	var sb strings.Builder

	if result.Trolled {
		if result.Flavor != "" {
			return result.Flavor
		}
		return "The card crumbled to dust in your hands. Better luck next time."
	}

	if result.Card != nil {
		c := result.Card
		fmt.Fprintf(&sb, "You claimed %s **%s** (%s, %s)", rarityMarker(c.Rarity), c.CharacterName, c.Rarity, c.Condition)
		if c.Shiny {
			sb.WriteString(" ✨")
		}
		if result.Stolen {
			sb.WriteString("\nStolen from under the owner's nose!")
		}
	}

	if result.Silver > 0 {
		fmt.Fprintf(&sb, "\n+%d silver", result.Silver)
	}
	if result.XP > 0 {
		fmt.Fprintf(&sb, " · +%d XP", result.XP)
	}
	if lc := result.LevelChange; lc != nil && lc.LeveledUp {
		fmt.Fprintf(&sb, "\n🎉 Level up! You are now level **%d**.", lc.NewLevel)
	}
	if result.Flavor != "" {
		fmt.Fprintf(&sb, "\n%s", result.Flavor)
	}
	return sb.String()
}

// formatBurnPreview renders the estimated rewards of a burn
func formatBurnPreview(preview *burn.Preview) string {
	if len(preview.Cards) == 0 {
		return MsgNothingBurnable
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Burning **%d** card(s) would yield about:\n", len(preview.Cards))
	writeRewardTotals(&sb, preview.TotalSilver, preview.TotalStar, preview.TotalGems)

	if len(preview.Invalid) > 0 {
		fmt.Fprintf(&sb, "\n\n**%d** card(s) will be skipped:", len(preview.Invalid))
		for _, inv := range preview.Invalid {
			fmt.Fprintf(&sb, "\n`%s`: %s", inv.CardID, inv.Reason)
		}
	}

	sb.WriteString("\n\nRun `/burn` with `confirm: True` to go through with it.")
	return sb.String()
}

// formatBurnResult renders a confirmed burn
func formatBurnResult(result *burn.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Burned **%d** card(s) for:\n", result.Burned)
	writeRewardTotals(&sb, result.TotalSilver, result.TotalStar, result.TotalGems)
	if result.Partial {
		sb.WriteString("\n\nSome cards could not be burned and were left alone.")
	}
	return sb.String()
}

func writeRewardTotals(sb *strings.Builder, silver, star, gems int) {
	fmt.Fprintf(sb, "🪙 **%d** silver", silver)
	if star > 0 {
		fmt.Fprintf(sb, " · ⭐ **%d** star", star)
	}
	if gems > 0 {
		fmt.Fprintf(sb, " · 💎 **%d** gems", gems)
	}
}

// formatBalance renders a player's currency totals
func formatBalance(balance *domain.Balance) string {
	return fmt.Sprintf("🪙 Silver: **%d**\n⭐ Star: **%d**\n💎 Gems: **%d**\n🎟️ Vouchers: **%d**",
		balance.Silver, balance.Star, balance.Gem, balance.Voucher)
}
