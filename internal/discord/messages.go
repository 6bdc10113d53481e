package discord

// Embed colors
const (
	ColorGreen  = 0x2ecc71
	ColorBlue   = 0x3498db
	ColorPurple = 0x9b59b6
	ColorOrange = 0xf39c12
	ColorRed    = 0xe74c3c
	ColorGray   = 0x95a5a6
)

// FooterFancards is the standard footer for user-facing embeds
const FooterFancards = "Fancards"

// User-facing messages
const (
	MsgServerUnavailable = "❌ Error connecting to game server. Try again in a moment."
	MsgRegistered        = "Welcome to Fancards! Use `/drop` to open your first drop."
	MsgEmptyCollection   = "Your collection is empty. Use `/drop` to find cards."
	MsgNoItems           = "No items in your inventory."
	MsgNothingBurnable   = "Nothing burnable in that selection."
)
