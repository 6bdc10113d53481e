package burn

// GemsPerShiny is the glistening gem payout per shiny card burned
const GemsPerShiny = 1

// HoursPerDay converts card age to full bonus days
const HoursPerDay = 24

// Error messages
const (
	ErrMsgGetCardsFailed = "failed to get cards: %w"
	ErrMsgBurnFailed     = "failed to burn cards: %w"
)

// Log messages
const (
	LogMsgCardsBurned = "Cards burned"
	LogMsgPartialBurn = "Burn deleted fewer cards than previewed"
)
