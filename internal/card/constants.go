package card

// Log messages
const (
	LogMsgCardLockChanged = "Card lock changed"
)
